package ports

// Watcher monitors input files for changes and triggers a new selection run.
// The adapter (fsnotify) must filter out editor temp files and debounce bursts
// of writes before invoking onChange.
type Watcher interface {
	// Watch starts monitoring the given file paths. onChange is called with the
	// absolute path of each changed file. The callback may be invoked from
	// any goroutine. Returns an error if a file's directory doesn't exist or
	// permissions are insufficient.
	Watch(paths []string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
