package cmd

import "strings"

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock returns actionable guidance when the run history cannot be
// opened because another process holds its lock.
func diagnoseDBLock() string {
	return "run history database is locked by another process\n" +
		"  → a 'fdrizer watch --save' may be running:  ps aux | grep 'fdrizer'\n" +
		"  → stop it, or point this command elsewhere:  --db <path>\n" +
		"  → then retry your command"
}
