// Binary encoding for selected index blobs.
//
// A run's selection can hold hundreds of thousands of arena indices, so it is
// stored apart from the JSON summary as a fixed-width list (little-endian):
//
//	version: uint8 (1)
//	count:   uint32
//	indices: [count]uint32
package bbolt

import (
	"encoding/binary"
	"fmt"
)

const (
	selectedVersion = 1
	headerSize      = 5
	indexSize       = 4
)

// encodeSelected encodes arena indices in order.
func encodeSelected(indices []uint32) []byte {
	buf := make([]byte, headerSize+len(indices)*indexSize)
	buf[0] = selectedVersion
	binary.LittleEndian.PutUint32(buf[1:], uint32(len(indices)))
	offset := headerSize
	for _, idx := range indices {
		binary.LittleEndian.PutUint32(buf[offset:], idx)
		offset += indexSize
	}
	return buf
}

// decodeSelected decodes a blob written by encodeSelected.
// Every read is bounds-checked to avoid panics on corrupt data.
func decodeSelected(data []byte) ([]uint32, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("selected blob too short: %d bytes", len(data))
	}
	if data[0] != selectedVersion {
		return nil, fmt.Errorf("selected blob version %d not supported", data[0])
	}
	count := binary.LittleEndian.Uint32(data[1:])
	if need := headerSize + int(count)*indexSize; len(data) != need {
		return nil, fmt.Errorf("selected blob size %d, want %d for %d indices", len(data), need, count)
	}

	indices := make([]uint32, count)
	offset := headerSize
	for i := range indices {
		indices[i] = binary.LittleEndian.Uint32(data[offset:])
		offset += indexSize
	}
	return indices, nil
}
