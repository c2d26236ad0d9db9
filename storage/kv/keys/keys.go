package keys

import (
	"bytes"
	"encoding/binary"
)

// Uint64ToKey constructs a key from a uint64.
// Keys are big-endian so that the byte order of
// keys matches the numeric order of the integers
// they encode.
func Uint64ToKey(i uint64) Key {
	k := make(Key, 8)

	binary.BigEndian.PutUint64(k, i)

	return k
}

// KeyToUint64 decodes a key built by Uint64ToKey.
// ok is false if the key is not exactly eight bytes.
func KeyToUint64(k Key) (i uint64, ok bool) {
	if len(k) != 8 {
		return 0, false
	}

	return binary.BigEndian.Uint64(k), true
}

// Key is a single key
type Key []byte

// Compare compares two keys
// -1 means a < b
// 1 means a > b
// 0 means a = b
func Compare(a, b Key) int {
	return bytes.Compare(a, b)
}
