package unsafebytes

import "unsafe"

// BytesToString returns a string sharing the backing array of bytes.
// The caller must not mutate bytes afterwards.
func BytesToString(bytes []byte) string {
	return *(*string)(unsafe.Pointer(&bytes))
}

// StringToBytes returns a read-only byte view of str with len == cap.
// The returned slice must not be written to.
func StringToBytes(str string) []byte {
	return unsafe.Slice(unsafe.StringData(str), len(str))
}
