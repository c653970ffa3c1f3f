package common

// WipeByteArray overwrites the contents of a sensitive byte slice (for
// example a password read from the terminal) so it does not linger in
// memory after use.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
