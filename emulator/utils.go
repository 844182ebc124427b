package emulator

import "fmt"

// Formatted panic()
func panicFmt(format string, a ...interface{}) {
	panic(fmt.Sprintf(format, a...))
}

// Returns 1 if `v` is true, 0 otherwise
func oneIfTrue(v bool) byte {
	if v {
		return 1
	}
	return 0
}

// Returns bit `n` of `v`
func bitN(v byte, n uint) bool {
	return v&(1<<n) != 0
}

// Returns `v` with bit `n` set or cleared
func setBitN(v byte, n uint, set bool) byte {
	if set {
		return v | (1 << n)
	}
	return v &^ (1 << n)
}
