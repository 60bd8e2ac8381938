// Package depot implements the core protocol engine for a distributed
// depot node: inventory, neighbours, the per-session handshake and verb
// dispatcher, deferred command replay, and the signal-driven snapshot
// dump.
//
// Reference: original C implementation in 2310depot.c. Field and verb
// names below track that source; the concurrency model (one goroutine
// per session instead of one pthread per client) is this package's own.
package depot

import "strconv"

// allDigits reports whether s is non-empty and consists only of ASCII
// digits. strconv.Atoi/ParseInt accept a leading '+' or '-' sign,
// which the wire protocol's numeric fields must not: a port, quantity,
// or defer key with a leading sign is rejected outright.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Port is a depot's TCP listening port, always in [1, 65535] once
// validated.
type Port uint16

// invalidChars are the characters forbidden in a name (good or depot
// name): space, newline, carriage return, colon.
const invalidChars = " \n\r:"

// ValidName reports whether name is non-empty and free of space,
// newline, carriage return, and colon.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		for j := 0; j < len(invalidChars); j++ {
			if name[i] == invalidChars[j] {
				return false
			}
		}
	}
	return true
}

// ParsePositiveInt parses s as a decimal integer, requiring the entire
// field to be consumed and the result strictly greater than zero. Used
// for protocol-layer ports, quantities, and defer keys, all of which
// the wire protocol requires to be positive (an open question:
// the source's numeric parser rejects 0 for these fields).
func ParsePositiveInt(s string) (int, bool) {
	if !allDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// ParseNonNegativeInt32 parses s as a decimal integer, requiring the
// entire field to be consumed and the result to fit in a signed 32-bit
// range with value >= 0. Used for startup seed quantities,
// which unlike protocol-layer quantities may legitimately be zero.
func ParseNonNegativeInt32(s string) (int32, bool) {
	if !allDigits(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return int32(n), true
}

// ValidPort reports whether n fits in the 16-bit positive port range.
func ValidPort(n int) (Port, bool) {
	if n <= 0 || n > 0xFFFF {
		return 0, false
	}
	return Port(n), true
}
