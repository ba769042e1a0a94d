package tusl

import (
	"math"
	"strconv"
)

// parseNumber tries text as a signed integer, then an unsigned integer,
// then a float (reinterpreting its 32-bit pattern as the machine integer
// that represents it on the stack, per spec.md's float convention). Base 0
// means 0x/0 prefixes select hex/octal the way C's strtol does.
func parseNumber(text string) (int, bool) {
	if text == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(text, 0, 32); err == nil {
		return int(int32(v)), true
	}
	if v, err := strconv.ParseUint(text, 0, 32); err == nil {
		return int(int32(v)), true
	}
	if v, err := strconv.ParseFloat(text, 32); err == nil {
		return int(int32(math.Float32bits(float32(v)))), true
	}
	return 0, false
}
