package tusl

import "strings"

// punctuation lists the bytes that always end a token, and stand for a
// token by themselves when encountered first.
const punctuation = "\\:(){}"

// maxTokenLength bounds get_token's accumulation buffer, matching
// spec.md's "extremely long identifiers are a usage error, not a resource
// exhaustion vector" stance.
const maxTokenLength = 1024

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}

// getToken scans the next token from the input stream, returning it and
// ok=true, or ok=false at end of input. A token consisting solely of "\n"
// is returned (rather than skipped) so callers can use it to distinguish
// a blank input line from genuine end of input.
func (vm *VM) getToken() (string, bool) {
	var c byte
	var ok bool
	for {
		c, ok = vm.input.GetChar()
		if !ok || c == '\n' || !isSpaceByte(c) {
			break
		}
	}
	if !ok {
		return "", false
	}
	vm.tokenPlace = vm.input.place

	var buf []byte
	appendByte := func(c byte) {
		if len(buf) >= maxTokenLength-1 {
			vm.errorf("Token too long: %s...", string(buf))
		}
		buf = append(buf, c)
	}

	switch {
	case c == '$':
		appendByte(c)
		c, ok = vm.input.GetChar()
		if !ok {
			vm.errorf("Unterminated character constant: %s", string(buf))
		}
		appendByte(c)

	case c == '\n' || strings.IndexByte(punctuation, c) >= 0:
		appendByte(c)

	case c == '"' || c == '`':
		delim := c
		for {
			appendByte(c)
			c, ok = vm.input.GetChar()
			if !ok {
				vm.errorf("Unterminated string constant: %s", string(buf))
			}
			if c == delim {
				break
			}
		}

	default:
		for {
			appendByte(c)
			peek, hasNext := vm.input.PeekChar()
			if !hasNext || isTokenBoundary(peek) {
				break
			}
			vm.input.GetChar()
			c = peek
		}
	}
	return string(buf), true
}

func isTokenBoundary(c byte) bool {
	if isSpaceByte(c) || c == '"' || c == '`' {
		return true
	}
	return strings.IndexByte(punctuation, c) >= 0
}
