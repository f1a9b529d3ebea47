package flipdot

const hexDigits = "0123456789ABCDEF"

// Hex returns the two uppercase ASCII hex digits of b.
func Hex(b byte) [2]byte {
	return [2]byte{hexDigits[b>>4], hexDigits[b&0x0F]}
}

// AppendHex appends the two hex digits of b to dst.
func AppendHex(dst []byte, b byte) []byte {
	return append(dst, hexDigits[b>>4], hexDigits[b&0x0F])
}

// unhex is the inverse of Hex. ok is false for anything but 0-9 and A-F.
func unhex(hi, lo byte) (b byte, ok bool) {
	h, ok1 := nibble(hi)
	l, ok2 := nibble(lo)
	return h<<4 | l, ok1 && ok2
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
