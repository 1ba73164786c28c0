package c2patext

// Variation Selector ranges used to carry bytes.
const (
	VSStart    = 0xFE00 // VS1, carries byte 0
	VSEnd      = 0xFE0F // VS16, carries byte 15
	VSSupStart = 0xE0100
	VSSupEnd   = 0xE01EF
)

// ByteToSelector returns the Variation Selector carrying b.
func ByteToSelector(b byte) rune {
	if b < 16 {
		return VSStart + rune(b)
	}
	return VSSupStart + rune(b-16)
}

// SelectorToByte returns the byte carried by r. ok is false when r is not a
// Variation Selector, which ends a decode run.
func SelectorToByte(r rune) (b byte, ok bool) {
	switch {
	case r >= VSStart && r <= VSEnd:
		return byte(r - VSStart), true
	case r >= VSSupStart && r <= VSSupEnd:
		return byte(r-VSSupStart) + 16, true
	default:
		return 0, false
	}
}

// IsSelector reports whether r carries a byte.
func IsSelector(r rune) bool {
	_, ok := SelectorToByte(r)
	return ok
}
