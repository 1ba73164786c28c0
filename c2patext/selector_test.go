package c2patext

import "testing"

func TestByteToSelector_Bijection(t *testing.T) {
	seen := make(map[rune]byte, 256)
	for i := 0; i < 256; i++ {
		b := byte(i)
		r := ByteToSelector(b)
		if prev, dup := seen[r]; dup {
			t.Fatalf("bytes %d and %d both map to %U", prev, b, r)
		}
		seen[r] = b
		got, ok := SelectorToByte(r)
		if !ok {
			t.Fatalf("SelectorToByte(%U) not a selector", r)
		}
		if got != b {
			t.Fatalf("SelectorToByte(ByteToSelector(%d)) = %d", b, got)
		}
	}
}

func TestByteToSelector_RangeBoundaries(t *testing.T) {
	tests := []struct {
		b    byte
		want rune
	}{
		{0, 0xFE00},
		{15, 0xFE0F},
		{16, 0xE0100},
		{255, 0xE01EF},
	}
	for _, tt := range tests {
		if got := ByteToSelector(tt.b); got != tt.want {
			t.Fatalf("ByteToSelector(%d) = %U, want %U", tt.b, got, tt.want)
		}
	}
}

func TestSelectorToByte_NonSelectors(t *testing.T) {
	for _, r := range []rune{'a', 0, 0xFDFF, 0xFE10, 0xE00FF, 0xE01F0, Marker, 0x10FFFF} {
		if _, ok := SelectorToByte(r); ok {
			t.Fatalf("%U must not be a selector", r)
		}
		if IsSelector(r) {
			t.Fatalf("IsSelector(%U) = true", r)
		}
	}
}
