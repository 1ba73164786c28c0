package jumbf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"xdao.co/c2patext/status"
)

const (
	// HeaderSize is the size of a compact box header (size + type).
	HeaderSize = 8
	// ExtendedHeaderSize is the size of a header carrying a 64-bit size.
	ExtendedHeaderSize = 16

	// MaxBoxSize caps extended sizes at 2^53-1. Larger values are practically
	// impossible file sizes and are clamped rather than rejected.
	MaxBoxSize = 1<<53 - 1
)

// Type is a 4-byte ASCII box type.
type Type [4]byte

// Known box types.
var (
	SuperboxType    = Type{'j', 'u', 'm', 'b'}
	DescriptionType = Type{'j', 'u', 'm', 'd'}
)

// C2PAManifestStoreUUID identifies a C2PA manifest store description box.
var C2PAManifestStoreUUID = [16]byte{
	0x63, 0x32, 0x70, 0x61, 0x00, 0x11, 0x00, 0x10,
	0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71,
}

func (t Type) String() string { return string(t[:]) }

// BoxHeader is a parsed box header.
type BoxHeader struct {
	// Size is the declared size field (0, 1, or >= 8).
	Size uint32
	Type Type
	// EffectiveSize is the box length in bytes, header included. For Size 0
	// it is the remaining buffer length; for Size 1 it is the extended size.
	EffectiveSize uint64
	// HeaderLen is 8, or 16 when an extended size is present.
	HeaderLen int
}

// Extended reports whether the header carries a 64-bit size.
func (h BoxHeader) Extended() bool { return h.Size == 1 }

// Error is a structural box error.
type Error struct {
	Code    status.Code
	Message string
	// Offset is the byte offset the error refers to.
	Offset int
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func newError(code status.Code, offset int, msg string) error {
	return &Error{Code: code, Message: msg, Offset: offset}
}

// CodeOf returns the status code of a structural error, or "" if err is not one.
func CodeOf(err error) status.Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// ParseBoxHeader parses the box header at the start of b.
//
// It rejects buffers shorter than a compact header, extended sizes without
// room for the 64-bit field, and declared sizes between 2 and 7. It does not
// check that b holds EffectiveSize bytes; see CheckBounds.
func ParseBoxHeader(b []byte) (BoxHeader, error) {
	if len(b) < HeaderSize {
		return BoxHeader{}, newError(status.InvalidJumbfHeader, 0,
			fmt.Sprintf("JUMBF too short for box header: %d bytes, minimum %d", len(b), HeaderSize))
	}
	h := BoxHeader{Size: binary.BigEndian.Uint32(b[0:4])}
	copy(h.Type[:], b[4:8])

	switch {
	case h.Size == 0:
		h.EffectiveSize = uint64(len(b))
		h.HeaderLen = HeaderSize
	case h.Size == 1:
		if len(b) < ExtendedHeaderSize {
			return BoxHeader{}, newError(status.TruncatedJumbf, 0,
				"extended box size declared but not enough bytes for 64-bit size field")
		}
		h.EffectiveSize = binary.BigEndian.Uint64(b[8:16])
		if h.EffectiveSize > MaxBoxSize {
			h.EffectiveSize = MaxBoxSize
		}
		h.HeaderLen = ExtendedHeaderSize
	case h.Size < HeaderSize:
		return BoxHeader{}, newError(status.InvalidJumbfBoxSize, 0,
			fmt.Sprintf("invalid box size: %d (minimum is %d)", h.Size, HeaderSize))
	default:
		h.EffectiveSize = uint64(h.Size)
		h.HeaderLen = HeaderSize
	}
	return h, nil
}

// CheckBounds reports a truncation error when b is shorter than the box
// described by h.
func CheckBounds(h BoxHeader, b []byte) error {
	if uint64(len(b)) < h.EffectiveSize {
		return newError(status.TruncatedJumbf, 0,
			fmt.Sprintf("JUMBF truncated: declared size %d, actual %d", h.EffectiveSize, len(b)))
	}
	return nil
}

// DescriptionBox locates the description box that must follow a super-box
// header and returns the offset of its type field.
func DescriptionBox(h BoxHeader, b []byte) (typeOffset int, err error) {
	if len(b) < h.HeaderLen+HeaderSize {
		return h.HeaderLen, newError(status.MissingDescriptionBox, h.HeaderLen,
			"JUMBF superbox too short to contain description box")
	}
	typeOffset = h.HeaderLen + 4
	got := b[typeOffset : typeOffset+4]
	if !bytes.Equal(got, DescriptionType[:]) {
		return typeOffset, newError(status.MissingDescriptionBox, typeOffset,
			fmt.Sprintf("expected description box %q, got %q", DescriptionType.String(), got))
	}
	return typeOffset, nil
}

// DescriptionUUID returns the 16-byte UUID following the description box
// header, or ok=false when fewer than 16 bytes follow it.
func DescriptionUUID(h BoxHeader, b []byte) (uuid []byte, offset int, ok bool) {
	offset = h.HeaderLen + HeaderSize
	if len(b) < offset+len(C2PAManifestStoreUUID) {
		return nil, offset, false
	}
	return b[offset : offset+len(C2PAManifestStoreUUID)], offset, true
}
