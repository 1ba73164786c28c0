package c2patext

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"xdao.co/c2patext/status"
)

const (
	// Magic opens every wrapper header.
	Magic = "C2PATXT\x00"
	// Version is the only supported wrapper version.
	Version = 1
	// HeaderSize is magic (8) + version (1) + length (4).
	HeaderSize = 13
	// Marker precedes the first header selector. It is not a selector itself.
	Marker = '\uFEFF'

	// MaxManifestSize is the largest payload the uint32 length field can declare.
	MaxManifestSize = math.MaxUint32
)

// Header is the decoded fixed-size wrapper header.
type Header struct {
	Version uint8
	Length  uint32
}

// AppendHeader appends the 13-byte header for an n-byte manifest to dst.
func AppendHeader(dst []byte, n uint32) []byte {
	dst = append(dst, Magic...)
	dst = append(dst, Version)
	return binary.BigEndian.AppendUint32(dst, n)
}

// ParseHeader decodes the wrapper header at the start of b.
//
// On an unsupported version the returned Header still carries the version
// found, so callers can report it.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, newError(KindWrapper, status.CorruptedWrapper,
			fmt.Sprintf("wrapper too short: %d bytes, minimum %d", len(b), HeaderSize))
	}
	if string(b[:len(Magic)]) != Magic {
		return Header{}, newError(KindWrapper, status.InvalidMagic,
			fmt.Sprintf("invalid magic: expected %q, got %q", Magic, b[:len(Magic)]))
	}
	h := Header{Version: b[8]}
	if h.Version != Version {
		return h, newError(KindWrapper, status.UnsupportedVersion,
			fmt.Sprintf("unsupported version: %d, expected %d", h.Version, Version))
	}
	h.Length = binary.BigEndian.Uint32(b[9:HeaderSize])
	return h, nil
}

// WrapperBytes returns the raw header+payload bytes for manifest, without the
// marker and before selector encoding.
func WrapperBytes(manifest []byte) []byte {
	out := make([]byte, 0, HeaderSize+len(manifest))
	out = AppendHeader(out, uint32(len(manifest)))
	return append(out, manifest...)
}

// EncodeWrapper encodes manifest as an invisible wrapper string: the marker
// followed by one Variation Selector per header and payload byte.
//
// The result holds 1+HeaderSize+len(manifest) scalars. len(manifest) must not
// exceed MaxManifestSize.
func EncodeWrapper(manifest []byte) string {
	var sb strings.Builder
	// Selectors take 3 (BMP) or 4 (supplementary) UTF-8 bytes.
	sb.Grow(3 + 4*(HeaderSize+len(manifest)))
	sb.WriteRune(Marker)

	var hdr [HeaderSize]byte
	for _, b := range AppendHeader(hdr[:0], uint32(len(manifest))) {
		sb.WriteRune(ByteToSelector(b))
	}
	for _, b := range manifest {
		sb.WriteRune(ByteToSelector(b))
	}
	return sb.String()
}

// wrapperRun is a decodable wrapper found in a scalar sequence.
type wrapperRun struct {
	start   int // index of the marker
	end     int // index one past the last selector of the run
	header  Header
	payload []byte // exactly header.Length bytes
}

// consumed is the number of scalars covered by the run, marker included.
func (r wrapperRun) consumed() int { return r.end - r.start }

// decodeRun decodes the selectors that follow the marker at runes[marker].
//
// The run extends to the first non-selector or the end of input; surplus
// selectors beyond the declared length stay part of the run. ok is false when
// the run is too short, carries a bad magic or version, or holds fewer bytes
// than the header declares. That is a scan-local rejection, not an error.
func decodeRun(runes []rune, marker int) (run wrapperRun, ok bool) {
	if marker < 0 || marker >= len(runes) || runes[marker] != Marker {
		return wrapperRun{}, false
	}
	end := marker + 1
	for end < len(runes) && IsSelector(runes[end]) {
		end++
	}
	n := end - marker - 1
	if n < HeaderSize {
		return wrapperRun{}, false
	}

	var hdr [HeaderSize]byte
	for i := range hdr {
		hdr[i], _ = SelectorToByte(runes[marker+1+i])
	}
	h, err := ParseHeader(hdr[:])
	if err != nil {
		return wrapperRun{}, false
	}
	if uint64(n-HeaderSize) < uint64(h.Length) {
		return wrapperRun{}, false
	}

	payload := make([]byte, h.Length)
	base := marker + 1 + HeaderSize
	for i := range payload {
		payload[i], _ = SelectorToByte(runes[base+i])
	}
	return wrapperRun{start: marker, end: end, header: h, payload: payload}, true
}
