package validator

import (
	"errors"
	"fmt"

	"xdao.co/c2patext/c2patext"
	"xdao.co/c2patext/status"
)

// ValidateManifest checks manifest bytes before they are embedded.
//
// Empty input is reported and ends the checks. When validateJumbf is set the
// JUMBF structure checks run as well and their issues are merged in.
func ValidateManifest(manifest []byte, validateJumbf, strict bool) Result {
	bl := newBuilder()
	bl.res.ManifestBytes = clone(manifest)

	if len(manifest) == 0 {
		bl.add(status.EmptyManifest, "manifest bytes are empty", -1, "")
		return bl.result()
	}
	bl.res.ActualLength = len(manifest)

	if validateJumbf {
		bl.merge(ValidateJumbfStructure(manifest, strict))
	}
	return bl.result()
}

// ValidateWrapperBytes checks a decoded wrapper: header followed by payload,
// without the marker.
//
// Header problems (length, magic, version, declared length) are terminal.
// The payload then goes through the non-strict JUMBF checks; offsets in
// those issues are relative to the payload.
func ValidateWrapperBytes(wrapper []byte) Result {
	bl := newBuilder()

	h, err := c2patext.ParseHeader(wrapper)
	if err != nil {
		var e *c2patext.Error
		if !errors.As(err, &e) {
			bl.add(status.CorruptedWrapper, err.Error(), 0, "")
			return bl.result()
		}
		offset := 0
		if e.Code == status.UnsupportedVersion {
			bl.res.Version = int(h.Version)
			offset = 8
		}
		bl.add(e.Code, e.Message, offset, "")
		return bl.result()
	}
	bl.res.Version = int(h.Version)
	bl.res.DeclaredLength = h.Length

	payload := wrapper[c2patext.HeaderSize:]
	bl.res.ActualLength = len(payload)
	if uint64(h.Length) != uint64(len(payload)) {
		bl.add(status.LengthMismatch,
			fmt.Sprintf("length mismatch: declares %d bytes, actual %d", h.Length, len(payload)),
			9, "")
		return bl.result()
	}

	bl.res.JumbfBytes = clone(payload)
	bl.res.ManifestBytes = clone(payload)
	bl.merge(ValidateJumbfStructure(payload, false))
	return bl.result()
}
