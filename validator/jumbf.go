package validator

import (
	"bytes"
	"errors"
	"fmt"

	"xdao.co/c2patext/jumbf"
	"xdao.co/c2patext/status"
)

// ValidateJumbfStructure checks the outer JUMBF super-box of b.
//
// Checks run in order and stop at the first failure: non-empty, box header,
// declared size within b, type "jumb". In strict mode a "jumd" description
// box must follow the super-box header, and when its UUID is present it must
// be the C2PA manifest-store UUID. A UUID mismatch is recorded without
// stopping.
func ValidateJumbfStructure(b []byte, strict bool) Result {
	bl := newBuilder()
	bl.res.JumbfBytes = clone(b)

	if len(b) == 0 {
		bl.add(status.EmptyManifest, "JUMBF content is empty", 0, "")
		return bl.result()
	}

	h, err := jumbf.ParseBoxHeader(b)
	if err != nil {
		bl.addBoxError(err)
		return bl.result()
	}
	if err := jumbf.CheckBounds(h, b); err != nil {
		bl.addBoxError(err)
		return bl.result()
	}
	if h.Type != jumbf.SuperboxType {
		bl.add(status.InvalidJumbfHeader,
			fmt.Sprintf("expected JUMBF superbox type %q, got %q", jumbf.SuperboxType.String(), h.Type.String()),
			4, fmt.Sprintf("box_type=%x", h.Type[:]))
		return bl.result()
	}
	if !strict {
		return bl.result()
	}

	if _, err := jumbf.DescriptionBox(h, b); err != nil {
		bl.addBoxError(err)
		return bl.result()
	}
	if uuid, off, ok := jumbf.DescriptionUUID(h, b); ok && !bytes.Equal(uuid, jumbf.C2PAManifestStoreUUID[:]) {
		bl.add(status.InvalidC2paUUID, "invalid C2PA manifest store UUID", off,
			fmt.Sprintf("expected=%x, found=%x", jumbf.C2PAManifestStoreUUID[:], uuid))
	}
	return bl.result()
}

func (b *builder) addBoxError(err error) {
	var e *jumbf.Error
	if errors.As(err, &e) {
		b.add(e.Code, e.Message, e.Offset, "")
		return
	}
	b.add(status.InvalidJumbfHeader, err.Error(), -1, "")
}
