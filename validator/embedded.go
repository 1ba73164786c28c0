package validator

import (
	"fmt"

	"xdao.co/c2patext/c2patext"
	"xdao.co/c2patext/status"
)

// ValidateEmbedded scans text for wrappers and validates the one it carries.
//
// More than one wrapper is reported as status.MultipleWrappers. Markers
// without any decodable wrapper are reported as status.CorruptedWrapper.
// Text with no marker at all yields a valid Result with nothing echoed.
// A single wrapper is checked with ValidateWrapperBytes and, in strict mode,
// with the strict JUMBF checks once the non-strict ones pass.
func ValidateEmbedded(text string, strict bool) Result {
	bl := newBuilder()
	rep := c2patext.Scan(text)

	switch {
	case len(rep.Wrappers) > 1:
		bl.add(status.MultipleWrappers,
			fmt.Sprintf("text carries %d C2PA wrappers, expected at most one", len(rep.Wrappers)),
			rep.Wrappers[1].ByteStart, "")
		return bl.result()
	case len(rep.Wrappers) == 0 && rep.Rejected > 0:
		bl.add(status.CorruptedWrapper,
			fmt.Sprintf("found %d wrapper marker(s) without a decodable wrapper", rep.Rejected),
			-1, "")
		return bl.result()
	case len(rep.Wrappers) == 0:
		return bl.result()
	}

	span := rep.Wrappers[0]
	wr := ValidateWrapperBytes(c2patext.WrapperBytes(span.Payload))
	bl.res.ManifestBytes = wr.ManifestBytes
	bl.res.JumbfBytes = wr.JumbfBytes
	bl.res.Version = wr.Version
	bl.res.DeclaredLength = wr.DeclaredLength
	bl.res.ActualLength = wr.ActualLength
	bl.merge(wr)

	if strict && wr.Valid {
		bl.merge(ValidateJumbfStructure(span.Payload, true))
	}
	return bl.result()
}
