package c2patext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Extraction is the outcome of ExtractManifest.
type Extraction struct {
	// Found is true when exactly one wrapper was located.
	Found bool
	// Manifest holds the payload bytes; non-nil (possibly empty) when Found.
	Manifest []byte
	// CleanText is the NFC text with the wrapper removed, or NFC(text) when
	// no wrapper was removed.
	CleanText string
	// Offset is the UTF-8 byte offset of the wrapper in the NFC form of the
	// input, or -1.
	Offset int
	// Length is the UTF-8 byte length of the wrapper in that form, or -1.
	Length int
}

func notFound(text string) *Extraction {
	return &Extraction{CleanText: norm.NFC.String(text), Offset: -1, Length: -1}
}

// ExtractManifest locates the wrapper in text and returns its manifest along
// with the cleaned text.
//
// Offsets describe where the wrapper sits once the text before it has been
// normalized to NFC; callers comparing against a non-normalized copy must
// normalize it themselves.
//
// Text without a wrapper is not an error: Found is false and CleanText is
// NFC(text). Text with two or more valid wrappers returns ErrMultipleWrappers
// together with an Extraction carrying NFC(text) and no manifest.
func ExtractManifest(text string) (*Extraction, error) {
	runes, offsets := scalars(text)
	s := newScanner(runes)

	run, ok := s.next()
	if !ok {
		return notFound(text), nil
	}
	if _, dup := s.next(); dup {
		return notFound(text), ErrMultipleWrappers
	}

	pre := text[:offsets[run.start]]
	wrapper := text[offsets[run.start]:offsets[run.end]]
	post := text[offsets[run.end]:]

	offset := len(norm.NFC.String(pre))
	length := len(norm.NFC.String(pre+wrapper)) - offset

	return &Extraction{
		Found:     true,
		Manifest:  run.payload,
		CleanText: norm.NFC.String(pre + post),
		Offset:    offset,
		Length:    length,
	}, nil
}

// Strip removes every valid wrapper from text and returns the NFC result.
// Unlike ExtractManifest it accepts ambiguous text.
func Strip(text string) string {
	runes, offsets := scalars(text)
	s := newScanner(runes)
	var sb strings.Builder
	sb.Grow(len(text))
	last := 0
	for {
		run, ok := s.next()
		if !ok {
			break
		}
		sb.WriteString(text[last:offsets[run.start]])
		last = offsets[run.end]
	}
	sb.WriteString(text[last:])
	return norm.NFC.String(sb.String())
}
