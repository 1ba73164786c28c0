// Package status defines the stable validation status codes reported for
// C2PA text manifests.
//
// Codes are dot-namespaced strings and are intended to remain stable across
// versions. Callers should branch on Code values rather than on message text.
package status

// Code is a C2PA-compatible validation status code.
type Code string

const (
	// Valid is reported when no issue was found.
	Valid Code = "valid"

	// Wrapper-level failures.
	CorruptedWrapper Code = "manifest.text.corruptedWrapper"
	MultipleWrappers Code = "manifest.text.multipleWrappers"

	InvalidMagic       Code = "manifest.text.invalidMagic"
	UnsupportedVersion Code = "manifest.text.unsupportedVersion"
	LengthMismatch     Code = "manifest.text.lengthMismatch"
	EmptyManifest      Code = "manifest.text.emptyManifest"

	// JUMBF-level failures.
	InvalidJumbfHeader    Code = "manifest.jumbf.invalidHeader"
	InvalidJumbfBoxSize   Code = "manifest.jumbf.invalidBoxSize"
	MissingDescriptionBox Code = "manifest.jumbf.missingDescriptionBox"
	InvalidC2paUUID       Code = "manifest.jumbf.invalidC2paUuid"
	TruncatedJumbf        Code = "manifest.jumbf.truncated"
)

func (c Code) String() string { return string(c) }

// IsJumbf reports whether c belongs to the JUMBF namespace.
func (c Code) IsJumbf() bool {
	return len(c) > len("manifest.jumbf.") && c[:len("manifest.jumbf.")] == "manifest.jumbf."
}

// Known lists every code in a fixed order.
var Known = []Code{
	Valid,
	CorruptedWrapper,
	MultipleWrappers,
	InvalidMagic,
	UnsupportedVersion,
	LengthMismatch,
	EmptyManifest,
	InvalidJumbfHeader,
	InvalidJumbfBoxSize,
	MissingDescriptionBox,
	InvalidC2paUUID,
	TruncatedJumbf,
}

// Parse maps s to a known Code.
func Parse(s string) (Code, bool) {
	for _, c := range Known {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
