package c2patext

import "golang.org/x/text/unicode/norm"

// EmbedManifest normalizes text to NFC and appends the wrapper for manifest.
//
// Normalization happens once, before the wrapper is appended; the marker and
// selectors are NFC-stable. manifest is not validated here: run
// validator.ValidateManifest first when structural guarantees are needed.
func EmbedManifest(text string, manifest []byte) string {
	return norm.NFC.String(text) + EncodeWrapper(manifest)
}
