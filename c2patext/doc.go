// Package c2patext embeds and extracts C2PA manifests in plain Unicode text.
//
// A manifest travels as a wrapper appended to the text: a U+FEFF marker
// followed by one Variation Selector per byte of
//
//	magic "C2PATXT\x00" | version (1) | uint32 BE length | manifest bytes
//
// Bytes 0-15 map to U+FE00..U+FE0F and bytes 16-255 map to U+E0100..U+E01EF.
// The wrapper is invisible when rendered and survives NFC normalization.
//
// EmbedManifest normalizes the carrier text to NFC before appending the
// wrapper. ExtractManifest removes the wrapper again and reports its UTF-8
// byte offset and length relative to the NFC form of the text. Text carrying
// more than one valid wrapper is ambiguous and is rejected with
// ErrMultipleWrappers.
//
// Manifest bytes are opaque here; structural checks live in package validator.
// All functions are pure and safe for concurrent use.
package c2patext
