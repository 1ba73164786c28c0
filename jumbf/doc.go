// Package jumbf parses JUMBF (ISO/IEC 19566-5) box headers.
//
// Only the shape of a box is inspected: its size fields and its 4-byte type.
// Payloads are opaque. Errors carry the validation status code of the
// violated rule so that package validator can report them verbatim.
package jumbf
