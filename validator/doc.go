// Package validator checks C2PA text manifests and wrappers for structural
// compliance.
//
// Validators never return Go errors. Every problem found is recorded as an
// Issue carrying a stable status code, and the caller decides whether to
// abort. Results are built per call and returned by value; nothing is shared
// between calls.
//
//   - ValidateManifest checks raw manifest bytes before embedding.
//   - ValidateWrapperBytes checks a decoded wrapper (header + payload).
//   - ValidateJumbfStructure checks the outer JUMBF super-box.
//   - ValidateEmbedded scans text and checks the wrapper it carries.
package validator
