package validator

import (
	"bytes"
	"fmt"
	"strings"

	"xdao.co/c2patext/status"
)

// Issue is a single validation finding.
type Issue struct {
	Code    status.Code `json:"code"`
	Message string      `json:"message"`
	// Offset is the byte offset the issue refers to, or -1.
	Offset  int    `json:"offset"`
	Context string `json:"context,omitempty"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s", i.Code, i.Message)
}

// Result is the outcome of a validation call.
//
// Valid is true iff Issues is empty. Byte slices are copies owned by the
// Result.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`

	ManifestBytes  []byte `json:"manifest_bytes,omitempty"`
	JumbfBytes     []byte `json:"jumbf_bytes,omitempty"`
	Version        int    `json:"version,omitempty"`
	DeclaredLength uint32 `json:"declared_length,omitempty"`
	ActualLength   int    `json:"actual_length,omitempty"`
}

// PrimaryCode returns the code of the first issue, or status.Valid.
func (r Result) PrimaryCode() status.Code {
	if len(r.Issues) == 0 {
		return status.Valid
	}
	return r.Issues[0].Code
}

// Has reports whether any issue carries code.
func (r Result) Has(code status.Code) bool {
	for _, i := range r.Issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

func (r Result) String() string {
	if r.Valid {
		return "Validation passed: manifest is structurally compliant"
	}
	var sb strings.Builder
	sb.WriteString("Validation failed:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&sb, "  - %s\n", issue)
	}
	return sb.String()
}

// builder accumulates issues for one call. Once an issue is added the result
// is invalid for good.
type builder struct {
	res Result
}

func newBuilder() *builder {
	return &builder{res: Result{Valid: true, Issues: []Issue{}}}
}

func (b *builder) add(code status.Code, msg string, offset int, context string) {
	b.res.Issues = append(b.res.Issues, Issue{Code: code, Message: msg, Offset: offset, Context: context})
	b.res.Valid = false
}

// merge appends the issues of another result in order.
func (b *builder) merge(r Result) {
	for _, i := range r.Issues {
		b.add(i.Code, i.Message, i.Offset, i.Context)
	}
}

// result hands out the finished Result. The builder must not be used after.
func (b *builder) result() Result {
	r := b.res
	b.res = Result{}
	return r
}

func clone(b []byte) []byte { return bytes.Clone(b) }
