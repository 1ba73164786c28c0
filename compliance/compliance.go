// Package compliance selects how strictly manifests are checked.
package compliance

import (
	"fmt"
	"strings"
)

// Mode selects how aggressively validation rejects incomplete manifests.
//
// Strict mode additionally requires the JUMBF description box and checks the
// C2PA manifest-store UUID. Permissive mode checks only the outer super-box.
type Mode int

const (
	Permissive Mode = iota
	Strict
)

func (m Mode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Strict reports whether m requires strict JUMBF checks.
func (m Mode) Strict() bool { return m == Strict }

// ParseMode maps a mode name to a Mode. The empty string is Permissive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, fmt.Errorf("compliance: unknown mode %q", s)
	}
}
