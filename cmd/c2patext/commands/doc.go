// Package commands implements the c2patext command tree.
//
// Subcommands embed a manifest into text, extract it again, validate
// manifests, wrappers and embedded text, inspect wrapper candidates, and
// manage the local content-addressed manifest store.
//
// Exit codes: 0 success, 1 failure or invalid input, 2 usage error.
package commands
