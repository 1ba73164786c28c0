package c2patext

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"xdao.co/c2patext/cidutil"
)

var vectorRoot = filepath.Join("..", "testdata", "conformance", "c2patext", "v1")

func readVector(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(vectorRoot, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return b
}

func TestConformanceVectors_EmbedAndExtract(t *testing.T) {
	input := readVector(t, "embed_1.input.txt")
	manifest := readVector(t, "embed_1.jumbf")
	want := readVector(t, "embed_1.txt")
	clean := readVector(t, "embed_1.clean.txt")

	var exp struct {
		Offset int    `json:"offset"`
		Length int    `json:"length"`
		CID    string `json:"cid"`
	}
	if err := json.Unmarshal(readVector(t, "embed_1.json"), &exp); err != nil {
		t.Fatalf("decode expectations: %v", err)
	}

	if bytes.Equal(input, clean) {
		t.Fatalf("vector input must not already be NFC")
	}

	got := EmbedManifest(string(input), manifest)
	if got != string(want) {
		t.Fatalf("embedded bytes mismatch")
	}

	ex, err := ExtractManifest(string(want))
	if err != nil {
		t.Fatalf("ExtractManifest: %v", err)
	}
	if !ex.Found || !bytes.Equal(ex.Manifest, manifest) {
		t.Fatalf("manifest mismatch: %+v", ex)
	}
	if ex.CleanText != string(clean) {
		t.Fatalf("clean text: got %q want %q", ex.CleanText, clean)
	}
	if ex.Offset != exp.Offset || ex.Length != exp.Length {
		t.Fatalf("offsets: got (%d,%d) want (%d,%d)", ex.Offset, ex.Length, exp.Offset, exp.Length)
	}
	if id := cidutil.CIDv1RawSHA256(ex.Manifest); id != exp.CID {
		t.Fatalf("CID mismatch: got %s want %s", id, exp.CID)
	}
}

func TestConformanceVectors_Rejections(t *testing.T) {
	if _, err := ExtractManifest(string(readVector(t, "multiple_1.txt"))); !errors.Is(err, ErrMultipleWrappers) {
		t.Fatalf("multiple_1: expected ErrMultipleWrappers, got %v", err)
	}

	corrupted := string(readVector(t, "corrupted_1.txt"))
	ex, err := ExtractManifest(corrupted)
	if err != nil {
		t.Fatalf("corrupted_1: %v", err)
	}
	if ex.Found || ex.CleanText != corrupted {
		t.Fatalf("corrupted_1: expected no wrapper and unchanged text, got %+v", ex)
	}
	if rep := Scan(corrupted); rep.Rejected != 1 || len(rep.Wrappers) != 0 {
		t.Fatalf("corrupted_1: scan report %+v", rep)
	}
}
