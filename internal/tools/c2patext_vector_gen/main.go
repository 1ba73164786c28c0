package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"xdao.co/c2patext/c2patext"
	"xdao.co/c2patext/cidutil"
)

// vector is the expected extraction outcome recorded next to each text.
type vector struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	CID    string `json:"cid"`
}

// manifest1 is a 12-byte JUMBF header prefix.
var manifest1 = []byte{0x00, 0x00, 0x00, 0x08, 'j', 'u', 'm', 'b', 0x63, 0x32, 0x70, 0x61}

func main() {
	out := flag.String("out", filepath.Join("testdata", "conformance", "c2patext", "v1"), "output directory")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		fail(err)
	}

	input := "Cafe\u0301 au lait\n"
	embedded := c2patext.EmbedManifest(input, manifest1)
	ex, err := c2patext.ExtractManifest(embedded)
	if err != nil || !ex.Found {
		fail(fmt.Errorf("extract: found=%v err=%v", ex != nil && ex.Found, err))
	}
	v, err := json.MarshalIndent(vector{
		Offset: ex.Offset,
		Length: ex.Length,
		CID:    cidutil.CIDv1RawSHA256(manifest1),
	}, "", "  ")
	if err != nil {
		fail(err)
	}

	wrapper := c2patext.EncodeWrapper(manifest1)
	files := map[string][]byte{
		"embed_1.input.txt": []byte(input),
		"embed_1.jumbf":     manifest1,
		"embed_1.txt":       []byte(embedded),
		"embed_1.clean.txt": []byte(ex.CleanText),
		"embed_1.json":      append(v, '\n'),
		"multiple_1.txt":    []byte("a" + wrapper + "b" + wrapper),
		"corrupted_1.txt":   []byte("text\uFEFF" + string(c2patext.ByteToSelector('X')) + " more"),
	}
	for name, b := range files {
		if err := os.WriteFile(filepath.Join(*out, name), b, 0o644); err != nil {
			fail(err)
		}
	}
	fmt.Printf("wrote %d files to %s\n", len(files), *out)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "c2patext_vector_gen: %v\n", err)
	os.Exit(1)
}
