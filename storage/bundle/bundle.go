// Package bundle moves manifests between stores as deterministic TAR
// archives.
package bundle

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ipfs/go-cid"

	"xdao.co/c2patext/cidutil"
	"xdao.co/c2patext/status"
	"xdao.co/c2patext/storage"
	"xdao.co/c2patext/validator"
)

// FormatVersion is the current bundle index schema version.
const FormatVersion = 1

const (
	manifestDir = "manifests/"
	indexName   = "index.json"
)

var epoch0 = time.Unix(0, 0).UTC()

// ErrInvalidManifest is returned by Import when RequireValid is set and a
// manifest fails structural validation.
var ErrInvalidManifest = errors.New("bundle: manifest failed validation")

// ExportOptions controls bundle export behavior.
type ExportOptions struct {
	// IncludeIndex controls whether index.json is included.
	IncludeIndex bool
	// Strict selects strict JUMBF checks for the status recorded in the index.
	Strict bool
}

// Export writes a deterministic TAR bundle holding the manifests for ids.
//
// Entry order is lexicographic and TAR headers are normalized, so the same
// set of manifests always yields the same bytes. Every manifest is checked
// against its CID before it is written.
func Export(w io.Writer, s storage.Store, ids []cid.Cid, opts ExportOptions) error {
	if s == nil {
		return fmt.Errorf("bundle: nil store")
	}

	uniq := make(map[string]cid.Cid, len(ids))
	for _, id := range ids {
		if !id.Defined() {
			return storage.ErrInvalidCID
		}
		uniq[id.String()] = id
	}
	keys := make([]string, 0, len(uniq))
	for k := range uniq {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tar.NewWriter(w)
	entries := make([]IndexEntry, 0, len(keys))
	for _, k := range keys {
		id := uniq[k]
		b, err := s.Get(id)
		if err != nil {
			_ = tw.Close()
			return fmt.Errorf("bundle: %s: %w", k, err)
		}
		ok, err := cidutil.Matches(id, b)
		if err != nil {
			_ = tw.Close()
			return err
		}
		if !ok {
			_ = tw.Close()
			return storage.ErrCIDMismatch
		}
		if err := writeFile(tw, manifestDir+k, b); err != nil {
			_ = tw.Close()
			return err
		}
		hash, _ := cidutil.HashName(id)
		res := validator.ValidateManifest(b, true, opts.Strict)
		entries = append(entries, IndexEntry{CID: k, Size: len(b), Hash: hash, Status: res.PrimaryCode()})
	}

	if opts.IncludeIndex {
		idx := Index{Version: FormatVersion, CIDCodec: "raw", Strict: opts.Strict, Manifests: entries}
		b, err := json.Marshal(idx)
		if err != nil {
			_ = tw.Close()
			return err
		}
		if err := writeFile(tw, indexName, append(b, '\n')); err != nil {
			_ = tw.Close()
			return err
		}
	}
	return tw.Close()
}

// ImportOptions controls bundle import behavior.
type ImportOptions struct {
	// IgnoreUnknown skips unknown TAR entries instead of failing.
	IgnoreUnknown bool
	// RequireValid rejects manifests that fail structural validation.
	RequireValid bool
	// Strict selects strict JUMBF checks when RequireValid is set.
	Strict bool
}

// Import reads a bundle from r into s and returns the imported CIDs in
// archive order.
//
// Each manifest must hash to the CID in its entry name. The index is
// informational and is not trusted. Unknown entries fail the import unless
// IgnoreUnknown is set.
func Import(r io.Reader, s storage.Store, opts ImportOptions) ([]cid.Cid, error) {
	if s == nil {
		return nil, fmt.Errorf("bundle: nil store")
	}

	tr := tar.NewReader(r)
	seen := map[string]struct{}{}
	var out []cid.Cid
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return out, fmt.Errorf("bundle: invalid entry path: %q", h.Name)
		}
		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return out, fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}
		if name == indexName {
			continue
		}
		if !strings.HasPrefix(name, manifestDir) {
			if opts.IgnoreUnknown {
				continue
			}
			return out, fmt.Errorf("bundle: unknown entry: %s", name)
		}

		id, err := cid.Decode(strings.TrimPrefix(name, manifestDir))
		if err != nil || !id.Defined() {
			return out, storage.ErrInvalidCID
		}
		key := id.String()
		if _, dup := seen[key]; dup {
			return out, fmt.Errorf("bundle: duplicate manifest entry: %s", key)
		}
		seen[key] = struct{}{}

		payload, err := io.ReadAll(tr)
		if err != nil {
			return out, err
		}
		ok, err := cidutil.Matches(id, payload)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, storage.ErrCIDMismatch
		}
		if opts.RequireValid {
			if res := validator.ValidateManifest(payload, true, opts.Strict); !res.Valid {
				return out, fmt.Errorf("%w: %s: %s", ErrInvalidManifest, key, res.PrimaryCode())
			}
		}

		putID, err := s.Put(payload)
		if err != nil {
			return out, err
		}
		if !putID.Equals(id) {
			// Destination uses a different hash function.
			id = putID
		}
		out = append(out, id)
	}
}

// ReadIndex returns the index of a bundle, or ok=false when it has none.
func ReadIndex(r io.Reader) (idx Index, ok bool, err error) {
	tr := tar.NewReader(r)
	for {
		h, err := tr.Next()
		if err == io.EOF {
			return idx, false, nil
		}
		if err != nil {
			return idx, false, err
		}
		if cleanTarPath(h.Name) != indexName {
			continue
		}
		if err := json.NewDecoder(tr).Decode(&idx); err != nil {
			return idx, false, fmt.Errorf("bundle: index: %w", err)
		}
		return idx, true, nil
	}
}

// Index is the informational index.json of a bundle.
type Index struct {
	Version   int          `json:"version"`
	CIDCodec  string       `json:"cidCodec"`
	Strict    bool         `json:"strict,omitempty"`
	Manifests []IndexEntry `json:"manifests"`
}

// IndexEntry describes one manifest in a bundle. Status is the primary
// validation code at export time.
type IndexEntry struct {
	CID    string      `json:"cid"`
	Size   int         `json:"size"`
	Hash   string      `json:"hash"`
	Status status.Code `json:"status"`
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epoch0,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := io.Copy(tw, bytes.NewReader(content))
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}
	parts := strings.Split(name, "/")
	for _, part := range parts {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return name
}
