package storage

import (
	"sort"

	"github.com/ipfs/go-cid"
)

var (
	_ Lister = Fallback{}
	_ Lister = Replicating{}
)

// List returns the union of the contents of every store that implements
// Lister, sorted by CID string.
func (f Fallback) List() ([]cid.Cid, error) {
	return listAll(f.Stores)
}

// List returns the union of the contents of every store that implements
// Lister, sorted by CID string.
func (r Replicating) List() ([]cid.Cid, error) {
	stores := make([]Store, 0, len(r.Stores))
	for _, n := range r.Stores {
		stores = append(stores, n.Store)
	}
	return listAll(stores)
}

func listAll(stores []Store) ([]cid.Cid, error) {
	seen := map[string]cid.Cid{}
	for _, s := range stores {
		l, ok := s.(Lister)
		if !ok {
			continue
		}
		ids, err := l.List()
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			seen[id.String()] = id
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]cid.Cid, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out, nil
}
