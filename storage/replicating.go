package storage

import (
	"fmt"

	"github.com/ipfs/go-cid"
)

// Named associates a store with a stable name for reporting.
type Named struct {
	Name  string
	Store Store
}

// Replicating writes every manifest to all of its stores and reads with
// fallback in order.
//
// All stores must agree on the CID; otherwise Put fails with ErrCIDMismatch.
type Replicating struct {
	Stores []Named
}

var _ Store = Replicating{}

// PutAll writes manifest to every store and returns the agreed CID together
// with the CID each store reported.
func (r Replicating) PutAll(manifest []byte) (cid.Cid, map[string]cid.Cid, error) {
	if len(r.Stores) == 0 {
		return cid.Undef, nil, ErrNoBackends
	}
	out := make(map[string]cid.Cid, len(r.Stores))
	var want cid.Cid
	for i, n := range r.Stores {
		if n.Store == nil {
			return cid.Undef, out, fmt.Errorf("storage: nil store %q", n.Name)
		}
		got, err := n.Store.Put(manifest)
		if err != nil {
			return cid.Undef, out, fmt.Errorf("storage: put to %q: %w", n.Name, err)
		}
		out[n.Name] = got
		if i == 0 {
			want = got
			continue
		}
		if !got.Equals(want) {
			return cid.Undef, out, ErrCIDMismatch
		}
	}
	return want, out, nil
}

func (r Replicating) Put(manifest []byte) (cid.Cid, error) {
	id, _, err := r.PutAll(manifest)
	return id, err
}

func (r Replicating) Get(id cid.Cid) ([]byte, error) {
	stores := make([]Store, 0, len(r.Stores))
	for _, n := range r.Stores {
		stores = append(stores, n.Store)
	}
	return getInOrder(stores, id)
}

func (r Replicating) Has(id cid.Cid) bool {
	for _, n := range r.Stores {
		if n.Store != nil && n.Store.Has(id) {
			return true
		}
	}
	return false
}
