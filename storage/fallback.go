package storage

import "github.com/ipfs/go-cid"

// Fallback reads from its stores in slice order and writes to the first.
//
// Order is the caller's responsibility and must be fixed, so that reads are
// deterministic.
type Fallback struct {
	Stores []Store
}

var _ Store = Fallback{}

func (f Fallback) Put(manifest []byte) (cid.Cid, error) {
	if len(f.Stores) == 0 {
		return cid.Undef, ErrNoBackends
	}
	return f.Stores[0].Put(manifest)
}

func (f Fallback) Get(id cid.Cid) ([]byte, error) {
	return getInOrder(f.Stores, id)
}

func (f Fallback) Has(id cid.Cid) bool {
	for _, s := range f.Stores {
		if s != nil && s.Has(id) {
			return true
		}
	}
	return false
}

// getInOrder returns the first successful read. Not-found answers fall
// through to the next store; any other error stops the search.
func getInOrder(stores []Store, id cid.Cid) ([]byte, error) {
	for _, s := range stores {
		if s == nil {
			continue
		}
		b, err := s.Get(id)
		if err == nil {
			return b, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}
