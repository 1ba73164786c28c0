// Package storage defines the content-addressed manifest store.
//
// Manifests are opaque bytes keyed by a raw CIDv1 derived from those bytes
// (see package cidutil). Stores never interpret what they hold.
package storage

import "github.com/ipfs/go-cid"

// Store is a content-addressed store for manifest bytes.
//
// Contract:
//   - Put is idempotent and returns the CID of the bytes written.
//   - Stored manifests are immutable.
//   - Get returns ErrNotFound when the CID is absent and ErrCIDMismatch when
//     the stored bytes no longer hash to it.
type Store interface {
	Put(manifest []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

// Lister is implemented by stores that can enumerate their contents.
type Lister interface {
	List() ([]cid.Cid, error)
}
