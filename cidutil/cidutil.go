// Package cidutil derives content identifiers for manifest bytes.
package cidutil

import (
	"errors"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/sha3"
)

// Hash function names accepted by CIDv1Raw.
const (
	SHA2_256 = "sha2-256"
	SHA3_256 = "sha3-256"
)

// ErrUnsupportedHash is returned for hash names or multihash codes other than
// sha2-256 and sha3-256.
var ErrUnsupportedHash = errors.New("cidutil: unsupported hash function")

// CIDv1RawSHA256 returns a CIDv1 string using the "raw" multicodec
// and a sha2-256 multihash.
func CIDv1RawSHA256(data []byte) string {
	id, err := CIDv1RawSHA256CID(data)
	if err != nil {
		return ""
	}
	return id.String()
}

// CIDv1RawSHA256CID returns a CIDv1 (raw + sha2-256) derived from data.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// CIDv1Raw returns a raw CIDv1 for data using the named hash function.
// An empty name selects sha2-256.
func CIDv1Raw(data []byte, hash string) (cid.Cid, error) {
	switch hash {
	case "", SHA2_256:
		return CIDv1RawSHA256CID(data)
	case SHA3_256:
		sum := sha3.Sum256(data)
		mh, err := multihash.Encode(sum[:], multihash.SHA3_256)
		if err != nil {
			return cid.Undef, err
		}
		return cid.NewCidV1(cid.Raw, mh), nil
	default:
		return cid.Undef, fmt.Errorf("%w: %q", ErrUnsupportedHash, hash)
	}
}

// HashName returns the hash function name used by id.
func HashName(id cid.Cid) (string, error) {
	dec, err := multihash.Decode(id.Hash())
	if err != nil {
		return "", err
	}
	switch dec.Code {
	case multihash.SHA2_256:
		return SHA2_256, nil
	case multihash.SHA3_256:
		return SHA3_256, nil
	default:
		return "", fmt.Errorf("%w: multihash code 0x%x", ErrUnsupportedHash, dec.Code)
	}
}

// Matches reports whether id addresses data, recomputing the digest with the
// hash function recorded in id.
func Matches(id cid.Cid, data []byte) (bool, error) {
	if !id.Defined() {
		return false, errors.New("cidutil: undefined cid")
	}
	name, err := HashName(id)
	if err != nil {
		return false, err
	}
	got, err := CIDv1Raw(data, name)
	if err != nil {
		return false, err
	}
	return got.Equals(id), nil
}
