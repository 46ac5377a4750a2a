package account

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"golang.org/x/crypto/hkdf"
)

// deriveInfo is the constant info string used in HKDF-SHA256 account derivation.
const deriveInfo = "reflux-account-derivation"

// Derive deterministically derives the index-th account from a seed using
// HKDF-SHA256. The same (seed, index) pair always yields the same account;
// distinct indices yield independent accounts. Intended for tools and tests
// that need reproducible account sets without managing key pairs.
//
// The HKDF parameters are:
//   - IKM  = seed
//   - Salt = big-endian uint32 index
//   - Info = "reflux-account-derivation"
func Derive(seed []byte, index uint32) (Account, error) {
	if len(seed) == 0 {
		return Null, ErrEmptySeed
	}

	salt := make([]byte, 4)
	binary.BigEndian.PutUint32(salt, index)

	r := hkdf.New(sha256.New, seed, salt, []byte(deriveInfo))
	material := make([]byte, 32)
	if _, err := io.ReadFull(r, material); err != nil {
		return Null, fmt.Errorf("account: hkdf derivation: %w", err)
	}

	var a Account
	copy(a[:], bsvhash.Hash160(material))
	return a, nil
}
