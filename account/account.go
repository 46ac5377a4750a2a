// Package account defines the 20-byte account identifier used throughout
// libreflux and helpers for deriving identifiers from keys and seeds.
package account

import (
	"encoding/hex"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
)

// Size is the length of an account identifier in bytes.
const Size = 20

// Account identifies a balance-holding party: HASH160 of a compressed
// secp256k1 public key, the same 20-byte form used in P2PKH addresses.
type Account [Size]byte

// Null is the zero account. It is never a valid transfer recipient.
var Null Account

// IsNull reports whether a is the zero account.
func (a Account) IsNull() bool {
	return a == Null
}

// String returns the hex encoding of the account.
func (a Account) String() string {
	return hex.EncodeToString(a[:])
}

// FromPubKey computes the account for a public key:
// HASH160(compressed pubkey) = RIPEMD160(SHA256(compressed pubkey)).
func FromPubKey(pub *ec.PublicKey) Account {
	var a Account
	copy(a[:], bsvhash.Hash160(pub.Compressed()))
	return a
}

// FromBytes converts a 20-byte slice into an Account.
func FromBytes(b []byte) (Account, error) {
	var a Account
	if len(b) != Size {
		return a, ErrInvalidLength
	}
	copy(a[:], b)
	return a, nil
}

// FromHex parses a hex-encoded account identifier.
func FromHex(s string) (Account, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Null, ErrInvalidLength
	}
	return FromBytes(b)
}

// FromTag derives a well-known account from a fixed tag string:
// HASH160(tag). Used for system accounts that stand in for external
// venues and have no corresponding key pair.
func FromTag(tag string) Account {
	var a Account
	copy(a[:], bsvhash.Hash160([]byte(tag)))
	return a
}
