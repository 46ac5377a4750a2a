package ledger

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/refluxorg/libreflux-go/account"
)

var (
	bucketBalances = []byte("balances")
	bucketMeta     = []byte("meta")

	keyTotalSupply = []byte("total_supply")
)

// BoltLedger is a bbolt-backed Ledger. Every Mint and Transfer runs inside
// a single bolt write transaction, so balance updates are atomic and
// durable across restarts.
type BoltLedger struct {
	db *bbolt.DB
}

// OpenBoltLedger opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltLedger(dbPath string) (*BoltLedger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("ledger: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBalances, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ledger: create buckets: %w", err)
	}

	return &BoltLedger{db: db}, nil
}

// Close closes the underlying database.
func (l *BoltLedger) Close() error { return l.db.Close() }

// BalanceOf returns the balance of acct.
func (l *BoltLedger) BalanceOf(acct account.Account) (uint64, error) {
	var bal uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		bal = getUint64(tx.Bucket(bucketBalances), acct[:])
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("ledger: read balance: %w", err)
	}
	return bal, nil
}

// TotalSupply returns the total minted supply.
func (l *BoltLedger) TotalSupply() (uint64, error) {
	var supply uint64
	err := l.db.View(func(tx *bbolt.Tx) error {
		supply = getUint64(tx.Bucket(bucketMeta), keyTotalSupply)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("ledger: read supply: %w", err)
	}
	return supply, nil
}

// Mint credits amount to acct and grows the supply.
func (l *BoltLedger) Mint(acct account.Account, amount uint64) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		supply := getUint64(meta, keyTotalSupply)
		if supply+amount < supply {
			return fmt.Errorf("%w: supply %d + %d", ErrSupplyOverflow, supply, amount)
		}

		balances := tx.Bucket(bucketBalances)
		if err := putUint64(balances, acct[:], getUint64(balances, acct[:])+amount); err != nil {
			return fmt.Errorf("write balance: %w", err)
		}
		return putUint64(meta, keyTotalSupply, supply+amount)
	})
}

// Transfer atomically moves amount between accounts within one bolt
// write transaction.
func (l *BoltLedger) Transfer(from, to account.Account, amount uint64) error {
	return l.db.Update(func(tx *bbolt.Tx) error {
		balances := tx.Bucket(bucketBalances)
		bal := getUint64(balances, from[:])
		if bal < amount {
			return fmt.Errorf("%w: balance %d, need %d", ErrInsufficientBalance, bal, amount)
		}

		if err := putUint64(balances, from[:], bal-amount); err != nil {
			return fmt.Errorf("write sender balance: %w", err)
		}
		// Re-read so a self-transfer observes the debit just written.
		if err := putUint64(balances, to[:], getUint64(balances, to[:])+amount); err != nil {
			return fmt.Errorf("write recipient balance: %w", err)
		}
		return nil
	})
}

// getUint64 reads a big-endian uint64, treating a missing key as 0.
func getUint64(b *bbolt.Bucket, key []byte) uint64 {
	v := b.Get(key)
	if len(v) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

// putUint64 writes a big-endian uint64, deleting the key when the value
// is 0 so empty accounts do not accumulate.
func putUint64(b *bbolt.Bucket, key []byte, v uint64) error {
	if v == 0 {
		return b.Delete(key)
	}
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return b.Put(key, buf)
}
