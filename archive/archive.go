// Package archive keeps the raw manifest payload of every import in an
// embedded badger store, keyed by import ID. Payloads are write-once and
// independent of the live container table.
package archive

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

var ErrNotFound = errors.New("archive: import not found")

const keyPrefix = "edi/"

type Archive struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (or creates) the archive at the given directory.
func Open(path string, logger *slog.Logger) (*Archive, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening archive at %s: %w", path, err)
	}
	return &Archive{db: db, logger: logger}, nil
}

// Put stores the raw manifest bytes of one import.
func (a *Archive) Put(importID string, payload []byte) error {
	err := a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+importID), payload)
	})
	if err != nil {
		return fmt.Errorf("archiving import %s: %w", importID, err)
	}
	a.logger.Info("Archived raw manifest", "import_id", importID, "bytes", len(payload))
	return nil
}

// Get returns the raw manifest bytes of one import, or ErrNotFound.
func (a *Archive) Get(importID string) ([]byte, error) {
	var payload []byte
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + importID))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading import %s: %w", importID, err)
	}
	return payload, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}
