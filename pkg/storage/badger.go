package storage

import (
	"fmt"
	"log"

	"github.com/dgraph-io/badger/v3"
)

// OpenBadger opens the embedded BadgerDB at path. An empty path opens an
// in-memory instance, which keeps previews and tests free of disk state.
func OpenBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	// Badger's own logger is chatty at INFO; the app logs what matters.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return db, nil
}

// CloseBadger closes the database, logging instead of failing on error.
func CloseBadger(db *badger.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Printf("Error closing badger: %v\n", err)
	}
}
