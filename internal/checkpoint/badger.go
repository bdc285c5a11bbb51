// Package checkpoint provides a local, file-backed checkpoint store for runs
// that have no Postgres available for the resume cursor.
package checkpoint

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/prospector/internal/repository"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

var checkpointKey = []byte("checkpoint:last_location_id")

// BadgerStore implements repository.CheckpointStore on top of BadgerDB.
type BadgerStore struct {
	db  *badger.DB
	log *slog.Logger
}

var _ repository.CheckpointStore = (*BadgerStore)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBadgerStore opens (or creates) the checkpoint database in dir.
// An empty dir opens an in-memory database.
func OpenBadgerStore(dir string, log *slog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = &badgerLoggerAdapter{logger: log}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}

	return &BadgerStore{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Read returns the stored checkpoint, or 0 when none was written yet.
func (s *BadgerStore) Read(_ context.Context) (int64, error) {
	var value int64
	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(checkpointKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupted checkpoint value of %d bytes", len(val))
			}
			value = int64(binary.BigEndian.Uint64(val))
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read checkpoint: %w", repository.ErrStoreUnavailable, err)
	}

	return value, nil
}

// Write replaces the stored checkpoint unconditionally.
func (s *BadgerStore) Write(ctx context.Context, value int64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(value))

	err := s.db.Update(func(tx *badger.Txn) error {
		return tx.Set(checkpointKey, buf)
	})
	if err != nil {
		return fmt.Errorf("%w: failed to write checkpoint: %w", repository.ErrStoreUnavailable, err)
	}

	s.log.DebugContext(ctx, "Checkpoint has been written.", "value", value)

	return nil
}
