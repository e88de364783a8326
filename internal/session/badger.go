package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fraud-detector/internal/models"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const keyPrefix = "session:"

// BadgerConfig configures a BadgerStore.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path     string
	InMemory bool
	// TTL expires idle sessions. Zero keeps them forever.
	TTL time.Duration
}

// BadgerStore persists sessions in an embedded BadgerDB so they survive
// restarts of a single server process.
type BadgerStore struct {
	db     *badger.DB
	ttl    time.Duration
	logger *zap.Logger
}

// badgerLogger adapts zap to BadgerDB's Logger interface.
type badgerLogger struct {
	sugar *zap.SugaredLogger
}

func (l *badgerLogger) Errorf(format string, args ...interface{})   { l.sugar.Errorf(format, args...) }
func (l *badgerLogger) Warningf(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }
func (l *badgerLogger) Infof(format string, args ...interface{})    { l.sugar.Debugf(format, args...) }
func (l *badgerLogger) Debugf(format string, args ...interface{})   { l.sugar.Debugf(format, args...) }

func NewBadgerStore(cfg BadgerConfig, logger *zap.Logger) (*BadgerStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("badger session store requires a path")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(&badgerLogger{sugar: logger.Sugar()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	logger.Info("Badger session store opened",
		zap.String("path", cfg.Path),
		zap.Bool("in_memory", cfg.InMemory))

	return &BadgerStore{db: db, ttl: cfg.TTL, logger: logger}, nil
}

func (s *BadgerStore) Get(_ context.Context, id string) (models.SessionState, error) {
	var state models.SessionState
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &state)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.SessionState{}, ErrNotFound
	}
	if err != nil {
		return models.SessionState{}, fmt.Errorf("failed to read session: %w", err)
	}
	return state, nil
}

func (s *BadgerStore) Save(_ context.Context, id string, state models.SessionState) error {
	val, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(keyPrefix+id), val)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (s *BadgerStore) Clear(_ context.Context, id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
