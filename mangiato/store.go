package mangiato

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/nonibytes/mangiato/internal/logging"
	"github.com/nonibytes/mangiato/mangiato/budget"
	"github.com/nonibytes/mangiato/mangiato/ops"
	"github.com/nonibytes/mangiato/mangiato/storage"
)

// Store represents an open mangiato database
type Store struct {
	adapter storage.Adapter
	db      *sql.DB
	opts    Options
	recalc  *budget.Recalculator
	logger  *slog.Logger
}

// Create creates the store's tables, or reuses them when they exist.
func Create(ctx context.Context, adapter storage.Adapter, opts Options) (*Store, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}
	if err := adapter.CreateStore(ctx, db); err != nil {
		db.Close()
		return nil, Wrap(ErrSQL, "create store", err)
	}
	return newStore(adapter, db, opts), nil
}

// Open opens an existing store
func Open(ctx context.Context, adapter storage.Adapter, opts Options) (*Store, error) {
	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}
	if err := adapter.OpenStore(ctx, db); err != nil {
		db.Close()
		return nil, Wrap(ErrSchema, "open store", err)
	}
	return newStore(adapter, db, opts), nil
}

func newStore(adapter storage.Adapter, db *sql.DB, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultMaxCalories <= 0 {
		opts.DefaultMaxCalories = budget.DefaultMaxCalories
	}
	if opts.LimitAttemptsLogin <= 0 {
		opts.LimitAttemptsLogin = LimitAttemptsLogin
	}
	logger := logging.Default(opts.Logger).With("component", "store", "store", adapter.StoreID())
	return &Store{
		adapter: adapter,
		db:      db,
		opts:    opts,
		recalc:  budget.New(opts.Logger),
		logger:  logger,
	}
}

// Close closes the store
func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return s.adapter.Close()
}

func (s *Store) sqlt() storage.SQL { return s.adapter.SQL() }

func (s *Store) now() time.Time { return s.opts.Now().UTC() }

// inTx runs fn in a transaction and commits when fn succeeds. SQLite stores
// hold a single connection, so fn must only use tx.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Wrap(ErrSQL, "begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return storeError("transaction", err)
	}
	if err := tx.Commit(); err != nil {
		return Wrap(ErrSQL, "commit", err)
	}
	return nil
}

// storeError keeps typed errors and wraps everything else as ErrSQL.
func storeError(msg string, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return Wrap(ErrSQL, msg, err)
}

// lookupError turns a missing row into a NotFound error.
func lookupError(err error, what string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return NotFoundError(what, id)
	}
	return storeError("get "+what, err)
}

func (s *Store) budgetSource(q ops.Querier) ops.BudgetSource {
	return ops.BudgetSource{Q: q, SQLT: s.sqlt(), Default: s.opts.DefaultMaxCalories}
}
