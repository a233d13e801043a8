package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	MetaMagicKey   = "mangiato_magic"
	MetaVersionKey = "mangiato_version"
	MetaMagic      = "mangiato"
	MetaVersion    = "1"
)

// ErrNotAStore is returned by OpenStore when the meta table is missing or
// carries a foreign magic value.
var ErrNotAStore = errors.New("not a mangiato store")

// StampMeta writes the magic and version rows.
func StampMeta(ctx context.Context, db *sql.DB, sqlt SQL) error {
	if _, err := db.ExecContext(ctx, sqlt.SetMeta, MetaMagicKey, MetaMagic); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, sqlt.SetMeta, MetaVersionKey, MetaVersion)
	return err
}

// CheckMeta verifies the magic and version rows written by StampMeta.
func CheckMeta(ctx context.Context, db *sql.DB, sqlt SQL) error {
	var magic string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, MetaMagicKey).Scan(&magic); err != nil {
		return fmt.Errorf("%w: %v", ErrNotAStore, err)
	}
	if magic != MetaMagic {
		return ErrNotAStore
	}
	var version string
	if err := db.QueryRowContext(ctx, sqlt.GetMeta, MetaVersionKey).Scan(&version); err != nil {
		return err
	}
	if version != MetaVersion {
		return fmt.Errorf("unsupported store version %s", version)
	}
	return nil
}
