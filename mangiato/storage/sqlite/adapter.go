package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nonibytes/mangiato/mangiato/storage"
	"github.com/nonibytes/mangiato/mangiato/storage/sqlbuilder"
)

const (
	// DriverModernc is the pure-Go driver registered by modernc.org/sqlite.
	DriverModernc = "sqlite"
	// DriverMattn is the cgo driver registered by github.com/mattn/go-sqlite3.
	DriverMattn = "sqlite3"
)

type Adapter struct {
	Path       string
	DriverName string
}

func New(path string) *Adapter {
	return &Adapter{Path: path, DriverName: DriverModernc}
}

func NewWithDriver(path, driver string) *Adapter {
	if driver == "" {
		driver = DriverModernc
	}
	return &Adapter{Path: path, DriverName: driver}
}

func (a *Adapter) Backend() storage.Backend {
	return storage.BackendSQLite
}

func (a *Adapter) PlaceholderStyle() sqlbuilder.PlaceholderStyle {
	return sqlbuilder.PlaceholderQuestion
}

func (a *Adapter) StoreID() string {
	return a.Path
}

// dsn appends busy timeout and foreign key settings in the parameter syntax
// of the selected driver.
func (a *Adapter) dsn() string {
	params := "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	if a.DriverName == DriverMattn {
		params = "_busy_timeout=5000&_foreign_keys=on"
	}
	if strings.Contains(a.Path, "?") {
		return a.Path + "&" + params
	}
	return a.Path + "?" + params
}

func (a *Adapter) Connect(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(a.DriverName, a.dsn())
	if err != nil {
		return nil, err
	}
	// One writer keeps day recalculations from tripping SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (a *Adapter) Close() error {
	return nil
}

func (a *Adapter) SQL() storage.SQL {
	return SQLTemplates
}

func (a *Adapter) CreateStore(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ddlBase); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode=WAL;")
	_, _ = db.ExecContext(ctx, "PRAGMA synchronous=NORMAL;")

	return storage.StampMeta(ctx, db, a.SQL())
}

func (a *Adapter) OpenStore(ctx context.Context, db *sql.DB) error {
	return storage.CheckMeta(ctx, db, a.SQL())
}
