package storage

import (
	"context"
	"database/sql"

	"github.com/nonibytes/mangiato/mangiato/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Adapter abstracts database-specific operations
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle
	StoreID() string

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// CreateStore creates the tables if they are missing and stamps the
	// meta table. It is safe to call on an existing store.
	CreateStore(ctx context.Context, db *sql.DB) error
	// OpenStore verifies that db holds a store of a supported version.
	OpenStore(ctx context.Context, db *sql.DB) error

	SQL() SQL
}

// Builder interface for placeholder management
type Builder interface {
	Arg(v any) string
	Args() []any
	Len() int
}

// SQL holds SQL templates for the entity operations. Every statement that
// inserts a row ends in RETURNING id.
type SQL struct {
	GetMeta string
	SetMeta string

	InsertUser          string
	GetUser             string
	GetUserByUsername   string
	UpdateUserNames     string
	ConfirmUser         string
	SetUserBlocked      string
	IncrementAttempts   string
	DeleteUser          string
	DeleteMealsByUser   string
	DeleteProfileByUser string

	InsertProfile string
	GetProfile    string
	UpdateProfile string

	InsertMeal       string
	GetMeal          string
	UpdateMeal       string
	DeleteMeal       string
	DayMeals         string
	SetWithinBudget  string
	DistinctMealDays string

	InsertInvitation     string
	GetInvitation        string
	GetInvitationByEmail string
	SetInvitationStatus  string
	DeleteInvitation     string
}
