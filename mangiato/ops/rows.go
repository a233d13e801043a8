// Package ops executes the entity statements of a storage.SQL template set.
// Every function takes a Querier, so the same code runs on a *sql.DB or
// inside a *sql.Tx.
package ops

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nonibytes/mangiato/mangiato/model"
)

// Querier is the subset of *sql.DB and *sql.Tx the operations use.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// scanUser reads storage.UserColumns.
func scanUser(s scanner) (model.User, error) {
	var (
		u           model.User
		confirmedOn sql.NullString
		createdAt   int64
	)
	if err := s.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Confirmed,
		&confirmedOn, &u.AttemptsLogin, &u.Blocked, &createdAt); err != nil {
		return model.User{}, err
	}
	if confirmedOn.Valid && confirmedOn.String != "" {
		t, err := time.ParseInLocation(model.DateTimeLayout, confirmedOn.String, time.UTC)
		if err != nil {
			return model.User{}, fmt.Errorf("parse confirmed_on of user %d: %w", u.ID, err)
		}
		u.ConfirmedOn = &t
	}
	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return u, nil
}

// scanMeal reads storage.MealColumns.
func scanMeal(s scanner) (model.Meal, error) {
	var (
		m        model.Meal
		calories sql.NullFloat64
	)
	if err := s.Scan(&m.ID, &m.UserID, &m.Date, &m.Time, &m.Description, &calories, &m.WithinBudget); err != nil {
		return model.Meal{}, err
	}
	if calories.Valid {
		v := calories.Float64
		m.Calories = &v
	}
	return m, nil
}

// scanInvitation reads storage.InvitationColumns.
func scanInvitation(s scanner) (model.Invitation, error) {
	var (
		inv       model.Invitation
		createdAt int64
	)
	if err := s.Scan(&inv.ID, &inv.Email, &inv.Token, &inv.Status, &createdAt); err != nil {
		return model.Invitation{}, err
	}
	inv.CreatedAt = time.UnixMilli(createdAt).UTC()
	return inv, nil
}

func scanProfile(s scanner) (model.Profile, error) {
	var p model.Profile
	err := s.Scan(&p.UserID, &p.MaximumCalories)
	return p, err
}

// nullFloat converts an optional value to a driver argument.
func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func formatTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(model.DateTimeLayout)
}
