package mangiato

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/ops"
	"github.com/nonibytes/mangiato/mangiato/planner"
	"github.com/nonibytes/mangiato/mangiato/schema"
)

// CreateUser registers a user and gives it a profile with the default daily
// maximum.
func (s *Store) CreateUser(ctx context.Context, in UserInput) (User, error) {
	username, err := normalizeEmail("username", in.Username)
	if err != nil {
		return User{}, err
	}
	u := model.User{
		Username:  username,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}

	var out User
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		out, err = s.insertUser(ctx, tx, u)
		return err
	})
	if err != nil {
		return User{}, err
	}
	s.logger.Info("user created", "user_id", out.ID, "username", out.Username)
	return out, nil
}

// insertUser stores u plus its profile and returns the stored row.
func (s *Store) insertUser(ctx context.Context, tx *sql.Tx, u model.User) (User, error) {
	sqlt := s.sqlt()
	if _, err := ops.GetUserByUsername(ctx, tx, sqlt, u.Username); err == nil {
		return User{}, ConflictError("A user with that username already exists.")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	id, err := ops.InsertUser(ctx, tx, sqlt, u, s.now())
	if err != nil {
		return User{}, err
	}
	if err := ops.InsertProfile(ctx, tx, sqlt, model.Profile{UserID: id, MaximumCalories: s.opts.DefaultMaxCalories}); err != nil {
		return User{}, err
	}
	return ops.GetUser(ctx, tx, sqlt, id)
}

func (s *Store) GetUser(ctx context.Context, id int64) (User, error) {
	u, err := ops.GetUser(ctx, s.db, s.sqlt(), id)
	if err != nil {
		return User{}, lookupError(err, "user", id)
	}
	return u, nil
}

// ListUsers returns one page of users matching opts.Search.
func (s *Store) ListUsers(ctx context.Context, opts ListOptions) (Page[User], error) {
	lq, err := listQuery(schema.Users(), opts)
	if err != nil {
		return Page[User]{}, err
	}
	items, info, err := ops.ListUsers(ctx, s.db, s.adapter.PlaceholderStyle(), lq)
	if err != nil {
		return Page[User]{}, storeError("list users", err)
	}
	return Page[User]{Items: items, PageInfo: info}, nil
}

// UpdateUser changes the user's names.
func (s *Store) UpdateUser(ctx context.Context, id int64, firstName, lastName string) (User, error) {
	ok, err := ops.UpdateUserNames(ctx, s.db, s.sqlt(), id, strings.TrimSpace(firstName), strings.TrimSpace(lastName))
	if err != nil {
		return User{}, storeError("update user", err)
	}
	if !ok {
		return User{}, NotFoundError("user", id)
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user with its profile and meals.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err := ops.DeleteUser(ctx, tx, s.sqlt(), id)
		if err != nil {
			return err
		}
		if !ok {
			return NotFoundError("user", id)
		}
		s.logger.Info("user deleted", "user_id", id)
		return nil
	})
}

// ConfirmUser marks the user's address as confirmed now.
func (s *Store) ConfirmUser(ctx context.Context, id int64) (User, error) {
	ok, err := ops.ConfirmUser(ctx, s.db, s.sqlt(), id, s.now())
	if err != nil {
		return User{}, storeError("confirm user", err)
	}
	if !ok {
		return User{}, NotFoundError("user", id)
	}
	return s.GetUser(ctx, id)
}

// SetBlocked blocks or unblocks the user. Unblocking resets the failed login
// counter.
func (s *Store) SetBlocked(ctx context.Context, id int64, blocked bool) (User, error) {
	ok, err := ops.SetUserBlocked(ctx, s.db, s.sqlt(), id, blocked)
	if err != nil {
		return User{}, storeError("set blocked", err)
	}
	if !ok {
		return User{}, NotFoundError("user", id)
	}
	s.logger.Info("user block changed", "user_id", id, "blocked", blocked)
	return s.GetUser(ctx, id)
}

// RecordFailedLogin counts one failed login. The user is blocked once the
// counter reaches the configured limit.
func (s *Store) RecordFailedLogin(ctx context.Context, id int64) (User, error) {
	attempts, blocked, err := ops.IncrementAttempts(ctx, s.db, s.sqlt(), id, s.opts.LimitAttemptsLogin)
	if err != nil {
		return User{}, lookupError(err, "user", id)
	}
	if blocked {
		s.logger.Warn("user blocked after failed logins", "user_id", id, "attempts", attempts)
	}
	return s.GetUser(ctx, id)
}

// listQuery checks opts against ent and prepares the planner query. The
// filter is parsed and resolved here so bad input fails before any SQL runs.
func listQuery(ent *schema.Entity, opts ListOptions) (planner.ListQuery, error) {
	if _, ok := ent.ResolveSort(opts.Sort); !ok {
		return planner.ListQuery{}, UnknownSortFieldError(opts.Sort)
	}
	expr, err := planner.ParseFilter(opts.Search)
	if err != nil {
		return planner.ListQuery{}, err
	}
	if expr != nil {
		if err := planner.Check(ent, expr); err != nil {
			return planner.ListQuery{}, err
		}
	}
	return planner.ListQuery{
		Entity:  ent,
		Filter:  expr,
		Sort:    opts.Sort,
		Page:    opts.Page,
		PerPage: opts.PerPage,
	}, nil
}
