package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/storage"
)

// InsertUser stores u and returns its id. ConfirmedOn is stored only when
// set; attempts and blocked start at zero.
func InsertUser(ctx context.Context, q Querier, sqlt storage.SQL, u model.User, now time.Time) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, sqlt.InsertUser,
		u.Username, u.FirstName, u.LastName, u.Confirmed, formatTimestamp(u.ConfirmedOn), now.UnixMilli(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// GetUser returns sql.ErrNoRows (wrapped) when id does not exist.
func GetUser(ctx context.Context, q Querier, sqlt storage.SQL, id int64) (model.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, sqlt.GetUser, id))
	if err != nil {
		return model.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

func GetUserByUsername(ctx context.Context, q Querier, sqlt storage.SQL, username string) (model.User, error) {
	u, err := scanUser(q.QueryRowContext(ctx, sqlt.GetUserByUsername, username))
	if err != nil {
		return model.User{}, fmt.Errorf("get user %q: %w", username, err)
	}
	return u, nil
}

func UpdateUserNames(ctx context.Context, q Querier, sqlt storage.SQL, id int64, first, last string) (bool, error) {
	return execAffected(ctx, q, "update user", sqlt.UpdateUserNames, id, first, last)
}

func ConfirmUser(ctx context.Context, q Querier, sqlt storage.SQL, id int64, at time.Time) (bool, error) {
	return execAffected(ctx, q, "confirm user", sqlt.ConfirmUser, id, formatTimestamp(&at))
}

// SetUserBlocked sets the blocked flag. Unblocking also clears the failed
// login counter.
func SetUserBlocked(ctx context.Context, q Querier, sqlt storage.SQL, id int64, blocked bool) (bool, error) {
	return execAffected(ctx, q, "set blocked", sqlt.SetUserBlocked, id, blocked)
}

// IncrementAttempts counts a failed login and blocks the user once limit is
// reached. It returns the new counter and blocked state.
func IncrementAttempts(ctx context.Context, q Querier, sqlt storage.SQL, id int64, limit int64) (int64, bool, error) {
	var (
		attempts int64
		blocked  bool
	)
	if err := q.QueryRowContext(ctx, sqlt.IncrementAttempts, id, limit).Scan(&attempts, &blocked); err != nil {
		return 0, false, fmt.Errorf("increment attempts of user %d: %w", id, err)
	}
	return attempts, blocked, nil
}

// DeleteUser removes the user and everything hanging off it. Children are
// deleted explicitly so stores created without foreign key enforcement stay
// clean too.
func DeleteUser(ctx context.Context, q Querier, sqlt storage.SQL, id int64) (bool, error) {
	if _, err := q.ExecContext(ctx, sqlt.DeleteMealsByUser, id); err != nil {
		return false, fmt.Errorf("delete meals of user %d: %w", id, err)
	}
	if _, err := q.ExecContext(ctx, sqlt.DeleteProfileByUser, id); err != nil {
		return false, fmt.Errorf("delete profile of user %d: %w", id, err)
	}
	return execAffected(ctx, q, "delete user", sqlt.DeleteUser, id)
}

func execAffected(ctx context.Context, q Querier, what, stmt string, args ...any) (bool, error) {
	res, err := q.ExecContext(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: rows affected: %w", what, err)
	}
	return n > 0, nil
}
