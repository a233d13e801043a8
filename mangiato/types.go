package mangiato

import (
	"context"
	"log/slog"
	"time"

	"github.com/nonibytes/mangiato/mangiato/budget"
	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/planner"
)

type (
	User       = model.User
	Profile    = model.Profile
	Meal       = model.Meal
	Invitation = model.Invitation
	PageInfo   = planner.PageInfo
)

const (
	InvitationPending  = model.InvitationPending
	InvitationAccepted = model.InvitationAccepted

	// LimitAttemptsLogin failed logins block a user.
	LimitAttemptsLogin = 3
)

// CalorieEstimator guesses a meal's calories from its description. A nil
// result means no estimate; the meal keeps empty calories.
type CalorieEstimator interface {
	EstimateCalories(ctx context.Context, description string) *float64
}

// Options configures store behavior
type Options struct {
	Now                func() time.Time
	Logger             *slog.Logger
	Estimator          CalorieEstimator // optional
	DefaultMaxCalories float64          // default 2250
	LimitAttemptsLogin int64            // default 3
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		Now:                time.Now,
		DefaultMaxCalories: budget.DefaultMaxCalories,
		LimitAttemptsLogin: LimitAttemptsLogin,
	}
}

// ListOptions selects one page of a listing. Search is a filter expression
// such as "date eq '2019-02-01' and calories gt 500".
type ListOptions struct {
	Page    int
	PerPage int
	Sort    string
	Search  string
}

// Page is one page of a listing with its metadata.
type Page[T any] struct {
	Items []T
	PageInfo
}

// UserInput registers a user. Username is an email address.
type UserInput struct {
	Username  string
	FirstName string
	LastName  string
}

// MealInput carries every editable meal field. Date is YYYY-MM-DD and Time
// HH:MM:SS. Nil Calories asks the estimator.
type MealInput struct {
	Date        string
	Time        string
	Description string
	Calories    *float64
}

// MealPatch changes only the non-nil fields.
type MealPatch struct {
	Date        *string
	Time        *string
	Description *string
	Calories    *float64
}
