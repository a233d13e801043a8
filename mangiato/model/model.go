// Package model holds the entity records shared by the store, the budget
// recalculator and in-memory filtering.
package model

import "time"

const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
)

type User struct {
	ID            int64
	Username      string
	FirstName     string
	LastName      string
	Confirmed     bool
	ConfirmedOn   *time.Time
	AttemptsLogin int64
	Blocked       bool
	CreatedAt     time.Time
}

// Value exposes filterable fields by name.
func (u User) Value(field string) (any, bool) {
	switch field {
	case "id":
		return float64(u.ID), true
	case "username":
		return u.Username, true
	case "first_name":
		return u.FirstName, true
	case "last_name":
		return u.LastName, true
	case "confirmed":
		return u.Confirmed, true
	case "confirmed_on":
		if u.ConfirmedOn == nil {
			return nil, true
		}
		return u.ConfirmedOn.Format(DateTimeLayout), true
	case "attempts_login":
		return float64(u.AttemptsLogin), true
	case "blocked":
		return u.Blocked, true
	}
	return nil, false
}

type Profile struct {
	UserID          int64
	MaximumCalories float64
}

// Meal is one logged meal. Date and Time keep the YYYY-MM-DD and HH:MM:SS
// forms so they order lexically. WithinBudget is derived, see package budget.
type Meal struct {
	ID           int64
	UserID       int64
	Date         string
	Time         string
	Description  string
	Calories     *float64
	WithinBudget bool
}

func (m Meal) Value(field string) (any, bool) {
	switch field {
	case "meal_id":
		return float64(m.ID), true
	case "user_id":
		return float64(m.UserID), true
	case "date":
		return m.Date, true
	case "time":
		return m.Time, true
	case "description":
		return m.Description, true
	case "calories":
		if m.Calories == nil {
			return nil, true
		}
		return *m.Calories, true
	case "calories_less_expected":
		return m.WithinBudget, true
	}
	return nil, false
}

type Invitation struct {
	ID        int64
	Email     string
	Token     string
	Status    string
	CreatedAt time.Time
}

func (i Invitation) Value(field string) (any, bool) {
	switch field {
	case "id":
		return float64(i.ID), true
	case "email":
		return i.Email, true
	case "status":
		return i.Status, true
	}
	return nil, false
}
