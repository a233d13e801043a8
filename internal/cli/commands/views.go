package commands

import (
	"time"

	"github.com/nonibytes/mangiato/mangiato"
)

type userView struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Confirmed     bool       `json:"confirmed"`
	ConfirmedOn   *time.Time `json:"confirmed_on"`
	AttemptsLogin int64      `json:"attempts_login"`
	Blocked       bool       `json:"blocked"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newUserView(u mangiato.User) userView {
	return userView{
		ID:            u.ID,
		Username:      u.Username,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Confirmed:     u.Confirmed,
		ConfirmedOn:   u.ConfirmedOn,
		AttemptsLogin: u.AttemptsLogin,
		Blocked:       u.Blocked,
		CreatedAt:     u.CreatedAt,
	}
}

type mealView struct {
	ID                   int64    `json:"id"`
	UserID               int64    `json:"user_id"`
	Date                 string   `json:"date"`
	Time                 string   `json:"time"`
	Description          string   `json:"description"`
	Calories             *float64 `json:"calories"`
	CaloriesLessExpected bool     `json:"calories_less_expected"`
}

func newMealView(m mangiato.Meal) mealView {
	return mealView{
		ID:                   m.ID,
		UserID:               m.UserID,
		Date:                 m.Date,
		Time:                 m.Time,
		Description:          m.Description,
		Calories:             m.Calories,
		CaloriesLessExpected: m.WithinBudget,
	}
}

type invitationView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func newInvitationView(inv mangiato.Invitation, withToken bool) invitationView {
	v := invitationView{ID: inv.ID, Email: inv.Email, Status: inv.Status, CreatedAt: inv.CreatedAt}
	if withToken {
		v.Token = inv.Token
	}
	return v
}

type pageView[T any] struct {
	Items   []T `json:"items"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

func newPageView[S, T any](p mangiato.Page[S], conv func(S) T) pageView[T] {
	items := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, conv(it))
	}
	return pageView[T]{Items: items, Page: p.Page, PerPage: p.PerPage, Total: p.Total, Pages: p.Pages}
}
