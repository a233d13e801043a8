// Package seed loads users, meals and invitations from a YAML file into a
// store.
//
// Example:
//
//	users:
//	  - username: ada@example.com
//	    first_name: Ada
//	    confirmed: true
//	    max_calories: 1800
//	    meals:
//	      - {date: "2019-02-01", time: "09:00:00", description: eggs, calories: 1500}
//	invitations:
//	  - grace@example.com
//
// Quote dates and times so YAML keeps them as strings.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/nonibytes/mangiato/internal/logging"
	"github.com/nonibytes/mangiato/mangiato"
)

type File struct {
	Users       []User   `yaml:"users"`
	Invitations []string `yaml:"invitations"`
}

type User struct {
	Username    string   `yaml:"username"`
	FirstName   string   `yaml:"first_name"`
	LastName    string   `yaml:"last_name"`
	Confirmed   bool     `yaml:"confirmed"`
	Blocked     bool     `yaml:"blocked"`
	MaxCalories *float64 `yaml:"max_calories"`
	Meals       []Meal   `yaml:"meals"`
}

type Meal struct {
	Date        string   `yaml:"date"`
	Time        string   `yaml:"time"`
	Description string   `yaml:"description"`
	Calories    *float64 `yaml:"calories"`
}

// Store is the part of *mangiato.Store a seed file writes through.
type Store interface {
	CreateUser(ctx context.Context, in mangiato.UserInput) (mangiato.User, error)
	ConfirmUser(ctx context.Context, id int64) (mangiato.User, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) (mangiato.User, error)
	UpdateProfile(ctx context.Context, userID int64, maxCalories float64) (mangiato.Profile, error)
	CreateMeal(ctx context.Context, userID int64, in mangiato.MealInput) (mangiato.Meal, error)
	CreateInvitation(ctx context.Context, email string) (mangiato.Invitation, error)
}

// Summary counts what Apply created.
type Summary struct {
	Users       int
	Meals       int
	Invitations int
}

// Parse decodes a seed file. Unknown keys are rejected so typos surface.
func Parse(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r, yaml.DisallowUnknownField()).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

// Apply writes f to st in file order and stops at the first error. Rows
// created before the error stay.
func Apply(ctx context.Context, st Store, f File, logger *slog.Logger) (Summary, error) {
	logger = logging.Default(logger).With("component", "seed")
	var sum Summary

	for _, u := range f.Users {
		created, err := st.CreateUser(ctx, mangiato.UserInput{Username: u.Username, FirstName: u.FirstName, LastName: u.LastName})
		if err != nil {
			return sum, fmt.Errorf("user %s: %w", u.Username, err)
		}
		sum.Users++

		if u.Confirmed {
			if _, err := st.ConfirmUser(ctx, created.ID); err != nil {
				return sum, fmt.Errorf("confirm %s: %w", u.Username, err)
			}
		}
		if u.Blocked {
			if _, err := st.SetBlocked(ctx, created.ID, true); err != nil {
				return sum, fmt.Errorf("block %s: %w", u.Username, err)
			}
		}
		if u.MaxCalories != nil {
			if _, err := st.UpdateProfile(ctx, created.ID, *u.MaxCalories); err != nil {
				return sum, fmt.Errorf("profile of %s: %w", u.Username, err)
			}
		}

		for i, m := range u.Meals {
			in := mangiato.MealInput{Date: m.Date, Time: m.Time, Description: m.Description, Calories: m.Calories}
			if _, err := st.CreateMeal(ctx, created.ID, in); err != nil {
				return sum, fmt.Errorf("meal %d of %s: %w", i+1, u.Username, err)
			}
			sum.Meals++
		}
		logger.Debug("seeded user", "username", created.Username, "meals", len(u.Meals))
	}

	for _, email := range f.Invitations {
		if _, err := st.CreateInvitation(ctx, email); err != nil {
			return sum, fmt.Errorf("invitation %s: %w", email, err)
		}
		sum.Invitations++
	}

	logger.Info("seed applied", "users", sum.Users, "meals", sum.Meals, "invitations", sum.Invitations)
	return sum, nil
}
