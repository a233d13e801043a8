// Package budget keeps the per-meal within-budget flag consistent with the
// cumulative calories of the meal's day.
package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nonibytes/mangiato/internal/logging"
)

// DefaultMaxCalories is the daily maximum given to new profiles.
const DefaultMaxCalories = 2250.0

// Entry is the part of a meal the recalculation reads.
type Entry struct {
	ID       int64
	Time     string // HH:MM:SS
	Calories *float64
}

// Source is the storage the recalculator reads and writes through. Calls are
// made under the recalculator's per-day lock, typically within one
// transaction.
type Source interface {
	// DayMeals returns every meal of the user on date, in any order.
	DayMeals(ctx context.Context, userID int64, date string) ([]Entry, error)
	MaxCalories(ctx context.Context, userID int64) (float64, error)
	SetWithinBudget(ctx context.Context, mealID int64, within bool) error
}

// Consumed sums the calories of meals at or before t. Ties are included and
// meals without calories count as zero.
func Consumed(meals []Entry, t string) float64 {
	var sum float64
	for _, m := range meals {
		if m.Time <= t && m.Calories != nil {
			sum += *m.Calories
		}
	}
	return sum
}

// Flag reports whether intake up to t stays strictly below max.
func Flag(meals []Entry, t string, max float64) bool {
	return Consumed(meals, t) < max
}

// Recalculator recomputes flags for one day at a time.
type Recalculator struct {
	locks  *KeyedMutex
	logger *slog.Logger
}

func New(logger *slog.Logger) *Recalculator {
	return &Recalculator{
		locks:  NewKeyedMutex(),
		logger: logging.Default(logger).With("component", "budget"),
	}
}

// Lock serializes work on one (user, date). Write paths hold it across the
// meal change and the recalculation so both land together.
func (r *Recalculator) Lock(userID int64, date string) func() {
	return r.locks.Lock(dayKey(userID, date))
}

// userKey cannot collide with a dayKey: day keys always contain a slash.
func userKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func dayKey(userID int64, date string) string {
	return fmt.Sprintf("%d/%s", userID, date)
}

// RecalculateDay recomputes the flag of every meal of the day whose time is
// at or after floor. The sums still include earlier meals. The caller must
// hold Lock(userID, date).
func (r *Recalculator) RecalculateDay(ctx context.Context, src Source, userID int64, date, floor string) (int, error) {
	meals, err := src.DayMeals(ctx, userID, date)
	if err != nil {
		return 0, fmt.Errorf("load day meals: %w", err)
	}
	max, err := src.MaxCalories(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load maximum calories: %w", err)
	}

	updated := 0
	for _, m := range meals {
		if m.Time < floor {
			continue
		}
		if err := src.SetWithinBudget(ctx, m.ID, Flag(meals, m.Time, max)); err != nil {
			return updated, fmt.Errorf("set flag of meal %d: %w", m.ID, err)
		}
		updated++
	}

	r.logger.Debug("recalculated day", "user_id", userID, "date", date, "from", floor, "meals", updated)
	return updated, nil
}

// Change describes one meal write in terms of the days it touches. Zero
// values mean "no such side": a create has no Old, a delete has no New.
type Change struct {
	UserID  int64
	OldDate string
	OldTime string
	NewDate string
	NewTime string
}

// Apply runs the recalculations a meal change requires: the new day from the
// new time, and the old day from the old time when the date moved or the meal
// was deleted. The caller must hold the locks of both days.
func (r *Recalculator) Apply(ctx context.Context, src Source, c Change) error {
	if c.NewDate != "" {
		floor := c.NewTime
		// Moving a meal later within a day frees calories for the meals in
		// between, so start from whichever time is earlier.
		if c.OldDate == c.NewDate && c.OldTime != "" && c.OldTime < floor {
			floor = c.OldTime
		}
		if _, err := r.RecalculateDay(ctx, src, c.UserID, c.NewDate, floor); err != nil {
			return err
		}
	}
	if c.OldDate != "" && c.OldDate != c.NewDate {
		if _, err := r.RecalculateDay(ctx, src, c.UserID, c.OldDate, c.OldTime); err != nil {
			return err
		}
	}
	return nil
}

// LockDays takes the user's lock shared and then the locks of both days of c
// in a fixed order. It returns a function releasing all of them.
func (r *Recalculator) LockDays(c Change) func() {
	unlockUser := r.locks.RLock(userKey(c.UserID))
	keys := []string{}
	if c.OldDate != "" {
		keys = append(keys, dayKey(c.UserID, c.OldDate))
	}
	if c.NewDate != "" && c.NewDate != c.OldDate {
		keys = append(keys, dayKey(c.UserID, c.NewDate))
	}
	unlockDays := r.locks.LockAll(keys...)
	return func() {
		unlockDays()
		unlockUser()
	}
}

// LockUser takes the user's lock exclusively, for writes that touch a whole
// history such as a new daily maximum. No meal of the user is written until
// it is released, so the set of days cannot change underneath.
func (r *Recalculator) LockUser(userID int64) func() {
	return r.locks.Lock(userKey(userID))
}
