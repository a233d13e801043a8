package mangiato

import (
	"context"
	"database/sql"

	"github.com/nonibytes/mangiato/mangiato/budget"
	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/ops"
	"github.com/nonibytes/mangiato/mangiato/planner"
	"github.com/nonibytes/mangiato/mangiato/schema"
)

// mealWriteRetries bounds how often a write restarts when the meal changed
// between the unlocked read and the locked transaction.
const mealWriteRetries = 3

// CreateMeal logs a meal for userID. Missing calories are estimated from the
// description when an estimator is configured.
func (s *Store) CreateMeal(ctx context.Context, userID int64, in MealInput) (Meal, error) {
	in, err := validateMeal(in)
	if err != nil {
		return Meal{}, err
	}
	if _, err := s.GetUser(ctx, userID); err != nil {
		return Meal{}, err
	}
	if in.Calories == nil {
		in.Calories = s.estimate(ctx, in.Description)
	}

	m := model.Meal{
		UserID:       userID,
		Date:         in.Date,
		Time:         in.Time,
		Description:  in.Description,
		Calories:     in.Calories,
		WithinBudget: true,
	}
	change := budget.Change{UserID: userID, NewDate: m.Date, NewTime: m.Time}

	unlock := s.recalc.LockDays(change)
	defer unlock()

	var out Meal
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		id, err := ops.InsertMeal(ctx, tx, s.sqlt(), m)
		if err != nil {
			return err
		}
		if err := s.recalc.Apply(ctx, s.budgetSource(tx), change); err != nil {
			return err
		}
		out, err = ops.GetMeal(ctx, tx, s.sqlt(), id)
		return err
	})
	if err != nil {
		return Meal{}, err
	}
	s.logger.Debug("meal created", "user_id", userID, "meal_id", out.ID, "within_budget", out.WithinBudget)
	return out, nil
}

// GetMeal returns the meal only when userID owns it.
func (s *Store) GetMeal(ctx context.Context, userID, mealID int64) (Meal, error) {
	m, err := ops.GetMeal(ctx, s.db, s.sqlt(), mealID)
	if err != nil {
		return Meal{}, lookupError(err, "meal", mealID)
	}
	if m.UserID != userID {
		return Meal{}, NotFoundError("meal", mealID)
	}
	return m, nil
}

// UpdateMeal replaces every editable field. Calories are estimated again when
// the description changed or no calories were given.
func (s *Store) UpdateMeal(ctx context.Context, userID, mealID int64, in MealInput) (Meal, error) {
	in, err := validateMeal(in)
	if err != nil {
		return Meal{}, err
	}
	return s.writeMeal(ctx, userID, mealID, func(old Meal) (Meal, error) {
		next := old
		next.Date, next.Time, next.Description, next.Calories = in.Date, in.Time, in.Description, in.Calories
		if in.Calories == nil || in.Description != old.Description {
			if est := s.estimate(ctx, in.Description); est != nil || in.Calories == nil {
				next.Calories = est
			}
		}
		return next, nil
	})
}

// PatchMeal changes the fields set in p and keeps the rest.
func (s *Store) PatchMeal(ctx context.Context, userID, mealID int64, p MealPatch) (Meal, error) {
	return s.writeMeal(ctx, userID, mealID, func(old Meal) (Meal, error) {
		in := MealInput{Date: old.Date, Time: old.Time, Description: old.Description, Calories: old.Calories}
		if p.Date != nil {
			in.Date = *p.Date
		}
		if p.Time != nil {
			in.Time = *p.Time
		}
		if p.Description != nil {
			in.Description = *p.Description
		}
		if p.Calories != nil {
			in.Calories = p.Calories
		}
		in, err := validateMeal(in)
		if err != nil {
			return Meal{}, err
		}

		next := old
		next.Date, next.Time, next.Description, next.Calories = in.Date, in.Time, in.Description, in.Calories
		if p.Calories == nil && in.Description != old.Description {
			if est := s.estimate(ctx, in.Description); est != nil {
				next.Calories = est
			}
		}
		return next, nil
	})
}

// writeMeal reads the meal, derives the new row with mutate and stores it
// under the locks of the old and new day. If another writer changed the meal
// in between, the write starts over from the fresh row.
func (s *Store) writeMeal(ctx context.Context, userID, mealID int64, mutate func(old Meal) (Meal, error)) (Meal, error) {
	for attempt := 0; ; attempt++ {
		old, err := s.GetMeal(ctx, userID, mealID)
		if err != nil {
			return Meal{}, err
		}
		next, err := mutate(old)
		if err != nil {
			return Meal{}, err
		}

		out, changed, err := s.storeMeal(ctx, old, next)
		if err != nil || !changed {
			return out, err
		}
		if attempt+1 >= mealWriteRetries {
			return Meal{}, ConflictError("meal was modified concurrently, try again")
		}
	}
}

func (s *Store) storeMeal(ctx context.Context, old, next Meal) (Meal, bool, error) {
	change := budget.Change{
		UserID:  old.UserID,
		OldDate: old.Date,
		OldTime: old.Time,
		NewDate: next.Date,
		NewTime: next.Time,
	}
	unlock := s.recalc.LockDays(change)
	defer unlock()

	var (
		out     Meal
		changed bool
	)
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		sqlt := s.sqlt()
		cur, err := ops.GetMeal(ctx, tx, sqlt, old.ID)
		if err != nil {
			return lookupError(err, "meal", old.ID)
		}
		if !sameMeal(cur, old) {
			changed = true
			return nil
		}
		if _, err := ops.UpdateMeal(ctx, tx, sqlt, next); err != nil {
			return err
		}
		if err := s.recalc.Apply(ctx, s.budgetSource(tx), change); err != nil {
			return err
		}
		out, err = ops.GetMeal(ctx, tx, sqlt, old.ID)
		return err
	})
	return out, changed, err
}

// DeleteMeal removes the meal and re-flags the rest of its day.
func (s *Store) DeleteMeal(ctx context.Context, userID, mealID int64) error {
	for attempt := 0; attempt < mealWriteRetries; attempt++ {
		old, err := s.GetMeal(ctx, userID, mealID)
		if err != nil {
			return err
		}
		changed, err := s.deleteMeal(ctx, old)
		if err != nil || !changed {
			return err
		}
	}
	return ConflictError("meal was modified concurrently, try again")
}

func (s *Store) deleteMeal(ctx context.Context, old Meal) (bool, error) {
	change := budget.Change{UserID: old.UserID, OldDate: old.Date, OldTime: old.Time}
	unlock := s.recalc.LockDays(change)
	defer unlock()

	changed := false
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		sqlt := s.sqlt()
		cur, err := ops.GetMeal(ctx, tx, sqlt, old.ID)
		if err != nil {
			return lookupError(err, "meal", old.ID)
		}
		if !sameMeal(cur, old) {
			changed = true
			return nil
		}
		if _, err := ops.DeleteMeal(ctx, tx, sqlt, old.ID); err != nil {
			return err
		}
		return s.recalc.Apply(ctx, s.budgetSource(tx), change)
	})
	return changed, err
}

// sameMeal compares the user-written columns. The budget flag is left out:
// writes to other meals of the day may flip it.
func sameMeal(a, b Meal) bool {
	if a.UserID != b.UserID || a.Date != b.Date || a.Time != b.Time || a.Description != b.Description {
		return false
	}
	if a.Calories == nil || b.Calories == nil {
		return a.Calories == nil && b.Calories == nil
	}
	return *a.Calories == *b.Calories
}

// ListMeals returns one page of the user's meals matching opts.Search.
func (s *Store) ListMeals(ctx context.Context, userID int64, opts ListOptions) (Page[Meal], error) {
	ent := schema.Meals()
	lq, err := listQuery(ent, opts)
	if err != nil {
		return Page[Meal]{}, err
	}
	lq.Scopes = []planner.Scope{{Column: ent.ColumnOf("user_id"), Value: userID}}

	items, info, err := ops.ListMeals(ctx, s.db, s.adapter.PlaceholderStyle(), lq)
	if err != nil {
		return Page[Meal]{}, storeError("list meals", err)
	}
	return Page[Meal]{Items: items, PageInfo: info}, nil
}

// estimate asks the configured estimator, if any.
func (s *Store) estimate(ctx context.Context, description string) *float64 {
	if s.opts.Estimator == nil {
		return nil
	}
	return s.opts.Estimator.EstimateCalories(ctx, description)
}
