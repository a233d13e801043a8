package mangiato

import (
	"context"
	"database/sql"

	"github.com/nonibytes/mangiato/mangiato/ops"
)

func (s *Store) GetProfile(ctx context.Context, userID int64) (Profile, error) {
	p, err := ops.GetProfile(ctx, s.db, s.sqlt(), userID)
	if err != nil {
		return Profile{}, lookupError(err, "profile", userID)
	}
	return p, nil
}

// UpdateProfile sets the user's daily maximum and re-flags every meal the
// user has logged.
func (s *Store) UpdateProfile(ctx context.Context, userID int64, maxCalories float64) (Profile, error) {
	if err := validateMaxCalories(maxCalories); err != nil {
		return Profile{}, err
	}
	sqlt := s.sqlt()

	// Meal writes hold the user lock shared, so the days listed below stay
	// complete until the transaction commits.
	unlock := s.recalc.LockUser(userID)
	defer unlock()

	var out Profile
	var days []string
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		ok, err := ops.UpdateProfile(ctx, tx, sqlt, userID, maxCalories)
		if err != nil {
			return err
		}
		if !ok {
			return NotFoundError("profile", userID)
		}
		days, err = ops.MealDays(ctx, tx, sqlt, userID)
		if err != nil {
			return err
		}
		src := s.budgetSource(tx)
		for _, d := range days {
			if _, err := s.recalc.RecalculateDay(ctx, src, userID, d, ""); err != nil {
				return err
			}
		}
		out, err = ops.GetProfile(ctx, tx, sqlt, userID)
		return err
	})
	if err != nil {
		return Profile{}, err
	}
	s.logger.Info("profile updated", "user_id", userID, "maximum_calories", maxCalories, "days", len(days))
	return out, nil
}
