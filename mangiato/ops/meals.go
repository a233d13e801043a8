package ops

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nonibytes/mangiato/mangiato/budget"
	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/storage"
)

// InsertMeal stores m with its current WithinBudget value and returns the id.
// The flag is recalculated by the caller afterwards.
func InsertMeal(ctx context.Context, q Querier, sqlt storage.SQL, m model.Meal) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, sqlt.InsertMeal,
		m.UserID, m.Date, m.Time, m.Description, nullFloat(m.Calories), m.WithinBudget,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert meal: %w", err)
	}
	return id, nil
}

func GetMeal(ctx context.Context, q Querier, sqlt storage.SQL, id int64) (model.Meal, error) {
	m, err := scanMeal(q.QueryRowContext(ctx, sqlt.GetMeal, id))
	if err != nil {
		return model.Meal{}, fmt.Errorf("get meal %d: %w", id, err)
	}
	return m, nil
}

// UpdateMeal writes the editable columns of m. within_budget is left to the
// recalculation.
func UpdateMeal(ctx context.Context, q Querier, sqlt storage.SQL, m model.Meal) (bool, error) {
	return execAffected(ctx, q, "update meal", sqlt.UpdateMeal,
		m.ID, m.Date, m.Time, m.Description, nullFloat(m.Calories))
}

func DeleteMeal(ctx context.Context, q Querier, sqlt storage.SQL, id int64) (bool, error) {
	return execAffected(ctx, q, "delete meal", sqlt.DeleteMeal, id)
}

// MealDays lists the distinct dates the user has meals on, ascending.
func MealDays(ctx context.Context, q Querier, sqlt storage.SQL, userID int64) ([]string, error) {
	rows, err := q.QueryContext(ctx, sqlt.DistinctMealDays, userID)
	if err != nil {
		return nil, fmt.Errorf("list meal days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// BudgetSource serves budget recalculation from q, usually the transaction
// of the meal write that triggered it.
type BudgetSource struct {
	Q    Querier
	SQLT storage.SQL
	// Default is the maximum used for users without a profile row. Zero
	// means budget.DefaultMaxCalories.
	Default float64
}

var _ budget.Source = BudgetSource{}

func (s BudgetSource) DayMeals(ctx context.Context, userID int64, date string) ([]budget.Entry, error) {
	rows, err := s.Q.QueryContext(ctx, s.SQLT.DayMeals, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []budget.Entry
	for rows.Next() {
		var (
			e        budget.Entry
			calories sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.Time, &calories); err != nil {
			return nil, err
		}
		if calories.Valid {
			v := calories.Float64
			e.Calories = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MaxCalories falls back to Default when the user has no profile row.
func (s BudgetSource) MaxCalories(ctx context.Context, userID int64) (float64, error) {
	p, err := scanProfile(s.Q.QueryRowContext(ctx, s.SQLT.GetProfile, userID))
	if errors.Is(err, sql.ErrNoRows) {
		if s.Default > 0 {
			return s.Default, nil
		}
		return budget.DefaultMaxCalories, nil
	}
	if err != nil {
		return 0, err
	}
	return p.MaximumCalories, nil
}

func (s BudgetSource) SetWithinBudget(ctx context.Context, mealID int64, within bool) error {
	_, err := s.Q.ExecContext(ctx, s.SQLT.SetWithinBudget, mealID, within)
	return err
}
