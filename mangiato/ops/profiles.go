package ops

import (
	"context"
	"fmt"

	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/storage"
)

func InsertProfile(ctx context.Context, q Querier, sqlt storage.SQL, p model.Profile) error {
	if _, err := q.ExecContext(ctx, sqlt.InsertProfile, p.UserID, p.MaximumCalories); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func GetProfile(ctx context.Context, q Querier, sqlt storage.SQL, userID int64) (model.Profile, error) {
	p, err := scanProfile(q.QueryRowContext(ctx, sqlt.GetProfile, userID))
	if err != nil {
		return model.Profile{}, fmt.Errorf("get profile of user %d: %w", userID, err)
	}
	return p, nil
}

func UpdateProfile(ctx context.Context, q Querier, sqlt storage.SQL, userID int64, maxCalories float64) (bool, error) {
	return execAffected(ctx, q, "update profile", sqlt.UpdateProfile, userID, maxCalories)
}
