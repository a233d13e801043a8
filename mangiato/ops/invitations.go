package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/storage"
)

func InsertInvitation(ctx context.Context, q Querier, sqlt storage.SQL, inv model.Invitation, now time.Time) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, sqlt.InsertInvitation, inv.Email, inv.Token, inv.Status, now.UnixMilli()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert invitation: %w", err)
	}
	return id, nil
}

func GetInvitation(ctx context.Context, q Querier, sqlt storage.SQL, id int64) (model.Invitation, error) {
	inv, err := scanInvitation(q.QueryRowContext(ctx, sqlt.GetInvitation, id))
	if err != nil {
		return model.Invitation{}, fmt.Errorf("get invitation %d: %w", id, err)
	}
	return inv, nil
}

func GetInvitationByEmail(ctx context.Context, q Querier, sqlt storage.SQL, email string) (model.Invitation, error) {
	inv, err := scanInvitation(q.QueryRowContext(ctx, sqlt.GetInvitationByEmail, email))
	if err != nil {
		return model.Invitation{}, fmt.Errorf("get invitation %q: %w", email, err)
	}
	return inv, nil
}

func SetInvitationStatus(ctx context.Context, q Querier, sqlt storage.SQL, id int64, status string) (bool, error) {
	return execAffected(ctx, q, "set invitation status", sqlt.SetInvitationStatus, id, status)
}

func DeleteInvitation(ctx context.Context, q Querier, sqlt storage.SQL, id int64) (bool, error) {
	return execAffected(ctx, q, "delete invitation", sqlt.DeleteInvitation, id)
}
