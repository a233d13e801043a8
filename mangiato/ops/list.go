package ops

import (
	"context"
	"fmt"

	"github.com/nonibytes/mangiato/mangiato/model"
	"github.com/nonibytes/mangiato/mangiato/planner"
	"github.com/nonibytes/mangiato/mangiato/storage"
	"github.com/nonibytes/mangiato/mangiato/storage/sqlbuilder"
)

// list runs one page of lq and scans each row with scan. The count runs
// first so the page metadata is filled even when the page is empty.
func list[T any](ctx context.Context, q Querier, style sqlbuilder.PlaceholderStyle, lq planner.ListQuery,
	scan func(scanner) (T, error)) ([]T, planner.PageInfo, error) {
	built, err := planner.BuildListSQL(sqlbuilder.New(style), lq)
	if err != nil {
		return nil, planner.PageInfo{}, err
	}

	var total int
	if err := q.QueryRowContext(ctx, built.Count, built.CountArgs...).Scan(&total); err != nil {
		return nil, planner.PageInfo{}, fmt.Errorf("count %s: %w", lq.Entity.Table, err)
	}
	info := planner.NewPageInfo(lq.Page, lq.PerPage, total)

	rows, err := q.QueryContext(ctx, built.Select, built.SelectArgs...)
	if err != nil {
		return nil, info, fmt.Errorf("list %s: %w", lq.Entity.Table, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, info, fmt.Errorf("scan %s: %w", lq.Entity.Table, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, info, err
	}
	return items, info, nil
}

func ListUsers(ctx context.Context, q Querier, style sqlbuilder.PlaceholderStyle, lq planner.ListQuery) ([]model.User, planner.PageInfo, error) {
	lq.Columns = storage.UserColumns
	return list(ctx, q, style, lq, scanUser)
}

func ListMeals(ctx context.Context, q Querier, style sqlbuilder.PlaceholderStyle, lq planner.ListQuery) ([]model.Meal, planner.PageInfo, error) {
	lq.Columns = storage.MealColumns
	return list(ctx, q, style, lq, scanMeal)
}

func ListInvitations(ctx context.Context, q Querier, style sqlbuilder.PlaceholderStyle, lq planner.ListQuery) ([]model.Invitation, planner.PageInfo, error) {
	lq.Columns = storage.InvitationColumns
	return list(ctx, q, style, lq, scanInvitation)
}
