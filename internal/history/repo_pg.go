package history

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Record(ctx context.Context, req Request, inputIDs, recommendedIDs []int64) (id int64, err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
INSERT INTO user_requests (user_id, city, neighborhood, input_weight, revisit_weight, created_at)
VALUES ($1, $2, $3, $4, $5, now())
RETURNING id`,
		req.UserID,
		req.City,
		nullableString(req.Neighborhood),
		req.InputWeight,
		req.RevisitWeight,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	const rowQuery = `
INSERT INTO request_restaurants (user_request_id, restaurant_id, type)
VALUES ($1, $2, $3)`
	for _, rid := range inputIDs {
		if _, err = tx.ExecContext(ctx, rowQuery, id, rid, string(KindInput)); err != nil {
			return 0, err
		}
	}
	for _, rid := range recommendedIDs {
		if _, err = tx.ExecContext(ctx, rowQuery, id, rid, string(KindRecommendation)); err != nil {
			return 0, err
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PGRepo) PreviouslyRecommended(ctx context.Context, userID int64, city string) ([]int64, error) {
	const query = `
SELECT rr.restaurant_id
FROM request_restaurants rr
JOIN user_requests ur ON ur.id = rr.user_request_id
WHERE ur.user_id = $1 AND lower(ur.city) = lower($2) AND rr.type = 'recommendation'
GROUP BY rr.restaurant_id
ORDER BY max(ur.created_at) DESC`
	return r.queryIDs(ctx, query, userID, city)
}

func (r *PGRepo) RestaurantIDs(ctx context.Context, userID int64) ([]int64, error) {
	const query = `
SELECT rr.restaurant_id
FROM request_restaurants rr
JOIN user_requests ur ON ur.id = rr.user_request_id
WHERE ur.user_id = $1
GROUP BY rr.restaurant_id
ORDER BY max(ur.created_at) DESC`
	return r.queryIDs(ctx, query, userID)
}

func (r *PGRepo) queryIDs(ctx context.Context, query string, args ...any) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
