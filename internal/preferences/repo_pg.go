package preferences

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, userID int64, entry Entry) error {
	const query = `
INSERT INTO user_restaurant_preferences (user_id, restaurant_id, preference, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, restaurant_id) DO UPDATE SET
  preference = EXCLUDED.preference,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, userID, entry.RestaurantID, string(entry.Preference))
	return err
}

func (r *PGRepo) ListForUser(ctx context.Context, userID int64) ([]Entry, error) {
	const query = `
SELECT restaurant_id, preference
FROM user_restaurant_preferences
WHERE user_id = $1
ORDER BY restaurant_id`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var pref string
		if err := rows.Scan(&e.RestaurantID, &pref); err != nil {
			return nil, err
		}
		e.Preference = Preference(pref)
		out = append(out, e)
	}
	return out, rows.Err()
}
