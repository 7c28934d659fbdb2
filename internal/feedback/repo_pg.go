package feedback

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, userID int64, content string) (Suggestion, error) {
	const query = `
INSERT INTO feedback_suggestions (user_id, content, created_at)
VALUES ($1, $2, now())
RETURNING id, user_id, content, created_at`
	var s Suggestion
	err := r.DB.QueryRowContext(ctx, query, userID, content).Scan(&s.ID, &s.UserID, &s.Content, &s.CreatedAt)
	return s, err
}

func (r *PGRepo) Exists(ctx context.Context, suggestionID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM feedback_suggestions WHERE id = $1)`, suggestionID).Scan(&exists)
	return exists, err
}

func (r *PGRepo) List(ctx context.Context, viewerID int64) ([]SuggestionView, error) {
	const query = `
SELECT s.id, s.content, s.created_at,
       COALESCE(SUM(v.vote), 0) AS score,
       COALESCE(MAX(CASE WHEN v.user_id = $1 THEN v.vote END), 0) AS user_vote
FROM feedback_suggestions s
LEFT JOIN feedback_votes v ON v.suggestion_id = s.id
GROUP BY s.id, s.content, s.created_at`
	rows, err := r.DB.QueryContext(ctx, query, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SuggestionView
	for rows.Next() {
		var v SuggestionView
		if err := rows.Scan(&v.ID, &v.Content, &v.CreatedAt, &v.Score, &v.UserVote); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetVote(ctx context.Context, suggestionID, userID int64) (int, error) {
	var vote int
	err := r.DB.QueryRowContext(ctx, `
SELECT vote FROM feedback_votes WHERE suggestion_id = $1 AND user_id = $2`, suggestionID, userID).Scan(&vote)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return vote, err
}

func (r *PGRepo) SetVote(ctx context.Context, suggestionID, userID int64, vote int) error {
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO feedback_votes (suggestion_id, user_id, vote, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (suggestion_id, user_id) DO UPDATE SET vote = EXCLUDED.vote`, suggestionID, userID, vote)
	return err
}

func (r *PGRepo) DeleteVote(ctx context.Context, suggestionID, userID int64) error {
	_, err := r.DB.ExecContext(ctx, `
DELETE FROM feedback_votes WHERE suggestion_id = $1 AND user_id = $2`, suggestionID, userID)
	return err
}

func (r *PGRepo) Score(ctx context.Context, suggestionID int64) (int, error) {
	var score int
	err := r.DB.QueryRowContext(ctx, `
SELECT COALESCE(SUM(vote), 0) FROM feedback_votes WHERE suggestion_id = $1`, suggestionID).Scan(&score)
	return score, err
}
