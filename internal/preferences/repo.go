package preferences

import "context"

type Repo interface {
	Upsert(ctx context.Context, userID int64, entry Entry) error
	ListForUser(ctx context.Context, userID int64) ([]Entry, error)
}
