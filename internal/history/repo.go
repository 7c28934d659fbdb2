package history

import "context"

type Repo interface {
	// Record stores the request and its input and recommendation rows, returning the request id.
	Record(ctx context.Context, req Request, inputIDs, recommendedIDs []int64) (int64, error)
	// PreviouslyRecommended lists restaurants recommended to the user in a city, newest first.
	PreviouslyRecommended(ctx context.Context, userID int64, city string) ([]int64, error)
	// RestaurantIDs lists every restaurant the user has input or been recommended.
	RestaurantIDs(ctx context.Context, userID int64) ([]int64, error)
}
