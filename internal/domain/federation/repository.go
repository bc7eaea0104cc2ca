package federation

import "context"

// Fetcher retrieves one page of matches from a federation's document store.
type Fetcher interface {
	FetchMatches(ctx context.Context, query Query) (Document, error)
}
