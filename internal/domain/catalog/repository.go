package catalog

import "context"

// Repository exposes the static category and club tables.
type Repository interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListClubs(ctx context.Context) ([]Club, error)
	GetCategory(ctx context.Context, id string) (Category, bool, error)
	GetClub(ctx context.Context, id string) (Club, bool, error)
}
