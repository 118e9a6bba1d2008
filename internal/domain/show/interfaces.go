package show

import (
	"context"
	"time"
)

// Repository provides persistence for shows.
type Repository interface {
	Create(ctx context.Context, s *Show) error
	Get(ctx context.Context, id string) (*Show, error)
	List(ctx context.Context, opts ListOptions) ([]Show, error)
	Search(ctx context.Context, query string, limit int) ([]Show, error)
	Update(ctx context.Context, s *Show) error
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
