package settings

import "context"

type Repository interface {
	// Get returns the singleton row, creating it with defaults on first read.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
