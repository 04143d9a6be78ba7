package formation

import "context"

// Repository exposes formation persistence operations.
type Repository interface {
	GetByEvent(ctx context.Context, eventID string) (Formation, bool, error)
	Save(ctx context.Context, item Formation) error
}
