package participant

import "context"

// Repository exposes participant read operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Participant, bool, error)
	GetByIDs(ctx context.Context, ids []string) ([]Participant, error)
	ListActive(ctx context.Context) ([]Participant, error)
	CountActive(ctx context.Context) (int, error)
}
