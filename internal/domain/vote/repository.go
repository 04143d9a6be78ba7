package vote

import "context"

// Repository exposes vote persistence operations.
type Repository interface {
	ListByEvent(ctx context.Context, eventID string) ([]Vote, error)
	GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (Vote, bool, error)
	Upsert(ctx context.Context, item Vote) error
	Delete(ctx context.Context, eventID, participantID string) error
}
