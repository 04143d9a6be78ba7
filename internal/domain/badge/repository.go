package badge

import "context"

// AwardedRepository exposes awarded-badge persistence operations.
type AwardedRepository interface {
	ListByParticipant(ctx context.Context, participantID string) ([]Awarded, error)
	// ApplyChanges adds and removes badges for one participant atomically,
	// so an interrupted reconciliation never leaves a half-applied set.
	ApplyChanges(ctx context.Context, participantID string, add []Awarded, removeCodes []string) error
}
