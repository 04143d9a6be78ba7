package badge

import "time"

// Tier orders badges for display purposes only.
type Tier string

const (
	TierBronze Tier = "BRONZE"
	TierSilver Tier = "SILVER"
	TierGold   Tier = "GOLD"
)

// Badge is one catalog entry. The catalog is read-mostly reference data
// loaded once at process start; the reconciler only ever mutates awarded
// rows, never the catalog itself.
type Badge struct {
	Code        string
	Name        string
	Description string
	Tier        Tier
}

// Awarded is one badge held by a participant.
type Awarded struct {
	ParticipantID string
	Code          string
	EarnedAt      time.Time
	Acknowledged  bool
}

const (
	CodeFirstWin       = "FIRST_WIN"
	CodeFirstLoss      = "FIRST_LOSS"
	CodeFirstDraw      = "FIRST_DRAW"
	CodeAttendanceStar = "ATTENDANCE_STAR"
	CodeVeteran50      = "VETERAN_50"
)

// Catalog looks badges up by code.
type Catalog map[string]Badge

func (c Catalog) Has(code string) bool {
	_, ok := c[code]
	return ok
}

// DefaultCatalog returns the badge set shipped with the club.
func DefaultCatalog() Catalog {
	items := []Badge{
		{Code: CodeFirstWin, Name: "First Win", Description: "Won a match for the first time", Tier: TierBronze},
		{Code: CodeFirstLoss, Name: "First Loss", Description: "Lost a match for the first time", Tier: TierBronze},
		{Code: CodeFirstDraw, Name: "First Draw", Description: "Drew a match for the first time", Tier: TierBronze},
		{Code: CodeAttendanceStar, Name: "Attendance Star", Description: "Attended at least 80% of completed events", Tier: TierSilver},
		{Code: CodeVeteran50, Name: "Veteran", Description: "Attended 50 completed events", Tier: TierGold},
	}

	catalog := make(Catalog, len(items))
	for _, item := range items {
		catalog[item.Code] = item
	}
	return catalog
}
