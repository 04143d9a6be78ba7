package badge

import (
	"fmt"

	"github.com/pitchside/matchday/internal/domain/outcome"
)

// Rules holds the award thresholds. They are configuration rather than
// constants so deployments can tune them without a code change.
type Rules struct {
	FirstWinMin        int
	FirstLossMin       int
	FirstDrawMin       int
	AttendanceStarRate float64
	VeteranEvents      int
}

func DefaultRules() Rules {
	return Rules{
		FirstWinMin:        1,
		FirstLossMin:       1,
		FirstDrawMin:       1,
		AttendanceStarRate: 0.8,
		VeteranEvents:      50,
	}
}

func (r Rules) Validate() error {
	if r.FirstWinMin < 1 || r.FirstLossMin < 1 || r.FirstDrawMin < 1 {
		return fmt.Errorf("first win/loss/draw thresholds must be >= 1")
	}
	if r.AttendanceStarRate <= 0 || r.AttendanceStarRate > 1 {
		return fmt.Errorf("attendance star rate must be in (0, 1]: %v", r.AttendanceStarRate)
	}
	if r.VeteranEvents < 1 {
		return fmt.Errorf("veteran events threshold must be >= 1: %d", r.VeteranEvents)
	}

	return nil
}

// GovernedCodes lists the badge codes the reconciler owns. Badges outside
// this set (onboarding gifts and the like) are never retracted by
// reconciliation.
func (r Rules) GovernedCodes() []string {
	return []string{
		CodeFirstWin,
		CodeFirstLoss,
		CodeFirstDraw,
		CodeAttendanceStar,
		CodeVeteran50,
	}
}

// ShouldHold derives the badge codes a participant is entitled to from
// their aggregated outcome tally.
func (r Rules) ShouldHold(tally outcome.Tally) map[string]struct{} {
	out := make(map[string]struct{})

	if tally.Wins >= r.FirstWinMin {
		out[CodeFirstWin] = struct{}{}
	}
	if tally.Losses >= r.FirstLossMin {
		out[CodeFirstLoss] = struct{}{}
	}
	if tally.Draws >= r.FirstDrawMin {
		out[CodeFirstDraw] = struct{}{}
	}
	if tally.Completed > 0 && tally.AttendanceRate() >= r.AttendanceStarRate {
		out[CodeAttendanceStar] = struct{}{}
	}
	if tally.Attended >= r.VeteranEvents {
		out[CodeVeteran50] = struct{}{}
	}

	return out
}
