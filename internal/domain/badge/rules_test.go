package badge

import (
	"testing"

	"github.com/pitchside/matchday/internal/domain/outcome"
)

func TestRules_ShouldHold(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()

	cases := []struct {
		name  string
		tally outcome.Tally
		want  []string
	}{
		{
			name:  "no history",
			tally: outcome.Tally{},
			want:  nil,
		},
		{
			name:  "one of each result",
			tally: outcome.Tally{Wins: 1, Losses: 1, Draws: 1, Attended: 3, Completed: 10},
			want:  []string{CodeFirstWin, CodeFirstLoss, CodeFirstDraw},
		},
		{
			name:  "attendance star at exactly the threshold",
			tally: outcome.Tally{Attended: 8, Completed: 10},
			want:  []string{CodeAttendanceStar},
		},
		{
			name:  "just below the attendance threshold",
			tally: outcome.Tally{Attended: 7, Completed: 10},
			want:  nil,
		},
		{
			name:  "no completed events yields no attendance star",
			tally: outcome.Tally{Attended: 0, Completed: 0},
			want:  nil,
		},
		{
			name:  "veteran",
			tally: outcome.Tally{Wins: 20, Losses: 20, Draws: 10, Attended: 50, Completed: 60},
			want:  []string{CodeFirstWin, CodeFirstLoss, CodeFirstDraw, CodeAttendanceStar, CodeVeteran50},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := rules.ShouldHold(tc.tally)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d codes, got %d: %v", len(tc.want), len(got), got)
			}
			for _, code := range tc.want {
				if _, ok := got[code]; !ok {
					t.Fatalf("expected code %s in %v", code, got)
				}
			}
		})
	}
}

func TestRules_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules should validate: %v", err)
	}

	bad := DefaultRules()
	bad.AttendanceStarRate = 1.5
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for rate above 1")
	}

	bad = DefaultRules()
	bad.FirstWinMin = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for zero win threshold")
	}
}

func TestDefaultCatalog_CoversGovernedCodes(t *testing.T) {
	t.Parallel()

	catalog := DefaultCatalog()
	for _, code := range DefaultRules().GovernedCodes() {
		if !catalog.Has(code) {
			t.Fatalf("catalog is missing governed code %s", code)
		}
	}
}
