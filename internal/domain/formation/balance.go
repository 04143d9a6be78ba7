package formation

import (
	"fmt"
	"sort"
	"time"

	"github.com/pitchside/matchday/internal/domain/roster"
)

const DefaultSquadCount = 2

// squadNames covers every supported squad count; balancing more squads than
// letters is rejected up front.
var squadNames = []string{"Team A", "Team B", "Team C", "Team D", "Team E", "Team F"}

// Balance partitions attendees into squadCount squads with a greedy draft:
// attendees are taken in descending level order (ties resolved by SortKey so
// identical inputs always produce identical drafts) and each one joins the
// squad with the lowest summed level so far. Sum ties go to the smaller
// squad, remaining ties to the lowest squad index.
//
// The draft is deliberately not an optimal partition; the greedy rule keeps
// the level gap between any two squads bounded by a single attendee's level
// and runs in O(n log n).
func Balance(entries []roster.Entry, squadCount int, computedAt time.Time) (Formation, error) {
	if squadCount < 2 {
		return Formation{}, fmt.Errorf("squad count must be at least 2: %d", squadCount)
	}
	if squadCount > len(squadNames) {
		return Formation{}, fmt.Errorf("squad count must be at most %d: %d", len(squadNames), squadCount)
	}
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return Formation{}, err
		}
	}

	ordered := append([]roster.Entry(nil), entries...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].EffectiveLevel() != ordered[j].EffectiveLevel() {
			return ordered[i].EffectiveLevel() > ordered[j].EffectiveLevel()
		}
		return ordered[i].SortKey < ordered[j].SortKey
	})

	squads := make([]Squad, squadCount)
	sums := make([]int, squadCount)
	for i := range squads {
		squads[i].Name = squadNames[i]
		squads[i].Slots = []Slot{}
	}

	for _, entry := range ordered {
		target := 0
		for i := 1; i < squadCount; i++ {
			switch {
			case sums[i] < sums[target]:
				target = i
			case sums[i] == sums[target] && len(squads[i].Slots) < len(squads[target].Slots):
				target = i
			}
		}

		level := entry.EffectiveLevel()
		squads[target].Slots = append(squads[target].Slots, Slot{
			Entry:             entry,
			AssignedPosition:  entry.Position,
			LevelAtAssignment: level,
		})
		sums[target] += level
	}

	for i := range squads {
		squads[i].Size = len(squads[i].Slots)
		if squads[i].Size > 0 {
			squads[i].MeanLevel = float64(sums[i]) / float64(squads[i].Size)
		}
	}

	return Formation{
		Squads:     squads,
		ComputedAt: computedAt,
	}, nil
}
