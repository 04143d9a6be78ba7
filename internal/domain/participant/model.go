package participant

import "fmt"

// Position represents the position family a member usually plays.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

const (
	// LevelMin is assumed for members with no recorded skill level.
	LevelMin = 1
	LevelMax = 10
)

// Participant is a registered club member.
type Participant struct {
	ID       string
	Name     string
	Level    int
	Position Position
	Active   bool
	Admin    bool
}

// EffectiveLevel returns the balancing level, falling back to LevelMin
// when no level has been recorded yet.
func (p Participant) EffectiveLevel() int {
	if p.Level < LevelMin {
		return LevelMin
	}
	return p.Level
}

func (p Participant) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("participant id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("participant name is required")
	}
	if p.Level < 0 || p.Level > LevelMax {
		return fmt.Errorf("participant level must be between 0 and %d: %d", LevelMax, p.Level)
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid participant position: %s", p.Position)
	}

	return nil
}
