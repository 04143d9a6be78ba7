package vote

import (
	"fmt"
	"strings"
	"time"

	"github.com/pitchside/matchday/internal/domain/participant"
)

// Status is a participant's declared attendance intention.
type Status string

const (
	StatusAttending    Status = "ATTENDING"
	StatusNotAttending Status = "NOT_ATTENDING"
	StatusPending      Status = "PENDING"
)

var AllStatuses = map[Status]struct{}{
	StatusAttending:    {},
	StatusNotAttending: {},
	StatusPending:      {},
}

func NormalizeStatus(value string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := AllStatuses[status]; !ok {
		return "", fmt.Errorf("invalid vote status: %s", value)
	}
	return status, nil
}

// Vote is one (event, participant) attendance record. Guest votes are
// synthetic entries brought along by a member; they never reference a stored
// participant and carry their own display name, level and position.
type Vote struct {
	EventID       string
	ParticipantID string
	Status        Status
	Guest         bool
	GuestName     string
	GuestLevel    int
	GuestPosition participant.Position
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (v Vote) Validate() error {
	if v.EventID == "" {
		return fmt.Errorf("vote event id is required")
	}
	if v.ParticipantID == "" {
		return fmt.Errorf("vote participant id is required")
	}
	if _, ok := AllStatuses[v.Status]; !ok {
		return fmt.Errorf("invalid vote status: %s", v.Status)
	}
	if v.Guest {
		if v.GuestName == "" {
			return fmt.Errorf("guest vote requires a guest name")
		}
		if v.GuestLevel < 0 || v.GuestLevel > participant.LevelMax {
			return fmt.Errorf("guest level must be between 0 and %d: %d", participant.LevelMax, v.GuestLevel)
		}
		if _, ok := participant.AllPositions[v.GuestPosition]; !ok {
			return fmt.Errorf("invalid guest position: %s", v.GuestPosition)
		}
	}

	return nil
}

// Counters is the recomputed attendance projection for one event.
type Counters struct {
	Attending    int
	NotAttending int
	Pending      int
}
