package outcome

// Result is a participant's derived win/loss/draw for one completed event.
// It is never stored; it is always recomputed from the final score and the
// confirmed formation.
type Result string

const (
	ResultWin  Result = "WIN"
	ResultLoss Result = "LOSS"
	ResultDraw Result = "DRAW"
)

// Compare derives the result from an "ours vs theirs" score pair.
func Compare(ours, theirs int) Result {
	switch {
	case ours > theirs:
		return ResultWin
	case ours < theirs:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// Tally aggregates a participant's results over a period.
type Tally struct {
	Wins   int
	Losses int
	Draws  int
	// Attended counts completed events the participant attended;
	// Completed counts all completed events in the same period.
	Attended  int
	Completed int
}

func (t *Tally) Add(result Result) {
	switch result {
	case ResultWin:
		t.Wins++
	case ResultLoss:
		t.Losses++
	case ResultDraw:
		t.Draws++
	}
}

// AttendanceRate is Attended over Completed, zero when nothing completed.
func (t Tally) AttendanceRate() float64 {
	if t.Completed == 0 {
		return 0
	}
	return float64(t.Attended) / float64(t.Completed)
}
