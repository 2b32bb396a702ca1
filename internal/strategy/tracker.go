package strategy

import "fmt"

// Status is the behavior a ship was last assigned.
type Status int

const (
	Exploring Status = iota
	Returning
	Stay
	Rushing
)

func (s Status) String() string {
	switch s {
	case Exploring:
		return "exploring"
	case Returning:
		return "returning"
	case Stay:
		return "stay"
	case Rushing:
		return "rushing"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Tracker holds per-ship status across turns and the once-per-game
// conversion flag. It lives for one game and is owned by the caller that
// drives the orchestrator. Entries for destroyed ships are kept.
type Tracker struct {
	statuses       map[int]Status
	conversionUsed bool
}

func NewTracker() *Tracker {
	return &Tracker{statuses: make(map[int]Status)}
}

// Ensure registers shipID as Exploring if it has not been seen.
func (t *Tracker) Ensure(shipID int) {
	if _, ok := t.statuses[shipID]; !ok {
		t.statuses[shipID] = Exploring
	}
}

func (t *Tracker) Set(shipID int, s Status) {
	t.statuses[shipID] = s
}

// Status returns the ship's status, registering it first if needed.
func (t *Tracker) Status(shipID int) Status {
	t.Ensure(shipID)
	return t.statuses[shipID]
}

func (t *Tracker) Len() int { return len(t.statuses) }

func (t *Tracker) ConversionUsed() bool { return t.conversionUsed }

func (t *Tracker) MarkConversionUsed() { t.conversionUsed = true }

// Counts tallies statuses for the given ship ids.
func (t *Tracker) Counts(shipIDs []int) map[Status]int {
	counts := make(map[Status]int, 4)
	for _, id := range shipIDs {
		counts[t.Status(id)]++
	}
	return counts
}
