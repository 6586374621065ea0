package planner

import (
	"time"

	"github.com/lefi/digital-brain/pkg/entity"
)

type Activity struct {
	Name            string
	DurationMinutes int
	Category        string
}

type Slot struct {
	Activity Activity
	Start    time.Time
	End      time.Time
}

// Budget is the aggregate time accounting behind the productive-day
// assistant. It validates totals only; it deliberately does not pack
// around the kept blocks' actual positions.
type Budget struct {
	WindowMinutes   int
	OccupiedMinutes int
	ActivityMinutes int
	BreakMinutes    int
}

func (b Budget) AvailableMinutes() int {
	return b.WindowMinutes - b.OccupiedMinutes
}

func (b Budget) NeededMinutes() int {
	return b.ActivityMinutes + b.BreakMinutes
}

func (b Budget) Feasible() bool {
	return b.NeededMinutes() <= b.AvailableMinutes()
}

// ComputeBudget sums the day window, the kept blocks' durations, and the
// selected activities. breakMinutes applies between consecutive activities
// (n-1 breaks); pass 0 when breaks are disabled. Time-of-day arithmetic
// only, windows crossing midnight are rejected by startMin >= endMin.
func ComputeBudget(windowStart, windowEnd string, kept []*entity.Block, activities []Activity, breakMinutes int) (Budget, error) {
	startMin, err := ParseClock(windowStart)
	if err != nil {
		return Budget{}, err
	}
	endMin, err := ParseClock(windowEnd)
	if err != nil {
		return Budget{}, err
	}
	b := Budget{
		WindowMinutes: endMin - startMin,
	}
	for _, block := range kept {
		b.OccupiedMinutes += int(block.EndTime.Sub(block.StartTime).Minutes())
	}
	for _, a := range activities {
		b.ActivityMinutes += a.DurationMinutes
	}
	if breakMinutes > 0 && len(activities) > 1 {
		b.BreakMinutes = (len(activities) - 1) * breakMinutes
	}
	return b, nil
}

// Place lays the activities out back to back starting at the window start,
// advancing the cursor by each duration plus the break (except after the
// last activity). Feasibility is the caller's concern; Place never refuses.
func Place(date time.Time, windowStart string, activities []Activity, breakMinutes int) ([]Slot, error) {
	cursor, err := ParseClock(windowStart)
	if err != nil {
		return nil, err
	}
	slots := make([]Slot, 0, len(activities))
	for i, a := range activities {
		slot := Slot{
			Activity: a,
			Start:    At(date, cursor),
			End:      At(date, cursor+a.DurationMinutes),
		}
		slots = append(slots, slot)
		cursor += a.DurationMinutes
		if i < len(activities)-1 {
			cursor += breakMinutes
		}
	}
	return slots, nil
}
