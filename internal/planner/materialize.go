package planner

import (
	"strings"
	"time"

	"github.com/lefi/digital-brain/pkg/entity"
)

// Weekday letters, Sunday first, matching the stored dias values.
var weekdayLetters = [7]string{"D", "L", "M", "X", "J", "V", "S"}

func WeekdayLetter(date time.Time) string {
	return weekdayLetters[int(date.Weekday())]
}

// DueEntries selects the active routine entries whose day-set contains the
// date's weekday letter.
func DueEntries(entries []*entity.RoutineEntry, date time.Time) []*entity.RoutineEntry {
	letter := WeekdayLetter(date)
	due := make([]*entity.RoutineEntry, 0)
	for _, e := range entries {
		if e.State != entity.RoutineStateActive {
			continue
		}
		if strings.Contains(e.Days, letter) {
			due = append(due, e)
		}
	}
	return due
}

// Materialize projects a routine entry onto a concrete date. The resulting
// block carries the fixed materialization shape: source rutina_base, tier 2,
// icon calendar, status pending, and RoutineID pointing back at the template.
// The projection is one-way: nothing about the entry is derived back from
// blocks later.
func Materialize(e *entity.RoutineEntry, date time.Time) (*entity.Block, error) {
	start, err := ParseClock(e.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(e.EndTime)
	if err != nil {
		return nil, err
	}
	routineID := e.ID
	return &entity.Block{
		UserID:     e.UserID,
		Title:      e.ActivityName,
		StartTime:  At(date, start),
		EndTime:    At(date, end),
		Tier:       2,
		Status:     entity.BlockStatusPending,
		Source:     entity.BlockSourceRoutine,
		CategoryID: e.CategoryID,
		RoutineID:  &routineID,
		Icon:       "calendar",
	}, nil
}
