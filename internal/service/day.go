package service

import (
	"context"
	"errors"
	"time"

	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/storage"
)

// StartOfDay truncates a timestamp to its UTC calendar-day boundary.
// Idempotent: StartOfDay(StartOfDay(t)) == StartOfDay(t).
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdayOf returns the day-of-week index, Sunday=0 through Saturday=6.
func WeekdayOf(t time.Time) int {
	return int(t.UTC().Weekday())
}

// EligibleHabits returns the habits possible on date: created on or
// before that day (inclusive) and scheduled for its weekday. This is
// the single eligibility rule; day detail and the summary both go
// through it.
func EligibleHabits(habits []internal.Habit, date time.Time) []internal.Habit {
	day := StartOfDay(date)
	weekDay := WeekdayOf(date)

	eligible := []internal.Habit{}
	for _, h := range habits {
		if h.CreatedAt.After(day) {
			continue
		}
		for _, wd := range h.WeekDays {
			if wd == weekDay {
				eligible = append(eligible, h)
				break
			}
		}
	}
	return eligible
}

type DayDetail struct {
	PossibleHabits  []internal.Habit `json:"possibleHabits"`
	CompletedHabits []string         `json:"completedHabits"`
}

// GetDayDetail reports the habits possible on date and the ids of those
// completed. A missing Day record is not an error; it means nothing was
// completed that day.
func GetDayDetail(ctx context.Context, habitRepo storage.HabitRepository, dayRepo storage.DayRepository, date time.Time) (*DayDetail, error) {
	habits, err := habitRepo.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	detail := &DayDetail{
		PossibleHabits:  EligibleHabits(habits, date),
		CompletedHabits: []string{},
	}

	day, err := dayRepo.FindDayByDate(ctx, StartOfDay(date))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return detail, nil
		}
		return nil, err
	}

	completed, err := dayRepo.ListCompletions(ctx, day.ID)
	if err != nil {
		return nil, err
	}
	detail.CompletedHabits = completed
	return detail, nil
}
