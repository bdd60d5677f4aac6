package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/storage"
)

// ToggleHabit flips the habit's completion state for the calendar day
// of now. The Day record is created lazily on the first toggle of a
// date; a concurrent create losing the race on the unique date
// constraint is retried as a find and never surfaces to the caller.
// Returns the resulting completion state.
func ToggleHabit(ctx context.Context, habitRepo storage.HabitRepository, dayRepo storage.DayRepository, habitID string, now time.Time) (bool, error) {
	if _, err := habitRepo.GetHabit(ctx, habitID); err != nil {
		return false, err
	}

	day, err := findOrCreateDay(ctx, dayRepo, StartOfDay(now))
	if err != nil {
		return false, err
	}

	completed, err := dayRepo.HasCompletion(ctx, day.ID, habitID)
	if err != nil {
		return false, err
	}
	if completed {
		if err := dayRepo.RemoveCompletion(ctx, day.ID, habitID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := dayRepo.AddCompletion(ctx, day.ID, habitID); err != nil {
		// A concurrent toggle may have created the link between the
		// check and the insert; last writer wins, state is completed.
		if errors.Is(err, storage.ErrDuplicate) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func findOrCreateDay(ctx context.Context, dayRepo storage.DayRepository, date time.Time) (*internal.Day, error) {
	day, err := dayRepo.FindDayByDate(ctx, date)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	day = &internal.Day{ID: uuid.NewString(), Date: date}
	err = dayRepo.CreateDay(ctx, day)
	if err == nil {
		return day, nil
	}
	if errors.Is(err, storage.ErrDuplicate) {
		// Lost the creation race; the row now exists.
		return dayRepo.FindDayByDate(ctx, date)
	}
	return nil, err
}
