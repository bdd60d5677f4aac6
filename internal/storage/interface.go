package storage

import (
	"context"
	"errors"
	"time"

	"github.com/yourname/habittracker/internal"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("storage: not found")

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (one Day per date, one completion per day/habit pair).
var ErrDuplicate = errors.New("storage: duplicate record")

type HabitRepository interface {
	// CreateHabit persists the habit together with its weekday set.
	// The write is atomic: either the habit and all weekday rows land,
	// or none do.
	CreateHabit(ctx context.Context, habit *internal.Habit) error
	ListHabits(ctx context.Context) ([]internal.Habit, error)
	GetHabit(ctx context.Context, id string) (*internal.Habit, error)
}

type DayRepository interface {
	// FindDayByDate returns ErrNotFound when no Day exists for date.
	FindDayByDate(ctx context.Context, date time.Time) (*internal.Day, error)
	// CreateDay returns ErrDuplicate when a Day already exists for the
	// same date.
	CreateDay(ctx context.Context, day *internal.Day) error
	ListDays(ctx context.Context) ([]internal.Day, error)

	HasCompletion(ctx context.Context, dayID, habitID string) (bool, error)
	AddCompletion(ctx context.Context, dayID, habitID string) error
	RemoveCompletion(ctx context.Context, dayID, habitID string) error
	ListCompletions(ctx context.Context, dayID string) ([]string, error)
}
