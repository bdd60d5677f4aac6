package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/storage"
	"go.uber.org/zap"
)

func newTestRepos(t *testing.T) (*storage.FileStorage, storage.HabitRepository, storage.DayRepository) {
	t.Helper()
	dir := t.TempDir()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	store, err := storage.NewFileStorage(dir+"/habits.json", dir+"/days.json", logger)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, store, store
}

func date(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStartOfDayIdempotent(t *testing.T) {
	ts := time.Date(2024, 1, 1, 15, 42, 7, 123, time.UTC)
	once := StartOfDay(ts)
	assert.Equal(t, date("2024-01-01"), once)
	assert.Equal(t, once, StartOfDay(once))
}

func TestWeekdayOfConvention(t *testing.T) {
	// 2024-01-07 is a Sunday
	assert.Equal(t, 0, WeekdayOf(date("2024-01-07")))
	assert.Equal(t, 1, WeekdayOf(date("2024-01-01"))) // Monday
	assert.Equal(t, 6, WeekdayOf(date("2024-01-06"))) // Saturday
}

func TestEligibleHabits(t *testing.T) {
	habits := []internal.Habit{
		{ID: "a", Title: "Run", CreatedAt: date("2024-01-01"), WeekDays: []int{1, 3, 5}},
		{ID: "b", Title: "Read", CreatedAt: date("2024-01-03"), WeekDays: []int{1, 2}},
	}

	// Created exactly on the date: eligible that same day (inclusive).
	eligible := EligibleHabits(habits, date("2024-01-01"))
	assert.Len(t, eligible, 1)
	assert.Equal(t, "a", eligible[0].ID)

	// Tuesday: "a" not scheduled, "b" not created yet.
	assert.Empty(t, EligibleHabits(habits, date("2024-01-02")))

	// Monday a week later: both created and both scheduled.
	eligible = EligibleHabits(habits, date("2024-01-08"))
	assert.Len(t, eligible, 2)

	// Time-of-day must not matter.
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Len(t, EligibleHabits(habits, noon), 1)
}

func TestEligibleHabitsEmptyWeekDays(t *testing.T) {
	habits := []internal.Habit{
		{ID: "a", Title: "Never", CreatedAt: date("2024-01-01"), WeekDays: []int{}},
	}
	for d := 0; d < 7; d++ {
		assert.Empty(t, EligibleHabits(habits, date("2024-01-01").AddDate(0, 0, d)))
	}
}

func TestGetDayDetail(t *testing.T) {
	_, habitRepo, dayRepo := newTestRepos(t)
	ctx := context.Background()

	habit := &internal.Habit{ID: "a", Title: "Run", CreatedAt: date("2024-01-01"), WeekDays: []int{1, 3, 5}}
	assert.NoError(t, habitRepo.CreateHabit(ctx, habit))

	// No Day record yet: possible populated, completed empty, no error.
	detail, err := GetDayDetail(ctx, habitRepo, dayRepo, date("2024-01-01"))
	assert.NoError(t, err)
	assert.Len(t, detail.PossibleHabits, 1)
	assert.Empty(t, detail.CompletedHabits)

	completed, err := ToggleHabit(ctx, habitRepo, dayRepo, "a", date("2024-01-01"))
	assert.NoError(t, err)
	assert.True(t, completed)

	detail, err = GetDayDetail(ctx, habitRepo, dayRepo, date("2024-01-01"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"a"}, detail.CompletedHabits)

	// Toggle off again: completed set goes back to empty.
	completed, err = ToggleHabit(ctx, habitRepo, dayRepo, "a", date("2024-01-01"))
	assert.NoError(t, err)
	assert.False(t, completed)

	detail, err = GetDayDetail(ctx, habitRepo, dayRepo, date("2024-01-01"))
	assert.NoError(t, err)
	assert.Empty(t, detail.CompletedHabits)
}
