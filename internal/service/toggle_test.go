package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/storage"
)

func TestToggleFlipsState(t *testing.T) {
	_, habitRepo, dayRepo := newTestRepos(t)
	ctx := context.Background()

	habit := &internal.Habit{ID: "a", Title: "Run", CreatedAt: date("2024-01-01"), WeekDays: []int{1}}
	assert.NoError(t, habitRepo.CreateHabit(ctx, habit))

	// Odd number of toggles ends completed, even restores the start.
	states := []bool{true, false, true, false}
	for _, want := range states {
		got, err := ToggleHabit(ctx, habitRepo, dayRepo, "a", date("2024-01-01"))
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	_, habitRepo, dayRepo := newTestRepos(t)

	_, err := ToggleHabit(context.Background(), habitRepo, dayRepo, "missing", date("2024-01-01"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestToggleCreatesDaysLazily(t *testing.T) {
	store, habitRepo, dayRepo := newTestRepos(t)
	ctx := context.Background()

	habit := &internal.Habit{ID: "a", Title: "Run", CreatedAt: date("2024-01-01"), WeekDays: []int{1, 2, 3}}
	assert.NoError(t, habitRepo.CreateHabit(ctx, habit))

	days, err := store.ListDays(ctx)
	assert.NoError(t, err)
	assert.Empty(t, days)

	// Multiple toggles across three dates create exactly three Day rows.
	dates := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	for _, d := range dates {
		_, err := ToggleHabit(ctx, habitRepo, dayRepo, "a", date(d))
		assert.NoError(t, err)
	}
	_, err = ToggleHabit(ctx, habitRepo, dayRepo, "a", date("2024-01-01"))
	assert.NoError(t, err)

	days, err = store.ListDays(ctx)
	assert.NoError(t, err)
	assert.Len(t, days, 3)
}

func TestToggleRecoversFromDayCreationRace(t *testing.T) {
	_, habitRepo, dayRepo := newTestRepos(t)
	ctx := context.Background()

	habit := &internal.Habit{ID: "a", Title: "Run", CreatedAt: date("2024-01-01"), WeekDays: []int{1}}
	assert.NoError(t, habitRepo.CreateHabit(ctx, habit))

	// Another request already created the Day row for this date.
	existing := &internal.Day{ID: "day1", Date: date("2024-01-01")}
	assert.NoError(t, dayRepo.CreateDay(ctx, existing))
	assert.ErrorIs(t, dayRepo.CreateDay(ctx, &internal.Day{ID: "day2", Date: date("2024-01-01")}), storage.ErrDuplicate)

	completed, err := ToggleHabit(ctx, habitRepo, dayRepo, "a", date("2024-01-01"))
	assert.NoError(t, err)
	assert.True(t, completed)

	// The toggle attached to the existing Day rather than a new one.
	ids, err := dayRepo.ListCompletions(ctx, "day1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids)
}
