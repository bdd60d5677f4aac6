package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/habittracker/internal"
	"go.uber.org/zap"
)

func newFileStorage(t *testing.T, dir string) *FileStorage {
	t.Helper()
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	store, err := NewFileStorage(dir+"/habits.json", dir+"/days.json", logger)
	assert.NoError(t, err)
	return store
}

func utcDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestFileStorageHabitRoundTrip(t *testing.T) {
	store := newFileStorage(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	habit := &internal.Habit{
		ID:        "h1",
		Title:     "Stretch",
		CreatedAt: utcDate(2024, 1, 1),
		WeekDays:  []int{0, 6},
	}
	assert.NoError(t, store.CreateHabit(ctx, habit))

	got, err := store.GetHabit(ctx, "h1")
	assert.NoError(t, err)
	assert.Equal(t, "Stretch", got.Title)
	assert.Equal(t, []int{0, 6}, got.WeekDays)

	_, err = store.GetHabit(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	habits, err := store.ListHabits(ctx)
	assert.NoError(t, err)
	assert.Len(t, habits, 1)
}

func TestFileStorageDayUniqueness(t *testing.T) {
	store := newFileStorage(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	day := &internal.Day{ID: "d1", Date: utcDate(2024, 1, 1)}
	assert.NoError(t, store.CreateDay(ctx, day))

	dup := &internal.Day{ID: "d2", Date: utcDate(2024, 1, 1)}
	assert.ErrorIs(t, store.CreateDay(ctx, dup), ErrDuplicate)

	found, err := store.FindDayByDate(ctx, utcDate(2024, 1, 1))
	assert.NoError(t, err)
	assert.Equal(t, "d1", found.ID)

	_, err = store.FindDayByDate(ctx, utcDate(2024, 1, 2))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorageCompletions(t *testing.T) {
	store := newFileStorage(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	day := &internal.Day{ID: "d1", Date: utcDate(2024, 1, 1)}
	assert.NoError(t, store.CreateDay(ctx, day))

	ok, err := store.HasCompletion(ctx, "d1", "h1")
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, store.AddCompletion(ctx, "d1", "h1"))
	assert.ErrorIs(t, store.AddCompletion(ctx, "d1", "h1"), ErrDuplicate)

	ok, err = store.HasCompletion(ctx, "d1", "h1")
	assert.NoError(t, err)
	assert.True(t, ok)

	ids, err := store.ListCompletions(ctx, "d1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"h1"}, ids)

	assert.NoError(t, store.RemoveCompletion(ctx, "d1", "h1"))
	ids, err = store.ListCompletions(ctx, "d1")
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStoragePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := newFileStorage(t, dir)
	habit := &internal.Habit{ID: "h1", Title: "Walk", CreatedAt: utcDate(2024, 1, 1), WeekDays: []int{2, 4}}
	assert.NoError(t, store.CreateHabit(ctx, habit))
	day := &internal.Day{ID: "d1", Date: utcDate(2024, 1, 2)}
	assert.NoError(t, store.CreateDay(ctx, day))
	assert.NoError(t, store.AddCompletion(ctx, "d1", "h1"))
	assert.NoError(t, store.Close())

	reopened := newFileStorage(t, dir)
	defer reopened.Close()

	got, err := reopened.GetHabit(ctx, "h1")
	assert.NoError(t, err)
	assert.Equal(t, []int{2, 4}, got.WeekDays)

	found, err := reopened.FindDayByDate(ctx, utcDate(2024, 1, 2))
	assert.NoError(t, err)
	assert.Equal(t, "d1", found.ID)

	ids, err := reopened.ListCompletions(ctx, "d1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"h1"}, ids)
}
