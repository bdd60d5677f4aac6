package service

import (
	"context"
	"sort"

	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/storage"
)

// Summary returns one entry per recorded Day: how many habits were
// completed and how many were possible. The possible count is derived
// fresh per day from the current habit registry, so habits created
// after a historical day never inflate that day's count. Days without
// any completion event have no Day record and are absent, not zero.
func Summary(ctx context.Context, habitRepo storage.HabitRepository, dayRepo storage.DayRepository) ([]internal.DaySummary, error) {
	habits, err := habitRepo.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	days, err := dayRepo.ListDays(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]internal.DaySummary, 0, len(days))
	for _, day := range days {
		completed, err := dayRepo.ListCompletions(ctx, day.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, internal.DaySummary{
			ID:        day.ID,
			Date:      day.Date,
			Completed: len(completed),
			Amount:    len(EligibleHabits(habits, day.Date)),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date.Before(summaries[j].Date)
	})
	return summaries, nil
}
