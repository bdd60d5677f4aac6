package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/storage"
)

var validate = validator.New()

type HabitRequest struct {
	Title    string `json:"title" validate:"required"`
	WeekDays []int  `json:"weekDays" validate:"dive,gte=0,lte=6"`
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func ValidateHabitRequest(req *HabitRequest) error {
	if err := validate.Struct(req); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	return nil
}

// normalizeWeekDays collapses duplicates and returns a sorted set.
func normalizeWeekDays(weekDays []int) []int {
	seen := make(map[int]struct{}, len(weekDays))
	set := make([]int, 0, len(weekDays))
	for _, wd := range weekDays {
		if _, ok := seen[wd]; ok {
			continue
		}
		seen[wd] = struct{}{}
		set = append(set, wd)
	}
	sort.Ints(set)
	return set
}

// CreateHabit validates and persists a habit. CreatedAt is pinned to
// the start of today, so the habit is already eligible on its creation
// day. Validation is rejected before any write.
func CreateHabit(ctx context.Context, habitRepo storage.HabitRepository, req *HabitRequest) (*internal.Habit, error) {
	if err := ValidateHabitRequest(req); err != nil {
		return nil, err
	}

	habit := &internal.Habit{
		ID:        uuid.NewString(),
		Title:     req.Title,
		CreatedAt: StartOfDay(time.Now()),
		WeekDays:  normalizeWeekDays(req.WeekDays),
	}
	if err := habitRepo.CreateHabit(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func ListHabits(ctx context.Context, habitRepo storage.HabitRepository) ([]internal.Habit, error) {
	return habitRepo.ListHabits(ctx)
}
