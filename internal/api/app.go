package api

import (
	"github.com/yourname/habittracker/internal"
	"github.com/yourname/habittracker/internal/storage"
)

type App interface {
	Logger() internal.Logger
	HabitRepo() storage.HabitRepository
	DayRepo() storage.DayRepository
}

type app struct {
	logger    internal.Logger
	habitRepo storage.HabitRepository
	dayRepo   storage.DayRepository
}

func NewApp(logger internal.Logger, habitRepo storage.HabitRepository, dayRepo storage.DayRepository) App {
	return &app{logger: logger, habitRepo: habitRepo, dayRepo: dayRepo}
}

func (a *app) Logger() internal.Logger            { return a.logger }
func (a *app) HabitRepo() storage.HabitRepository { return a.habitRepo }
func (a *app) DayRepo() storage.DayRepository     { return a.dayRepo }
