package storage

import (
	"io"

	"github.com/yourname/habittracker/internal"
)

func NewFileRepositories(habitsFile, daysFile string, logger internal.Logger) (HabitRepository, DayRepository, io.Closer, error) {
	storage, err := NewFileStorage(habitsFile, daysFile, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}

func NewSQLiteRepositories(path string, logger internal.Logger) (HabitRepository, DayRepository, io.Closer, error) {
	storage, err := NewSQLiteStorage(path, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (HabitRepository, DayRepository, io.Closer, error) {
	storage, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return storage, storage, storage, nil
}
