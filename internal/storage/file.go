package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/habittracker/internal"
)

// fileDay is the on-disk shape of a Day with its completion links.
type fileDay struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Completed []string `json:"completed"`
}

type dayRecord struct {
	id        string
	date      time.Time
	completed map[string]struct{}
}

type FileStorage struct {
	habits         map[string]*internal.Habit // id -> Habit
	days           map[string]*dayRecord      // date key -> day
	dayIndex       map[string]*dayRecord      // day id -> day
	mu             sync.RWMutex
	habitsFile     string
	daysFile       string
	saveHabitsChan chan struct{}
	saveDaysChan   chan struct{}
	shutdownChan   chan struct{}
	saveDelay      time.Duration
	logger         internal.Logger
}

func NewFileStorage(habitsFile, daysFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		habits:         make(map[string]*internal.Habit),
		days:           make(map[string]*dayRecord),
		dayIndex:       make(map[string]*dayRecord),
		habitsFile:     habitsFile,
		daysFile:       daysFile,
		saveHabitsChan: make(chan struct{}, 1),
		saveDaysChan:   make(chan struct{}, 1),
		shutdownChan:   make(chan struct{}),
		saveDelay:      500 * time.Millisecond,
		logger:         logger,
	}

	if err := s.loadHabits(); err != nil {
		logger.Errorf("storage: failed to load habits: %v", err)
		return nil, err
	}
	if err := s.loadDays(); err != nil {
		logger.Errorf("storage: failed to load days: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveHabitsChan, s.saveHabits, "habits")
	go s.saveWorker(s.saveDaysChan, s.saveDays, "days")

	return s, nil
}

func (s *FileStorage) loadHabits() error {
	file, err := os.Open(s.habitsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var habits []*internal.Habit
	if err := json.NewDecoder(file).Decode(&habits); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range habits {
		s.habits[h.ID] = h
	}
	return nil
}

func (s *FileStorage) loadDays() error {
	file, err := os.Open(s.daysFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var days []fileDay
	if err := json.NewDecoder(file).Decode(&days); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range days {
		date, err := time.ParseInLocation(dateLayout, d.Date, time.UTC)
		if err != nil {
			return err
		}
		rec := &dayRecord{id: d.ID, date: date, completed: make(map[string]struct{})}
		for _, habitID := range d.Completed {
			rec.completed[habitID] = struct{}{}
		}
		s.days[d.Date] = rec
		s.dayIndex[d.ID] = rec
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveHabits() error {
	s.mu.RLock()
	habits := make([]*internal.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		habits = append(habits, h)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.habitsFile, habits)
}

func (s *FileStorage) saveDays() error {
	s.mu.RLock()
	days := make([]fileDay, 0, len(s.days))
	for key, rec := range s.days {
		d := fileDay{ID: rec.id, Date: key, Completed: make([]string, 0, len(rec.completed))}
		for habitID := range rec.completed {
			d.Completed = append(d.Completed, habitID)
		}
		sort.Strings(d.Completed)
		days = append(days, d)
	}
	s.mu.RUnlock()

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return atomicWriteFileJSON(s.daysFile, days)
}

// saveWorker batches save operations to avoid frequent disk writes.
func (s *FileStorage) saveWorker(signal chan struct{}, save func() error, name string) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileStorage) signalSave(signal chan struct{}) {
	select {
	case signal <- struct{}{}:
	default:
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Save pending data synchronously on shutdown
	if err := s.saveHabits(); err != nil {
		return err
	}
	return s.saveDays()
}

// --- HabitRepository ---

func (s *FileStorage) CreateHabit(ctx context.Context, habit *internal.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *habit
	s.habits[habit.ID] = &cp
	s.signalSave(s.saveHabitsChan)
	return nil
}

func (s *FileStorage) ListHabits(ctx context.Context) ([]internal.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	habits := make([]internal.Habit, 0, len(s.habits))
	for _, h := range s.habits {
		habits = append(habits, *h)
	}
	sort.Slice(habits, func(i, j int) bool { return habits[i].ID < habits[j].ID })
	return habits, nil
}

func (s *FileStorage) GetHabit(ctx context.Context, id string) (*internal.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.habits[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *h
	return &cp, nil
}

// --- DayRepository ---

func (s *FileStorage) FindDayByDate(ctx context.Context, date time.Time) (*internal.Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.days[date.UTC().Format(dateLayout)]
	if !ok {
		return nil, ErrNotFound
	}
	return &internal.Day{ID: rec.id, Date: rec.date}, nil
}

func (s *FileStorage) CreateDay(ctx context.Context, day *internal.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := day.Date.UTC().Format(dateLayout)
	if _, exists := s.days[key]; exists {
		return ErrDuplicate
	}
	rec := &dayRecord{id: day.ID, date: day.Date, completed: make(map[string]struct{})}
	s.days[key] = rec
	s.dayIndex[day.ID] = rec
	s.signalSave(s.saveDaysChan)
	return nil
}

func (s *FileStorage) ListDays(ctx context.Context) ([]internal.Day, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := make([]internal.Day, 0, len(s.days))
	for _, rec := range s.days {
		days = append(days, internal.Day{ID: rec.id, Date: rec.date})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

func (s *FileStorage) HasCompletion(ctx context.Context, dayID, habitID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.dayIndex[dayID]
	if !ok {
		return false, nil
	}
	_, ok = rec.completed[habitID]
	return ok, nil
}

func (s *FileStorage) AddCompletion(ctx context.Context, dayID, habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.dayIndex[dayID]
	if !ok {
		return ErrNotFound
	}
	if _, exists := rec.completed[habitID]; exists {
		return ErrDuplicate
	}
	rec.completed[habitID] = struct{}{}
	s.signalSave(s.saveDaysChan)
	return nil
}

func (s *FileStorage) RemoveCompletion(ctx context.Context, dayID, habitID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.dayIndex[dayID]
	if !ok {
		return ErrNotFound
	}
	delete(rec.completed, habitID)
	s.signalSave(s.saveDaysChan)
	return nil
}

func (s *FileStorage) ListCompletions(ctx context.Context, dayID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.dayIndex[dayID]
	if !ok {
		return []string{}, nil
	}
	ids := make([]string, 0, len(rec.completed))
	for habitID := range rec.completed {
		ids = append(ids, habitID)
	}
	sort.Strings(ids)
	return ids, nil
}

// --- Compile-time assertions ---
var _ HabitRepository = (*FileStorage)(nil)
var _ DayRepository = (*FileStorage)(nil)
