package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/yourname/habittracker/internal"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// dateLayout is the canonical day-granular form dates are stored in.
const dateLayout = "2006-01-02"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS habits (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS habit_week_days (
    habit_id TEXT NOT NULL REFERENCES habits(id),
    week_day INTEGER NOT NULL,
    UNIQUE(habit_id, week_day)
);
CREATE TABLE IF NOT EXISTS days (
    id   TEXT PRIMARY KEY,
    date TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS day_habits (
    day_id   TEXT NOT NULL REFERENCES days(id),
    habit_id TEXT NOT NULL REFERENCES habits(id),
    UNIQUE(day_id, habit_id)
);
`

type SQLiteStorage struct {
	db     *sql.DB
	logger internal.Logger
}

func NewSQLiteStorage(path string, logger internal.Logger) (*SQLiteStorage, error) {
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Errorf("failed to open sqlite db: %v", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		logger.Errorf("failed to ping sqlite db: %v", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		logger.Errorf("failed to apply sqlite schema: %v", err)
		return nil, err
	}
	return &SQLiteStorage{db: db, logger: logger}, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}

// --- HabitRepository ---

func (s *SQLiteStorage) CreateHabit(ctx context.Context, habit *internal.Habit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Errorf("failed to begin habit transaction: %v", err)
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO habits (id, title, created_at) VALUES (?, ?, ?)`,
		habit.ID, habit.Title, habit.CreatedAt.UTC().Format(dateLayout),
	); err != nil {
		_ = tx.Rollback()
		s.logger.Errorf("failed to insert habit: %v", err)
		return err
	}
	for _, wd := range habit.WeekDays {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO habit_week_days (habit_id, week_day) VALUES (?, ?)`,
			habit.ID, wd,
		); err != nil {
			_ = tx.Rollback()
			s.logger.Errorf("failed to insert habit week day: %v", err)
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStorage) ListHabits(ctx context.Context) ([]internal.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, created_at FROM habits`)
	if err != nil {
		s.logger.Errorf("failed to query habits: %v", err)
		return nil, err
	}
	defer rows.Close()

	habits := []internal.Habit{}
	for rows.Next() {
		h, err := scanHabitRow(rows)
		if err != nil {
			s.logger.Errorf("failed to scan habit: %v", err)
			return nil, err
		}
		habits = append(habits, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range habits {
		weekDays, err := s.habitWeekDays(ctx, habits[i].ID)
		if err != nil {
			return nil, err
		}
		habits[i].WeekDays = weekDays
	}
	return habits, nil
}

func (s *SQLiteStorage) GetHabit(ctx context.Context, id string) (*internal.Habit, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, created_at FROM habits WHERE id = ?`, id)
	h, err := scanHabitRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Errorf("failed to get habit: %v", err)
		return nil, err
	}
	weekDays, err := s.habitWeekDays(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	h.WeekDays = weekDays
	return h, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabitRow(row rowScanner) (*internal.Habit, error) {
	var h internal.Habit
	var createdAt string
	if err := row.Scan(&h.ID, &h.Title, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.ParseInLocation(dateLayout, createdAt, time.UTC)
	if err != nil {
		return nil, err
	}
	h.CreatedAt = t
	return &h, nil
}

func (s *SQLiteStorage) habitWeekDays(ctx context.Context, habitID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT week_day FROM habit_week_days WHERE habit_id = ? ORDER BY week_day`, habitID)
	if err != nil {
		s.logger.Errorf("failed to query habit week days: %v", err)
		return nil, err
	}
	defer rows.Close()

	weekDays := []int{}
	for rows.Next() {
		var wd int
		if err := rows.Scan(&wd); err != nil {
			return nil, err
		}
		weekDays = append(weekDays, wd)
	}
	return weekDays, rows.Err()
}

// --- DayRepository ---

func (s *SQLiteStorage) FindDayByDate(ctx context.Context, date time.Time) (*internal.Day, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date FROM days WHERE date = ?`, date.UTC().Format(dateLayout))
	return scanDayRow(row)
}

func (s *SQLiteStorage) CreateDay(ctx context.Context, day *internal.Day) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO days (id, date) VALUES (?, ?)`,
		day.ID, day.Date.UTC().Format(dateLayout))
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return ErrDuplicate
		}
		s.logger.Errorf("failed to insert day: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) ListDays(ctx context.Context) ([]internal.Day, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, date FROM days ORDER BY date`)
	if err != nil {
		s.logger.Errorf("failed to query days: %v", err)
		return nil, err
	}
	defer rows.Close()

	days := []internal.Day{}
	for rows.Next() {
		d, err := scanDayRow(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, *d)
	}
	return days, rows.Err()
}

func scanDayRow(row rowScanner) (*internal.Day, error) {
	var d internal.Day
	var date string
	if err := row.Scan(&d.ID, &date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return nil, err
	}
	d.Date = t
	return &d, nil
}

func (s *SQLiteStorage) HasCompletion(ctx context.Context, dayID, habitID string) (bool, error) {
	var one int
	row := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM day_habits WHERE day_id = ? AND habit_id = ?`, dayID, habitID)
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.Errorf("failed to query completion: %v", err)
		return false, err
	}
	return true, nil
}

func (s *SQLiteStorage) AddCompletion(ctx context.Context, dayID, habitID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO day_habits (day_id, habit_id) VALUES (?, ?)`, dayID, habitID)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return ErrDuplicate
		}
		s.logger.Errorf("failed to insert completion: %v", err)
		return err
	}
	return nil
}

func (s *SQLiteStorage) RemoveCompletion(ctx context.Context, dayID, habitID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM day_habits WHERE day_id = ? AND habit_id = ?`, dayID, habitID)
	if err != nil {
		s.logger.Errorf("failed to delete completion: %v", err)
	}
	return err
}

func (s *SQLiteStorage) ListCompletions(ctx context.Context, dayID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT habit_id FROM day_habits WHERE day_id = ?`, dayID)
	if err != nil {
		s.logger.Errorf("failed to query completions: %v", err)
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- Compile-time assertions ---
var _ HabitRepository = (*SQLiteStorage)(nil)
var _ DayRepository = (*SQLiteStorage)(nil)
