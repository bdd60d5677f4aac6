package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/habittracker/internal"
)

const pgUniqueViolation = "23505"

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// --- HabitRepository ---

func (p *PostgresStorage) CreateHabit(ctx context.Context, habit *internal.Habit) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		p.logger.Errorf("failed to begin habit transaction: %v", err)
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO habits (id, title, created_at) VALUES ($1, $2, $3)`,
		habit.ID, habit.Title, habit.CreatedAt.UTC()); err != nil {
		p.logger.Errorf("failed to insert habit: %v", err)
		return err
	}
	for _, wd := range habit.WeekDays {
		if _, err := tx.Exec(ctx,
			`INSERT INTO habit_week_days (habit_id, week_day) VALUES ($1, $2)`,
			habit.ID, wd); err != nil {
			p.logger.Errorf("failed to insert habit week day: %v", err)
			return err
		}
	}
	return tx.Commit(ctx)
}

func (p *PostgresStorage) ListHabits(ctx context.Context) ([]internal.Habit, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title, created_at FROM habits`)
	if err != nil {
		p.logger.Errorf("failed to query habits: %v", err)
		return nil, err
	}
	defer rows.Close()

	habits := []internal.Habit{}
	for rows.Next() {
		var h internal.Habit
		if err := rows.Scan(&h.ID, &h.Title, &h.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan habit: %v", err)
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range habits {
		weekDays, err := p.habitWeekDays(ctx, habits[i].ID)
		if err != nil {
			return nil, err
		}
		habits[i].WeekDays = weekDays
	}
	return habits, nil
}

func (p *PostgresStorage) GetHabit(ctx context.Context, id string) (*internal.Habit, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, title, created_at FROM habits WHERE id = $1`, id)
	var h internal.Habit
	if err := row.Scan(&h.ID, &h.Title, &h.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to get habit: %v", err)
		return nil, err
	}
	weekDays, err := p.habitWeekDays(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	h.WeekDays = weekDays
	return &h, nil
}

func (p *PostgresStorage) habitWeekDays(ctx context.Context, habitID string) ([]int, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT week_day FROM habit_week_days WHERE habit_id = $1 ORDER BY week_day`, habitID)
	if err != nil {
		p.logger.Errorf("failed to query habit week days: %v", err)
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

func (p *PostgresStorage) FindDayByDate(ctx context.Context, date time.Time) (*internal.Day, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, date FROM days WHERE date = $1`, date.UTC())
	var d internal.Day
	if err := row.Scan(&d.ID, &d.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to find day: %v", err)
		return nil, err
	}
	return &d, nil
}

func (p *PostgresStorage) CreateDay(ctx context.Context, day *internal.Day) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO days (id, date) VALUES ($1, $2)`, day.ID, day.Date.UTC())
	if err != nil {
		if isPgUniqueViolation(err) {
			return ErrDuplicate
		}
		p.logger.Errorf("failed to insert day: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListDays(ctx context.Context) ([]internal.Day, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, date FROM days ORDER BY date`)
	if err != nil {
		p.logger.Errorf("failed to query days: %v", err)
		return nil, err
	}
	defer rows.Close()

	days := []internal.Day{}
	for rows.Next() {
		var d internal.Day
		if err := rows.Scan(&d.ID, &d.Date); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (p *PostgresStorage) HasCompletion(ctx context.Context, dayID, habitID string) (bool, error) {
	var one int
	row := p.pool.QueryRow(ctx,
		`SELECT 1 FROM day_habits WHERE day_id = $1 AND habit_id = $2`, dayID, habitID)
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		p.logger.Errorf("failed to query completion: %v", err)
		return false, err
	}
	return true, nil
}

func (p *PostgresStorage) AddCompletion(ctx context.Context, dayID, habitID string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO day_habits (day_id, habit_id) VALUES ($1, $2)`, dayID, habitID)
	if err != nil {
		if isPgUniqueViolation(err) {
			return ErrDuplicate
		}
		p.logger.Errorf("failed to insert completion: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) RemoveCompletion(ctx context.Context, dayID, habitID string) error {
	_, err := p.pool.Exec(ctx,
		`DELETE FROM day_habits WHERE day_id = $1 AND habit_id = $2`, dayID, habitID)
	if err != nil {
		p.logger.Errorf("failed to delete completion: %v", err)
	}
	return err
}

func (p *PostgresStorage) ListCompletions(ctx context.Context, dayID string) ([]string, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT habit_id FROM day_habits WHERE day_id = $1`, dayID)
	if err != nil {
		p.logger.Errorf("failed to query completions: %v", err)
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
var _ HabitRepository = (*PostgresStorage)(nil)
var _ DayRepository = (*PostgresStorage)(nil)
