package internal

import "time"

type Habit struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	WeekDays  []int     `json:"week_days"` // 0=Sunday .. 6=Saturday
}

// Day exists only for dates with at least one completion event.
type Day struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
}

type DaySummary struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Completed int       `json:"completed"`
	Amount    int       `json:"amount"`
}
