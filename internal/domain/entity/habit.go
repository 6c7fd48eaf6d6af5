package entity

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// Measurement says how a habit's daily observation is recorded
type Measurement string

const (
	MeasurementBoolean      Measurement = "boolean"
	MeasurementQuantitative Measurement = "quantitative"
)

// Habit is a catalog entry owned by a user
type Habit struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Measurement Measurement `json:"measurement"`
	Unit        *string     `json:"unit,omitempty"`
	DailyGoal   *float64    `json:"daily_goal,omitempty"`
	IsActive    bool        `json:"is_active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsQuantitative returns true if the habit is measured against a daily goal
func (h *Habit) IsQuantitative() bool {
	return h.Measurement == MeasurementQuantitative
}

// Completes applies the completion rule: quantitative habits with a goal need
// quantity >= goal, everything else uses the record's completed flag.
func (h *Habit) Completes(r HabitRecord) bool {
	if h == nil || !h.IsQuantitative() || h.DailyGoal == nil {
		return r.Completed
	}
	if r.Quantity == nil {
		return false
	}
	return *r.Quantity >= *h.DailyGoal
}

// HabitRecord is one day's observation for one habit
type HabitRecord struct {
	HabitID   uuid.UUID  `json:"habit_id"`
	Date      civil.Date `json:"date"`
	Completed bool       `json:"completed"`
	Quantity  *float64   `json:"quantity,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

// Catalog is the caller's habit list plus the number of goals still open
type Catalog struct {
	Habits      []Habit `json:"habits"`
	ActiveGoals int     `json:"active_goals"`
}

// ActiveHabits counts active catalog entries
func (c *Catalog) ActiveHabits() int {
	n := 0
	for i := range c.Habits {
		if c.Habits[i].IsActive {
			n++
		}
	}
	return n
}

// ByID indexes the catalog by habit ID
func (c *Catalog) ByID() map[uuid.UUID]*Habit {
	m := make(map[uuid.UUID]*Habit, len(c.Habits))
	for i := range c.Habits {
		m[c.Habits[i].ID] = &c.Habits[i]
	}
	return m
}
