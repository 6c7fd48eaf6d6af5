package entity

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

// DailySummary is the derived activity of one calendar day
type DailySummary struct {
	Date                 civil.Date `json:"date"`
	HabitsCompletedCount int        `json:"habits_completed_count"`
	MeanMood             *float64   `json:"mean_mood"`
}

// DashboardSummary is the per-day series plus scalar totals for a range
type DashboardSummary struct {
	PeriodStart       civil.Date     `json:"period_start"`
	PeriodEnd         civil.Date     `json:"period_end"`
	Days              []DailySummary `json:"days"`
	TotalActiveHabits int            `json:"total_active_habits"`
	TotalActiveGoals  int            `json:"total_active_goals"`
	WeeklyMeanMood    *float64       `json:"weekly_mean_mood"`
}

// CorrelationEntry is the mood picture of one habit over a range.
// MeanMoodOnCompletedDays is a conditional mean, not a correlation coefficient.
type CorrelationEntry struct {
	HabitID                 uuid.UUID `json:"habit_id"`
	TotalCompletedDays      int       `json:"total_completed_days"`
	MeanMoodOnCompletedDays *float64  `json:"mean_mood_on_completed_days"`
	TotalMissedDays         int       `json:"total_missed_days"`
	MeanMoodOnMissedDays    *float64  `json:"mean_mood_on_missed_days"`
}

// CorrelationReport wraps the entries with the range they were computed for
type CorrelationReport struct {
	PeriodStart civil.Date                     `json:"period_start"`
	PeriodEnd   civil.Date                     `json:"period_end"`
	Entries     map[uuid.UUID]CorrelationEntry `json:"entries"`
}

// HabitDayEntry is one habit's record inside a DayDetail
type HabitDayEntry struct {
	HabitID     uuid.UUID   `json:"habit_id"`
	Name        string      `json:"name"`
	Quantity    *float64    `json:"quantity,omitempty"`
	Completed   bool        `json:"completed"`
	Measurement Measurement `json:"measurement"`
	Unit        *string     `json:"unit,omitempty"`
	DailyGoal   *float64    `json:"daily_goal,omitempty"`
}

// DayDetail consolidates the mood and habit records of a single day
type DayDetail struct {
	Date   civil.Date      `json:"date"`
	Mood   *int            `json:"mood"`
	Habits []HabitDayEntry `json:"habits"`
}
