package report

import (
	"mindtrack/internal/domain/entity"
)

// Summarize builds one DailySummary per day of rng, ascending and without gaps.
// Days without activity carry a zero count and a nil mood.
func Summarize(ds Dataset, rng entity.DateRange) (*entity.DashboardSummary, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	summary := &entity.DashboardSummary{
		PeriodStart:       rng.Start,
		PeriodEnd:         rng.End,
		Days:              make([]entity.DailySummary, 0, rng.Len()),
		TotalActiveHabits: ds.Catalog.ActiveHabits(),
		TotalActiveGoals:  ds.Catalog.ActiveGoals,
	}

	idx := newIndex(&ds, rng)
	for _, day := range rng.Days() {
		daily := entity.DailySummary{Date: day}

		for _, key := range idx.byDate[day] {
			if idx.completed(idx.records[key]) {
				daily.HabitsCompletedCount++
			}
		}

		// at most one mood per day, so the day's mean is the score itself
		if score, ok := idx.mood(day); ok {
			m := float64(score)
			daily.MeanMood = &m
		}

		summary.Days = append(summary.Days, daily)
	}

	summary.WeeklyMeanMood = trailingMeanMood(summary.Days, WeeklyWindow)
	return summary, nil
}

// trailingMeanMood averages the non-nil moods of the last n days
func trailingMeanMood(days []entity.DailySummary, n int) *float64 {
	if len(days) > n {
		days = days[len(days)-n:]
	}
	scores := make([]float64, 0, len(days))
	for _, d := range days {
		if d.MeanMood != nil {
			scores = append(scores, *d.MeanMood)
		}
	}
	return mean(scores)
}
