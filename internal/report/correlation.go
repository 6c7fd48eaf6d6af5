package report

import (
	"fmt"

	"github.com/google/uuid"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
)

// Correlate computes, for each selected habit, the number of days in rng the
// habit was completed and the mean mood over those days. Selected habits must
// belong to the dataset's catalog.
func Correlate(ds Dataset, rng entity.DateRange, selected []uuid.UUID) (map[uuid.UUID]entity.CorrelationEntry, error) {
	if len(selected) == 0 {
		return nil, errs.New(errs.ErrInvalidSelection, "At least one habit must be selected for the correlation.")
	}
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	idx := newIndex(&ds, rng)
	for _, id := range selected {
		if _, ok := idx.habits[id]; !ok {
			return nil, errs.New(errs.ErrForbidden, fmt.Sprintf("Habit %s is not available.", id))
		}
	}

	entries := make(map[uuid.UUID]entity.CorrelationEntry, len(selected))
	for _, id := range selected {
		if _, done := entries[id]; done {
			continue
		}
		entries[id] = correlateHabit(idx, rng, id)
	}
	return entries, nil
}

func correlateHabit(idx *index, rng entity.DateRange, habitID uuid.UUID) entity.CorrelationEntry {
	entry := entity.CorrelationEntry{HabitID: habitID}
	var completedMoods, missedMoods []float64

	for _, day := range rng.Days() {
		rec, ok := idx.records[recordKey{habitID: habitID, date: day}]
		if !ok {
			continue
		}
		score, hasMood := idx.mood(day)

		if idx.completed(rec) {
			entry.TotalCompletedDays++
			if hasMood {
				completedMoods = append(completedMoods, float64(score))
			}
			continue
		}

		entry.TotalMissedDays++
		if hasMood {
			missedMoods = append(missedMoods, float64(score))
		}
	}

	entry.MeanMoodOnCompletedDays = mean(completedMoods)
	entry.MeanMoodOnMissedDays = mean(missedMoods)
	return entry
}
