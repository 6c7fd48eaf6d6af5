package report

import (
	"mindtrack/internal/domain/entity"
)

// DailyDetails lists, per day of rng, the mood score and every habit record
// enriched with its catalog entry.
func DailyDetails(ds Dataset, rng entity.DateRange) ([]entity.DayDetail, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	idx := newIndex(&ds, rng)
	details := make([]entity.DayDetail, 0, rng.Len())

	for _, day := range rng.Days() {
		detail := entity.DayDetail{Date: day, Habits: []entity.HabitDayEntry{}}
		if score, ok := idx.mood(day); ok {
			s := score
			detail.Mood = &s
		}

		for _, key := range idx.byDate[day] {
			rec := idx.records[key]
			entry := entity.HabitDayEntry{
				HabitID:     rec.HabitID,
				Quantity:    rec.Quantity,
				Completed:   idx.completed(rec),
				Measurement: entity.MeasurementBoolean,
			}
			if h, ok := idx.habits[rec.HabitID]; ok {
				entry.Name = h.Name
				entry.Measurement = h.Measurement
				entry.Unit = h.Unit
				entry.DailyGoal = h.DailyGoal
			}
			detail.Habits = append(detail.Habits, entry)
		}

		details = append(details, detail)
	}
	return details, nil
}
