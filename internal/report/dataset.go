// Package report computes dashboard summaries, habit/mood correlation entries
// and consolidated daily views from already fetched record sets. Every
// function is pure and safe for concurrent use.
package report

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"mindtrack/internal/domain/entity"
)

// WeeklyWindow is the number of trailing days averaged into the weekly mood
const WeeklyWindow = 7

// Dataset is the input of every engine in this package
type Dataset struct {
	Catalog entity.Catalog
	Habits  []entity.HabitRecord
	Moods   []entity.MoodRecord
}

type recordKey struct {
	habitID uuid.UUID
	date    civil.Date
}

// index partitions a dataset by day, restricted to one range.
// Duplicate (habit, date) records and duplicate mood dates keep the last one seen.
type index struct {
	habits  map[uuid.UUID]*entity.Habit
	records map[recordKey]entity.HabitRecord
	byDate  map[civil.Date][]recordKey
	moods   map[civil.Date]int
}

func newIndex(ds *Dataset, rng entity.DateRange) *index {
	idx := &index{
		habits:  ds.Catalog.ByID(),
		records: make(map[recordKey]entity.HabitRecord, len(ds.Habits)),
		byDate:  make(map[civil.Date][]recordKey),
		moods:   make(map[civil.Date]int, len(ds.Moods)),
	}

	for _, rec := range ds.Habits {
		if !rng.Contains(rec.Date) {
			continue
		}
		key := recordKey{habitID: rec.HabitID, date: rec.Date}
		if _, seen := idx.records[key]; !seen {
			idx.byDate[rec.Date] = append(idx.byDate[rec.Date], key)
		}
		idx.records[key] = rec
	}

	for _, m := range ds.Moods {
		if !rng.Contains(m.Date) || !m.Valid() {
			continue
		}
		idx.moods[m.Date] = m.Score
	}

	return idx
}

func (idx *index) completed(rec entity.HabitRecord) bool {
	return idx.habits[rec.HabitID].Completes(rec)
}

func (idx *index) mood(d civil.Date) (int, bool) {
	score, ok := idx.moods[d]
	return score, ok
}

func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}
