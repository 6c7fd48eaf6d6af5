package entity

import (
	"cloud.google.com/go/civil"
)

const (
	MinMoodScore = 1
	MaxMoodScore = 5
)

// MoodRecord is a user's mood assessment for one day
type MoodRecord struct {
	Date  civil.Date `json:"date"`
	Score int        `json:"score"`
	Note  *string    `json:"note,omitempty"`
}

// Valid reports whether the score is inside the 1..5 scale
func (m MoodRecord) Valid() bool {
	return m.Score >= MinMoodScore && m.Score <= MaxMoodScore
}
