package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result records a completed test attempt. A user gets one result per
// test; repeat submissions are rejected.
type Result struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"index;not null" json:"user_id"`
	TestID           string    `gorm:"index;not null" json:"test_id"`
	Score            int       `json:"score"`
	TotalPoints      int       `json:"total_points"`
	CorrectCount     int       `json:"correct_count"`
	TotalQuestions   int       `json:"total_questions"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// Percentage returns the score as a percentage of the total points.
func (r *Result) Percentage() float64 {
	if r.TotalPoints <= 0 {
		return 0
	}
	return float64(r.Score) * 100 / float64(r.TotalPoints)
}
