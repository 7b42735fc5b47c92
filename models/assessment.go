package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Topic represents an exam category (e.g. Dept Exams, GDS to MTS)
type Topic struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// Subtopic represents a section within a topic
type Subtopic struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	TopicID     string    `gorm:"index;not null" json:"topic_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (s *Subtopic) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// Question holds a question with optional Telugu translations
type Question struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	Text          string         `gorm:"not null" json:"text"`
	TextTe        string         `json:"text_te"`
	Type          string         `gorm:"default:'mcq'" json:"type"` // mcq, true_false
	Options       datatypes.JSON `json:"options"`
	OptionsTe     datatypes.JSON `json:"options_te"`
	CorrectAnswer string         `json:"correct_answer"`
	Explanation   string         `json:"explanation"`
	ExplanationTe string         `json:"explanation_te"`
	Points        int            `gorm:"default:1" json:"points"`
	TopicID       string         `gorm:"index" json:"topic_id"`
	SubtopicID    string         `gorm:"index" json:"subtopic_id"`
	ImageURL      string         `json:"image_url"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return nil
}

// Test represents a mock test assembled from questions
type Test struct {
	ID              string         `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `json:"description"`
	TopicID         string         `gorm:"index" json:"topic_id"`
	QuestionIDs     datatypes.JSON `json:"question_ids"`
	DurationMinutes int            `gorm:"default:60" json:"duration_minutes"`
	IsPremium       bool           `gorm:"default:false" json:"is_premium"`
	CreatedBy       string         `gorm:"index" json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
