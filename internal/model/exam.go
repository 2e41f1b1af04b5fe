package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxDurationMinutes caps exam duration at 24 hours.
const MaxDurationMinutes = 1440

// Exam represents an exam entity. Questions is populated only on detail reads.
type Exam struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	SubjectID     uuid.UUID  `json:"subjectId"`
	GradeLevelID  uuid.UUID  `json:"gradeLevelId"`
	ExamTypeID    uuid.UUID  `json:"examTypeId"`
	Duration      int        `json:"duration"`
	AuthorID      uuid.UUID  `json:"authorId"`
	QuestionCount int        `json:"questionCount"`
	IsDeleted     bool       `json:"isDeleted"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Questions     []Question `json:"questions,omitempty"`
}

// CreateExamRequest is the wire payload for exam creation. Field names match
// what the mobile client sends: per-question text in `content`, answer texts
// flattened into `options`, and correct answers as zero-based indices into
// that array.
type CreateExamRequest struct {
	Title        string                  `json:"title" binding:"required,max=255"`
	Description  string                  `json:"description" binding:"omitempty,max=2000"`
	SubjectID    uuid.UUID               `json:"subjectId" binding:"required"`
	GradeLevelID uuid.UUID               `json:"gradeLevelId" binding:"required"`
	ExamTypeID   uuid.UUID               `json:"examTypeId" binding:"required"`
	Duration     int                     `json:"duration" binding:"required,min=1,max=1440"`
	Questions    []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

// CreateQuestionRequest is one question inside CreateExamRequest.
type CreateQuestionRequest struct {
	Content        string   `json:"content" binding:"required,max=5000"`
	Options        []string `json:"options" binding:"required,min=2,dive,required"`
	CorrectAnswers []int    `json:"correctAnswers" binding:"required,min=1"`
	Explanation    string   `json:"explanation" binding:"omitempty,max=5000"`
	Difficulty     int      `json:"difficulty" binding:"omitempty,min=1,max=5"`
}
