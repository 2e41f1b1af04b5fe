package model

import (
	"github.com/google/uuid"
)

// Question represents a stored multiple-choice question. Options and
// CorrectAnswers are jsonb columns; pgx marshals them transparently.
type Question struct {
	ID             uuid.UUID `json:"id"`
	ExamID         uuid.UUID `json:"examId"`
	Content        string    `json:"content"`
	Options        []string  `json:"options"`
	CorrectAnswers []int     `json:"correctAnswers"`
	Explanation    string    `json:"explanation,omitempty"`
	Difficulty     int       `json:"difficulty"`
	OrderNum       int       `json:"orderNum"`
}
