package model

import (
	"time"

	"github.com/google/uuid"
)

// RefCollection names a reference-data table. The three collections share one
// schema and are served by the same repository/handler pair.
type RefCollection string

const (
	CollectionSubjects    RefCollection = "subjects"
	CollectionGradeLevels RefCollection = "grade_levels"
	CollectionExamTypes   RefCollection = "exam_types"
)

// Valid reports whether the collection is one of the known tables.
// Guards against table-name injection since the collection is interpolated
// into SQL.
func (c RefCollection) Valid() bool {
	switch c {
	case CollectionSubjects, CollectionGradeLevels, CollectionExamTypes:
		return true
	}
	return false
}

// RefItem is a reference-data entity: a subject, grade level, or exam type.
type RefItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code,omitempty"`
	IsActive  bool      `json:"isActive"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateRefItemRequest is the payload for creating a reference-data entry.
type CreateRefItemRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Code string `json:"code" binding:"omitempty,max=20"`
}

// UpdateRefItemRequest is the payload for updating a reference-data entry.
type UpdateRefItemRequest struct {
	Name     string `json:"name" binding:"omitempty,min=1,max=100"`
	Code     string `json:"code" binding:"omitempty,max=20"`
	IsActive *bool  `json:"isActive" binding:"omitempty"`
}
