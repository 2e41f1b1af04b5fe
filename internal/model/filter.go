package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// The mobile client sends list filters as a JSON `cond` query parameter using
// a small Mongo-flavored grammar: plain values for equality, {"$regex": ...,
// "$options": "i"} for substring search and {"$in": [...]} for set membership.
// These types parse that grammar into strict Go values at the boundary;
// unknown shapes fail instead of silently matching everything.

// StringMatch is either an exact string or a case-insensitive substring match.
type StringMatch struct {
	Exact           string
	Pattern         string
	CaseInsensitive bool
}

func (m *StringMatch) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.Exact = s
		return nil
	}

	var op struct {
		Regex   string `json:"$regex"`
		Options string `json:"$options"`
	}
	if err := json.Unmarshal(data, &op); err != nil {
		return fmt.Errorf("string match: expected string or {$regex}: %w", err)
	}
	if op.Regex == "" {
		return fmt.Errorf("string match: empty $regex")
	}
	m.Pattern = op.Regex
	m.CaseInsensitive = strings.Contains(op.Options, "i")
	return nil
}

// IDSet is either a single UUID or a {"$in": [...]} list.
type IDSet []uuid.UUID

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var one uuid.UUID
	if err := json.Unmarshal(data, &one); err == nil {
		*s = IDSet{one}
		return nil
	}

	var op struct {
		In []uuid.UUID `json:"$in"`
	}
	if err := json.Unmarshal(data, &op); err != nil {
		return fmt.Errorf("id set: expected uuid or {$in}: %w", err)
	}
	if len(op.In) == 0 {
		return fmt.Errorf("id set: empty $in")
	}
	*s = IDSet(op.In)
	return nil
}

// ExamCond are the supported filters for GET /exams.
type ExamCond struct {
	SubjectID    *uuid.UUID   `json:"subjectId"`
	GradeLevelID IDSet        `json:"gradeLevelId"`
	ExamTypeID   IDSet        `json:"examTypeId"`
	Title        *StringMatch `json:"title"`
	IsDeleted    *bool        `json:"isDeleted"`
}

// RefCond are the supported filters for reference-data lists.
type RefCond struct {
	Name      *StringMatch `json:"name"`
	IsActive  *bool        `json:"isActive"`
	IsDeleted *bool        `json:"isDeleted"`
}

// NotificationCond are the supported filters for GET /notifications.
type NotificationCond struct {
	UserID *uuid.UUID `json:"user"`
	IsRead *bool      `json:"isRead"`
}

// ParseCond decodes a raw cond JSON string into dst. Unknown fields are
// rejected so that a misspelled filter fails loudly rather than returning
// the unfiltered collection.
func ParseCond(raw string, dst any) error {
	if raw == "" {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("parse cond: %w", err)
	}
	return nil
}
