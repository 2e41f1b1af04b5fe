package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// User is the account shape returned by auth and profile endpoints.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role"`
}

// Session is the login result.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RefItem is one reference-data entry (subject, grade level, exam type).
type RefItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Exam is the catalog shape returned by exam endpoints.
type Exam struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	SubjectID     string `json:"subjectId"`
	GradeLevelID  string `json:"gradeLevelId"`
	ExamTypeID    string `json:"examTypeId"`
	Duration      int    `json:"duration"`
	AuthorID      string `json:"authorId"`
	QuestionCount int    `json:"questionCount"`
}

// CreateExamRequest is the wire payload for POST /exams.
type CreateExamRequest struct {
	Title        string                  `json:"title"`
	Description  string                  `json:"description,omitempty"`
	SubjectID    string                  `json:"subjectId"`
	GradeLevelID string                  `json:"gradeLevelId"`
	ExamTypeID   string                  `json:"examTypeId"`
	Duration     int                     `json:"duration"`
	Questions    []CreateQuestionRequest `json:"questions"`
}

// CreateQuestionRequest is one question in CreateExamRequest. Options holds
// the answer texts in order; CorrectAnswers holds zero-based indices into
// Options.
type CreateQuestionRequest struct {
	Content        string   `json:"content"`
	Options        []string `json:"options"`
	CorrectAnswers []int    `json:"correctAnswers"`
	Explanation    string   `json:"explanation,omitempty"`
	Difficulty     int      `json:"difficulty,omitempty"`
}

// Login authenticates with email + password and stores the token for
// subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// Register creates an account and stores the token for subsequent calls.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, err
	}
	c.SetToken(session.Token)
	return &session, nil
}

// listRefItems fetches one collection's active picker entries.
func (c *Client) listRefItems(ctx context.Context, path string) ([]RefItem, error) {
	var data json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/v1/"+path+"/active", nil, &data); err != nil {
		return nil, err
	}
	var items []RefItem
	if _, err := decodeList(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListSubjects fetches the active subjects.
func (c *Client) ListSubjects(ctx context.Context) ([]RefItem, error) {
	return c.listRefItems(ctx, "subjects")
}

// ListGradeLevels fetches the active grade levels.
func (c *Client) ListGradeLevels(ctx context.Context) ([]RefItem, error) {
	return c.listRefItems(ctx, "grade-levels")
}

// ListExamTypes fetches the active exam types.
func (c *Client) ListExamTypes(ctx context.Context) ([]RefItem, error) {
	return c.listRefItems(ctx, "exam-types")
}

// ListExams fetches a catalog page. cond is the optional JSON filter.
func (c *Client) ListExams(ctx context.Context, cond string, page, limit int) ([]Exam, int, error) {
	path := "/api/v1/exams?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
	if cond != "" {
		path += "&cond=" + url.QueryEscape(cond)
	}
	var data json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, 0, err
	}
	var exams []Exam
	total, err := decodeList(data, &exams)
	if err != nil {
		return nil, 0, err
	}
	return exams, total, nil
}

// CreateExam submits a new exam.
func (c *Client) CreateExam(ctx context.Context, req CreateExamRequest) (*Exam, error) {
	var body struct {
		Result Exam `json:"result"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/exams", req, &body); err != nil {
		return nil, err
	}
	return &body.Result, nil
}
