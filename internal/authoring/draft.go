// Package authoring implements the exam authoring form: a draft model with
// field setters, a pure validation pass, reference-data pickers, and a
// submission controller. It is the engine behind cmd/author and mirrors the
// flow the mobile client drives against the same API.
package authoring

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// FieldErrors maps a field key to a human-readable message. Keys are either
// a top-level field name or a composite key carrying the question's/answer's
// local ID so errors attach to the exact offending control.
type FieldErrors map[string]string

// Ref is a denormalized pointer to a server-side entity (subject, grade
// level, exam type), fetched at form mount and held in memory only.
type Ref struct {
	ID   string
	Name string
	Code string
}

// AnswerDraft is one answer option being edited.
type AnswerDraft struct {
	LocalID   string
	Text      string
	IsCorrect bool
}

// QuestionDraft is one question being edited.
type QuestionDraft struct {
	LocalID     string
	Text        string
	Answers     []AnswerDraft
	Explanation string
	Difficulty  int
}

// ExamDraft is the authoring form state. Duration stays a raw string until
// validation; the user types it as free text. The draft lives only as long
// as the screen; there is no autosave.
type ExamDraft struct {
	Title       string
	Description string
	Duration    string
	Subject     Ref
	GradeLevel  Ref
	ExamType    Ref
	Questions   []QuestionDraft
	Errors      FieldErrors
}

// answersPerQuestion is the seeded answer arity for a fresh question.
const answersPerQuestion = 4

// newLocalID generates a within-draft unique key: current time in
// milliseconds plus a short random suffix. Never sent to the server.
func newLocalID() string {
	return fmt.Sprintf("%d%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

func newQuestionDraft() QuestionDraft {
	q := QuestionDraft{LocalID: newLocalID()}
	for i := 0; i < answersPerQuestion; i++ {
		q.Answers = append(q.Answers, AnswerDraft{LocalID: newLocalID()})
	}
	return q
}

// NewDraft creates an empty draft seeded with one blank question, matching
// what the authoring screen shows on mount.
func NewDraft() *ExamDraft {
	return &ExamDraft{
		Questions: []QuestionDraft{newQuestionDraft()},
		Errors:    FieldErrors{},
	}
}

// Field keys.
const (
	FieldTitle      = "title"
	FieldDuration   = "duration"
	FieldSubject    = "subject"
	FieldGradeLevel = "gradeLevel"
	FieldExamType   = "examType"
	FieldQuestions  = "questions"
)

// QuestionKey is the error key for a question's text.
func QuestionKey(questionID string) string {
	return "question_" + questionID + "_content"
}

// AnswerKey is the error key for one answer's text.
func AnswerKey(questionID, answerID string) string {
	return "question_" + questionID + "_answer_" + answerID
}

// clearError drops one error entry; editing a field clears its error
// immediately rather than waiting for the next validation pass.
func (d *ExamDraft) clearError(key string) {
	delete(d.Errors, key)
}

// SetTitle updates the title and clears its error.
func (d *ExamDraft) SetTitle(title string) {
	d.Title = title
	d.clearError(FieldTitle)
}

// SetDescription updates the description.
func (d *ExamDraft) SetDescription(desc string) {
	d.Description = desc
}

// SetDuration updates the raw duration text and clears its error.
func (d *ExamDraft) SetDuration(raw string) {
	d.Duration = raw
	d.clearError(FieldDuration)
}

// SetSubject selects the subject and clears its error.
func (d *ExamDraft) SetSubject(ref Ref) {
	d.Subject = ref
	d.clearError(FieldSubject)
}

// SetGradeLevel selects the grade level and clears its error.
func (d *ExamDraft) SetGradeLevel(ref Ref) {
	d.GradeLevel = ref
	d.clearError(FieldGradeLevel)
}

// SetExamType selects the exam type and clears its error.
func (d *ExamDraft) SetExamType(ref Ref) {
	d.ExamType = ref
	d.clearError(FieldExamType)
}

// AddQuestion appends a fresh blank question and returns its local ID.
func (d *ExamDraft) AddQuestion() string {
	q := newQuestionDraft()
	d.Questions = append(d.Questions, q)
	d.clearError(FieldQuestions)
	return q.LocalID
}

// CanDeleteQuestion reports whether deletion is allowed; the last remaining
// question cannot be removed.
func (d *ExamDraft) CanDeleteQuestion() bool {
	return len(d.Questions) > 1
}

// DeleteQuestion removes a question and sweeps every error keyed to it so no
// stale message survives the deletion. Returns false if the question does
// not exist or is the last one.
func (d *ExamDraft) DeleteQuestion(questionID string) bool {
	if !d.CanDeleteQuestion() {
		return false
	}
	idx := d.questionIndex(questionID)
	if idx < 0 {
		return false
	}

	prefix := "question_" + questionID + "_"
	for key := range d.Errors {
		if strings.HasPrefix(key, prefix) {
			delete(d.Errors, key)
		}
	}

	d.Questions = append(d.Questions[:idx], d.Questions[idx+1:]...)
	return true
}

// SetQuestionText updates a question's text and clears its error.
func (d *ExamDraft) SetQuestionText(questionID, text string) bool {
	q := d.question(questionID)
	if q == nil {
		return false
	}
	q.Text = text
	d.clearError(QuestionKey(questionID))
	return true
}

// SetExplanation updates a question's explanation.
func (d *ExamDraft) SetExplanation(questionID, text string) bool {
	q := d.question(questionID)
	if q == nil {
		return false
	}
	q.Explanation = text
	return true
}

// SetDifficulty updates a question's difficulty (1 to 5).
func (d *ExamDraft) SetDifficulty(questionID string, difficulty int) bool {
	q := d.question(questionID)
	if q == nil {
		return false
	}
	q.Difficulty = difficulty
	return true
}

// SetAnswerText updates one answer's text and clears its error.
func (d *ExamDraft) SetAnswerText(questionID, answerID, text string) bool {
	q := d.question(questionID)
	if q == nil {
		return false
	}
	for i := range q.Answers {
		if q.Answers[i].LocalID == answerID {
			q.Answers[i].Text = text
			d.clearError(AnswerKey(questionID, answerID))
			return true
		}
	}
	return false
}

// SetCorrectAnswer flags one answer correct and all its siblings incorrect.
// Radio semantics: exactly one correct answer per question.
func (d *ExamDraft) SetCorrectAnswer(questionID, answerID string) bool {
	q := d.question(questionID)
	if q == nil {
		return false
	}
	found := false
	for i := range q.Answers {
		if q.Answers[i].LocalID == answerID {
			found = true
		}
	}
	if !found {
		return false
	}
	for i := range q.Answers {
		q.Answers[i].IsCorrect = q.Answers[i].LocalID == answerID
	}
	return true
}

func (d *ExamDraft) questionIndex(questionID string) int {
	for i := range d.Questions {
		if d.Questions[i].LocalID == questionID {
			return i
		}
	}
	return -1
}

func (d *ExamDraft) question(questionID string) *QuestionDraft {
	idx := d.questionIndex(questionID)
	if idx < 0 {
		return nil
	}
	return &d.Questions[idx]
}
