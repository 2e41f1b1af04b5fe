package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraftSeedsOneQuestion(t *testing.T) {
	d := NewDraft()

	require.Len(t, d.Questions, 1)
	assert.Len(t, d.Questions[0].Answers, 4)
	assert.NotEmpty(t, d.Questions[0].LocalID)

	seen := map[string]bool{d.Questions[0].LocalID: true}
	for _, a := range d.Questions[0].Answers {
		assert.False(t, seen[a.LocalID], "local IDs must be unique within the draft")
		seen[a.LocalID] = true
	}
}

func TestSettersClearErrors(t *testing.T) {
	d := NewDraft()
	q := d.Questions[0]

	d.Errors = Validate(d)
	require.Contains(t, d.Errors, FieldTitle)
	require.Contains(t, d.Errors, FieldDuration)
	require.Contains(t, d.Errors, QuestionKey(q.LocalID))
	require.Contains(t, d.Errors, AnswerKey(q.LocalID, q.Answers[0].LocalID))

	d.SetTitle("T")
	assert.NotContains(t, d.Errors, FieldTitle)

	d.SetDuration("45")
	assert.NotContains(t, d.Errors, FieldDuration)

	d.SetQuestionText(q.LocalID, "Q")
	assert.NotContains(t, d.Errors, QuestionKey(q.LocalID))

	d.SetAnswerText(q.LocalID, q.Answers[0].LocalID, "A")
	assert.NotContains(t, d.Errors, AnswerKey(q.LocalID, q.Answers[0].LocalID))

	// Untouched fields keep their errors.
	assert.Contains(t, d.Errors, FieldSubject)
	assert.Contains(t, d.Errors, AnswerKey(q.LocalID, q.Answers[1].LocalID))
}

func TestSetCorrectAnswerIsExclusive(t *testing.T) {
	d := NewDraft()
	q := d.Questions[0]

	require.True(t, d.SetCorrectAnswer(q.LocalID, q.Answers[0].LocalID))
	require.True(t, d.SetCorrectAnswer(q.LocalID, q.Answers[2].LocalID))

	for i, a := range d.Questions[0].Answers {
		assert.Equal(t, i == 2, a.IsCorrect, "answer %d", i)
	}
}

func TestSetCorrectAnswerUnknownIDs(t *testing.T) {
	d := NewDraft()
	q := d.Questions[0]

	assert.False(t, d.SetCorrectAnswer("nope", q.Answers[0].LocalID))
	assert.False(t, d.SetCorrectAnswer(q.LocalID, "nope"))

	for _, a := range d.Questions[0].Answers {
		assert.False(t, a.IsCorrect)
	}
}

func TestDeleteQuestionSweepsItsErrors(t *testing.T) {
	d := NewDraft()
	first := d.Questions[0].LocalID
	second := d.AddQuestion()

	d.Errors = Validate(d)
	require.Contains(t, d.Errors, QuestionKey(first))
	require.Contains(t, d.Errors, QuestionKey(second))

	require.True(t, d.DeleteQuestion(second))

	// Exactly the deleted question's keys vanish.
	for key := range d.Errors {
		assert.NotContains(t, key, second)
	}
	assert.Contains(t, d.Errors, QuestionKey(first))
	assert.Contains(t, d.Errors, FieldTitle)
	assert.Len(t, d.Questions, 1)
}

func TestDeleteLastQuestionIsRefused(t *testing.T) {
	d := NewDraft()
	assert.False(t, d.CanDeleteQuestion())
	assert.False(t, d.DeleteQuestion(d.Questions[0].LocalID))
	assert.Len(t, d.Questions, 1)
}

func TestAddQuestionAppends(t *testing.T) {
	d := NewDraft()
	id := d.AddQuestion()

	require.Len(t, d.Questions, 2)
	assert.Equal(t, id, d.Questions[1].LocalID)
	assert.Len(t, d.Questions[1].Answers, 4)
	assert.True(t, d.CanDeleteQuestion())
}
