package authoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validDraft builds a draft that passes every validation rule.
func validDraft() *ExamDraft {
	d := NewDraft()
	d.SetTitle("Đề thi thử môn Toán")
	d.SetDuration("30")
	d.SetSubject(Ref{ID: "s1", Name: "Toán học"})
	d.SetGradeLevel(Ref{ID: "g1", Name: "Lớp 12"})
	d.SetExamType(Ref{ID: "t1", Name: "Thi thử"})

	q := d.Questions[0]
	d.SetQuestionText(q.LocalID, "1 + 1 = ?")
	for i, a := range q.Answers {
		d.SetAnswerText(q.LocalID, a.LocalID, []string{"1", "2", "3", "4"}[i])
	}
	d.SetCorrectAnswer(q.LocalID, q.Answers[1].LocalID)
	return d
}

func TestValidateCleanDraft(t *testing.T) {
	errs := Validate(validDraft())
	assert.Empty(t, errs)
}

func TestValidateMissingTitleOnly(t *testing.T) {
	d := validDraft()
	d.SetTitle("")

	errs := Validate(d)
	require.Len(t, errs, 1)
	assert.Equal(t, MsgTitleRequired, errs[FieldTitle])
}

func TestValidateTitleIndependentOfOtherFields(t *testing.T) {
	// The title check must fire regardless of how broken the rest is.
	d := NewDraft()
	errs := Validate(d)
	assert.Equal(t, MsgTitleRequired, errs[FieldTitle])

	d = validDraft()
	d.SetTitle("   ")
	d.SetDuration("abc")
	errs = Validate(d)
	assert.Equal(t, MsgTitleRequired, errs[FieldTitle])
}

func TestValidateDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		want     string
	}{
		{"empty", "", MsgDurationRequired},
		{"blank", "   ", MsgDurationRequired},
		{"not a number", "ba mươi", MsgDurationPositive},
		{"zero", "0", MsgDurationPositive},
		{"negative", "-5", MsgDurationPositive},
		{"decimal", "30.5", MsgDurationPositive},
		{"over the cap", "2000", MsgDurationMax},
		{"at the cap", "1440", ""},
		{"normal", "45", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.SetDuration(tt.duration)

			errs := Validate(d)
			if tt.want == "" {
				assert.NotContains(t, errs, FieldDuration)
			} else {
				assert.Equal(t, tt.want, errs[FieldDuration])
			}
		})
	}
}

func TestValidateSelectionsRequired(t *testing.T) {
	d := validDraft()
	d.Subject = Ref{}
	d.GradeLevel = Ref{}
	d.ExamType = Ref{}

	errs := Validate(d)
	assert.Equal(t, MsgSubjectRequired, errs[FieldSubject])
	assert.Equal(t, MsgGradeLevelRequired, errs[FieldGradeLevel])
	assert.Equal(t, MsgExamTypeRequired, errs[FieldExamType])
}

func TestValidateNoQuestions(t *testing.T) {
	d := validDraft()
	d.Questions = nil

	errs := Validate(d)
	assert.Equal(t, MsgNoQuestions, errs[FieldQuestions])
}

func TestValidateQuestionAndAnswerKeys(t *testing.T) {
	d := validDraft()
	q := d.Questions[0]
	d.SetQuestionText(q.LocalID, "   ")
	d.SetAnswerText(q.LocalID, q.Answers[2].LocalID, "")

	errs := Validate(d)
	assert.Equal(t, MsgQuestionRequired, errs[QuestionKey(q.LocalID)])
	assert.Equal(t, MsgAnswerRequired, errs[AnswerKey(q.LocalID, q.Answers[2].LocalID)])

	// The untouched answers stay clean.
	assert.NotContains(t, errs, AnswerKey(q.LocalID, q.Answers[0].LocalID))
}

func TestValidateDoesNotShortCircuit(t *testing.T) {
	d := NewDraft()
	q := d.Questions[0]

	errs := Validate(d)

	// Every broken field reports at once: title, duration, three
	// selections, question text, and four blank answers.
	assert.Len(t, errs, 6+len(q.Answers))
}
