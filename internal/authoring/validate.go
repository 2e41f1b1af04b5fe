package authoring

import (
	"strconv"
	"strings"
)

// MaxDurationMinutes caps exam duration at 24 hours.
const MaxDurationMinutes = 1440

// Validation messages, shown verbatim next to the offending control.
const (
	MsgTitleRequired      = "Tiêu đề đề thi là bắt buộc"
	MsgDurationRequired   = "Thời gian làm bài là bắt buộc"
	MsgDurationPositive   = "Thời gian phải là số nguyên dương lớn hơn 0"
	MsgDurationMax        = "Thời gian không được vượt quá 1440 phút (24 giờ)"
	MsgSubjectRequired    = "Vui lòng chọn môn học"
	MsgGradeLevelRequired = "Vui lòng chọn khối lớp"
	MsgExamTypeRequired   = "Vui lòng chọn loại đề thi"
	MsgNoQuestions        = "Đề thi phải có ít nhất một câu hỏi"
	MsgQuestionRequired   = "Nội dung câu hỏi là bắt buộc"
	MsgAnswerRequired     = "Nội dung đáp án là bắt buộc"
)

// Validate maps the full draft to a complete FieldErrors set. It fails
// closed: every rule runs every time, nothing short-circuits, so one fix
// never hides another error. Pure and synchronous; server-side constraints
// like duplicate titles surface only after submission.
func Validate(d *ExamDraft) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = MsgTitleRequired
	}

	validateDuration(d.Duration, errs)

	if d.Subject.ID == "" {
		errs[FieldSubject] = MsgSubjectRequired
	}
	if d.GradeLevel.ID == "" {
		errs[FieldGradeLevel] = MsgGradeLevelRequired
	}
	if d.ExamType.ID == "" {
		errs[FieldExamType] = MsgExamTypeRequired
	}

	if len(d.Questions) == 0 {
		errs[FieldQuestions] = MsgNoQuestions
	}

	for i := range d.Questions {
		q := &d.Questions[i]
		if strings.TrimSpace(q.Text) == "" {
			errs[QuestionKey(q.LocalID)] = MsgQuestionRequired
		}
		for j := range q.Answers {
			a := &q.Answers[j]
			if strings.TrimSpace(a.Text) == "" {
				errs[AnswerKey(q.LocalID, a.LocalID)] = MsgAnswerRequired
			}
		}
	}

	return errs
}

func validateDuration(raw string, errs FieldErrors) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		errs[FieldDuration] = MsgDurationRequired
		return
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		errs[FieldDuration] = MsgDurationPositive
		return
	}
	if n > MaxDurationMinutes {
		errs[FieldDuration] = MsgDurationMax
	}
}
