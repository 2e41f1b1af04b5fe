package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondExam(t *testing.T) {
	subjectID := uuid.New()
	g1, g2 := uuid.New(), uuid.New()

	raw := `{"subjectId":"` + subjectID.String() + `","isDeleted":false,` +
		`"title":{"$regex":"đại số","$options":"i"},` +
		`"gradeLevelId":{"$in":["` + g1.String() + `","` + g2.String() + `"]}}`

	var cond ExamCond
	require.NoError(t, ParseCond(raw, &cond))

	require.NotNil(t, cond.SubjectID)
	assert.Equal(t, subjectID, *cond.SubjectID)
	require.NotNil(t, cond.IsDeleted)
	assert.False(t, *cond.IsDeleted)
	require.NotNil(t, cond.Title)
	assert.Equal(t, "đại số", cond.Title.Pattern)
	assert.True(t, cond.Title.CaseInsensitive)
	assert.Equal(t, IDSet{g1, g2}, cond.GradeLevelID)
}

func TestParseCondExactTitle(t *testing.T) {
	var cond ExamCond
	require.NoError(t, ParseCond(`{"title":"Đề thi giữa kỳ"}`, &cond))
	require.NotNil(t, cond.Title)
	assert.Equal(t, "Đề thi giữa kỳ", cond.Title.Exact)
	assert.Empty(t, cond.Title.Pattern)
}

func TestParseCondSingleID(t *testing.T) {
	id := uuid.New()
	var cond ExamCond
	require.NoError(t, ParseCond(`{"gradeLevelId":"`+id.String()+`"}`, &cond))
	assert.Equal(t, IDSet{id}, cond.GradeLevelID)
}

func TestParseCondEmpty(t *testing.T) {
	var cond NotificationCond
	require.NoError(t, ParseCond("", &cond))
	assert.Nil(t, cond.UserID)
	assert.Nil(t, cond.IsRead)
}

func TestParseCondRejectsUnknownField(t *testing.T) {
	var cond ExamCond
	err := ParseCond(`{"titel":"typo"}`, &cond)
	assert.Error(t, err)
}

func TestParseCondRejectsEmptyIn(t *testing.T) {
	var cond ExamCond
	err := ParseCond(`{"gradeLevelId":{"$in":[]}}`, &cond)
	assert.Error(t, err)
}

func TestParseCondNotification(t *testing.T) {
	userID := uuid.New()
	var cond NotificationCond
	require.NoError(t, ParseCond(`{"user":"`+userID.String()+`","isRead":false}`, &cond))
	require.NotNil(t, cond.UserID)
	assert.Equal(t, userID, *cond.UserID)
	require.NotNil(t, cond.IsRead)
	assert.False(t, *cond.IsRead)
}
