package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.vn", creds["email"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"statusCode": 200,
			"data": map[string]interface{}{
				"user":  map[string]string{"id": "u1", "name": "An", "email": "a@b.vn", "role": "user"},
				"token": "jwt-token",
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	session, err := c.Login(context.Background(), "a@b.vn", "secret")
	require.NoError(t, err)

	assert.Equal(t, "An", session.User.Name)
	assert.Equal(t, "jwt-token", c.token, "token kept for subsequent calls")
}

func TestDoDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"statusCode":       409,
			"errorCode":        "DUPLICATE_TITLE",
			"errorDescription": "Tiêu đề đề thi đã tồn tại",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.CreateExam(context.Background(), CreateExamRequest{Title: "T"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)
	assert.Equal(t, "DUPLICATE_TITLE", apiErr.ErrorCode)
	assert.Equal(t, "Tiêu đề đề thi đã tồn tại", apiErr.ErrorDescription)
}

func TestDoSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"statusCode": 200,
			"data":       map[string]interface{}{"result": []RefItem{}, "total": 0},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	c.SetToken("abc123")
	_, err := c.ListSubjects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestListRefItemsUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/subjects/active", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"statusCode": 200,
			"data": map[string]interface{}{
				"result": []RefItem{
					{ID: "s1", Name: "Toán học", Code: "MATH"},
					{ID: "s2", Name: "Vật lý", Code: "PHYS"},
				},
				"total": 2,
				"page":  1,
				"limit": 2,
			},
		})
	}))
	defer srv.Close()

	items, err := New(srv.URL).ListSubjects(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Toán học", items[0].Name)
	assert.Equal(t, "PHYS", items[1].Code)
}

func TestListExamsCarriesPagingAndCond(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, `{"title":{"$regex":"toán"}}`, q.Get("cond"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"statusCode": 200,
			"data": map[string]interface{}{
				"result": []Exam{{ID: "e1", Title: "Đề thi thử"}},
				"total":  11,
			},
		})
	}))
	defer srv.Close()

	exams, total, err := New(srv.URL).ListExams(context.Background(), `{"title":{"$regex":"toán"}}`, 2, 5)
	require.NoError(t, err)

	assert.Equal(t, 11, total)
	require.Len(t, exams, 1)
	assert.Equal(t, "Đề thi thử", exams[0].Title)
}

func TestCreateExamDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreateExamRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Questions, 1)
		assert.Equal(t, []int{1}, req.Questions[0].CorrectAnswers)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"statusCode": 201,
			"data": map[string]interface{}{
				"result": Exam{ID: "e9", Title: req.Title, QuestionCount: 1},
			},
		})
	}))
	defer srv.Close()

	exam, err := New(srv.URL).CreateExam(context.Background(), CreateExamRequest{
		Title: "Đề mới",
		Questions: []CreateQuestionRequest{{
			Content:        "1 + 1 = ?",
			Options:        []string{"1", "2"},
			CorrectAnswers: []int{1},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "e9", exam.ID)
	assert.Equal(t, "Đề mới", exam.Title)
}

func TestDoMalformedBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListSubjects(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "decode failure is not an API error")
}
