package authoring

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onthi-app/onthi-backend/internal/client"
)

type fakeCreator struct {
	mu      sync.Mutex
	calls   int
	lastReq client.CreateExamRequest
	err     error
	block   chan struct{} // when set, CreateExam waits until closed
}

func (f *fakeCreator) CreateExam(ctx context.Context, req client.CreateExamRequest) (*client.Exam, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &client.Exam{ID: "e1", Title: req.Title}, nil
}

func (f *fakeCreator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNotifier struct {
	mu     sync.Mutex
	toasts []Toast
}

func (f *fakeNotifier) Notify(t Toast) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toasts = append(f.toasts, t)
}

func (f *fakeNotifier) last() Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.toasts) == 0 {
		return Toast{}
	}
	return f.toasts[len(f.toasts)-1]
}

type fakeNav struct {
	mu    sync.Mutex
	backs int
}

func (f *fakeNav) NavigateBack() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.backs++
}

func (f *fakeNav) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.backs
}

func newTestController(api ExamCreator) (*Controller, *fakeNotifier, *fakeNav) {
	notifier := &fakeNotifier{}
	nav := &fakeNav{}
	c := NewController(api, notifier, nav)
	c.delay = time.Millisecond
	return c, notifier, nav
}

func TestSubmitSuccessNavigatesBackOnce(t *testing.T) {
	api := &fakeCreator{}
	c, notifier, nav := newTestController(api)

	err := c.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	assert.Equal(t, 1, api.callCount())
	assert.Equal(t, 1, nav.count(), "navigate back fires exactly once")
	assert.Equal(t, StateIdle, c.State())

	toast := notifier.last()
	assert.Equal(t, ToastSuccess, toast.Type)
	assert.Equal(t, MsgSuccessTitle, toast.Title)
	assert.Equal(t, MsgSuccessBody, toast.Body)
}

func TestSubmitInvalidDraftMakesNoNetworkCall(t *testing.T) {
	api := &fakeCreator{}
	c, notifier, _ := newTestController(api)

	d := validDraft()
	d.SetTitle("")

	err := c.Submit(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, 0, api.callCount())
	assert.Equal(t, MsgTitleRequired, d.Errors[FieldTitle])
	assert.Equal(t, ToastError, notifier.last().Type)
	assert.Equal(t, PositionTop, notifier.last().Position)
	assert.Equal(t, StateIdle, c.State())
}

func TestSubmitDoubleSubmitGuard(t *testing.T) {
	api := &fakeCreator{block: make(chan struct{})}
	c, _, nav := newTestController(api)

	done := make(chan error, 1)
	go func() {
		done <- c.Submit(context.Background(), validDraft())
	}()

	// Wait for the first attempt to reach the network call.
	require.Eventually(t, func() bool {
		return api.callCount() == 1
	}, time.Second, time.Millisecond)

	err := c.Submit(context.Background(), validDraft())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(api.block)
	require.NoError(t, <-done)

	assert.Equal(t, 1, api.callCount(), "exactly one network call")
	assert.Equal(t, 1, nav.count())
}

func TestSubmitFailureShowsServerDescription(t *testing.T) {
	api := &fakeCreator{err: &client.APIError{
		StatusCode:       409,
		ErrorCode:        "DUPLICATE_TITLE",
		ErrorDescription: "Duplicate title",
	}}
	c, notifier, nav := newTestController(api)

	err := c.Submit(context.Background(), validDraft())
	require.Error(t, err)

	toast := notifier.last()
	assert.Equal(t, ToastError, toast.Type)
	assert.Equal(t, "Duplicate title", toast.Body, "server description verbatim")
	assert.Equal(t, PositionTop, toast.Position)
	assert.Equal(t, errorToastDuration, toast.Duration)
	assert.Equal(t, 0, nav.count())
	assert.Equal(t, StateIdle, c.State())
}

func TestSubmitErrorMessagePriority(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"description wins",
			&client.APIError{ErrorDescription: "desc", Message: "msg"},
			"desc",
		},
		{
			"message as fallback",
			&client.APIError{Message: "msg"},
			"msg",
		},
		{
			"empty envelope falls back locally",
			&client.APIError{},
			MsgErrorFallback,
		},
		{
			"transport error falls back locally",
			context.DeadlineExceeded,
			MsgErrorFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractErrorMessage(tt.err))
		})
	}
}

func TestSubmitCancelledContextSuppressesFeedback(t *testing.T) {
	api := &fakeCreator{block: make(chan struct{})}
	c, notifier, nav := newTestController(api)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Submit(ctx, validDraft())
	}()

	require.Eventually(t, func() bool {
		return api.callCount() == 1
	}, time.Second, time.Millisecond)

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)

	assert.Empty(t, notifier.toasts, "no toast after the screen is gone")
	assert.Equal(t, 0, nav.count())
}

func TestBuildPayloadWireTransform(t *testing.T) {
	d := validDraft()
	q := d.Questions[0]
	d.SetExplanation(q.LocalID, "Cộng hai số tự nhiên")
	d.SetDifficulty(q.LocalID, 2)

	second := d.AddQuestion()
	d.SetQuestionText(second, "2 * 3 = ?")
	for i, a := range d.question(second).Answers {
		d.SetAnswerText(second, a.LocalID, []string{"4", "5", "6", "7"}[i])
	}
	d.SetCorrectAnswer(second, d.question(second).Answers[2].LocalID)

	payload := BuildPayload(d)

	assert.Equal(t, "Đề thi thử môn Toán", payload.Title)
	assert.Equal(t, 30, payload.Duration)
	assert.Equal(t, "s1", payload.SubjectID)
	assert.Equal(t, "g1", payload.GradeLevelID)
	assert.Equal(t, "t1", payload.ExamTypeID)
	require.Len(t, payload.Questions, 2)

	first := payload.Questions[0]
	assert.Equal(t, "1 + 1 = ?", first.Content)
	assert.Equal(t, []string{"1", "2", "3", "4"}, first.Options)
	assert.Equal(t, []int{1}, first.CorrectAnswers)
	assert.Equal(t, "Cộng hai số tự nhiên", first.Explanation)
	assert.Equal(t, 2, first.Difficulty)

	assert.Equal(t, []int{2}, payload.Questions[1].CorrectAnswers)
}

func TestBuildPayloadOmitsLocalIDs(t *testing.T) {
	// Local IDs exist only for list keys and error lookups; the wire
	// payload carries positions instead.
	payload := BuildPayload(validDraft())
	require.Len(t, payload.Questions, 1)
	assert.Len(t, payload.Questions[0].Options, 4)
}
