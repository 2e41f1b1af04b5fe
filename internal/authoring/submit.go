package authoring

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/onthi-app/onthi-backend/internal/client"
)

// State is the submission controller's current phase.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

// ErrSubmitInFlight is returned when submit is invoked while a previous
// attempt is still pending.
var ErrSubmitInFlight = errors.New("submit already in flight")

// Submission feedback strings.
const (
	MsgSuccessTitle  = "Thành công"
	MsgSuccessBody   = "Tạo đề thi thành công!"
	MsgErrorTitle    = "Lỗi"
	MsgValidation    = "Vui lòng kiểm tra lại thông tin đề thi"
	MsgErrorFallback = "Có lỗi xảy ra khi tạo đề thi!"
)

// navigateBackDelay keeps the success toast visible before the screen
// closes.
const navigateBackDelay = 1500 * time.Millisecond

// errorToastDuration holds failure toasts longer than the default.
const errorToastDuration = 4 * time.Second

// ExamCreator is the remote call the controller makes on a valid draft.
// *client.Client satisfies it.
type ExamCreator interface {
	CreateExam(ctx context.Context, req client.CreateExamRequest) (*client.Exam, error)
}

// Navigator closes the authoring screen after a successful submit.
type Navigator interface {
	NavigateBack()
}

// Controller drives the submit flow: validate, transform, POST, feedback.
// One Controller serves one authoring session.
type Controller struct {
	api      ExamCreator
	notifier Notifier
	nav      Navigator

	// delay is overridable in tests; production uses navigateBackDelay.
	delay time.Duration

	mu    sync.Mutex
	state State
}

// NewController creates a Controller.
func NewController(api ExamCreator, notifier Notifier, nav Navigator) *Controller {
	return &Controller{
		api:      api,
		notifier: notifier,
		nav:      nav,
		delay:    navigateBackDelay,
	}
}

// State returns the controller's current phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Submit validates the draft and, if clean, POSTs it. While a previous
// attempt is pending the call is rejected without a second network request.
// Validation errors land on d.Errors and are also surfaced as a toast; the
// draft is preserved either way so the user can fix and resubmit.
//
// On success the navigator fires exactly once, after a short delay so the
// success toast is seen before the screen closes. Cancelling ctx mid-flight
// (screen dismissed) suppresses both the toast and the navigation.
func (c *Controller) Submit(ctx context.Context, d *ExamDraft) error {
	c.mu.Lock()
	if c.state == StateValidating || c.state == StateSubmitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.state = StateValidating
	c.mu.Unlock()

	errs := Validate(d)
	if len(errs) > 0 {
		d.Errors = errs
		c.setState(StateIdle)
		c.notifier.Notify(Toast{
			Type:     ToastError,
			Title:    MsgErrorTitle,
			Body:     MsgValidation,
			Position: PositionTop,
			Duration: errorToastDuration,
		})
		return nil
	}
	d.Errors = FieldErrors{}

	c.setState(StateSubmitting)

	_, err := c.api.CreateExam(ctx, BuildPayload(d))
	if err != nil {
		c.setState(StateFailed)
		defer c.setState(StateIdle)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.notifier.Notify(Toast{
			Type:     ToastError,
			Title:    MsgErrorTitle,
			Body:     extractErrorMessage(err),
			Position: PositionTop,
			Duration: errorToastDuration,
		})
		return err
	}

	c.setState(StateSucceeded)
	c.notifier.Notify(Toast{
		Type:     ToastSuccess,
		Title:    MsgSuccessTitle,
		Body:     MsgSuccessBody,
		Position: PositionBottom,
	})

	select {
	case <-time.After(c.delay):
		c.nav.NavigateBack()
	case <-ctx.Done():
	}

	c.setState(StateIdle)
	return nil
}

// BuildPayload transforms a validated draft into the wire shape: question
// text becomes content, answer texts flatten into options, and the correct
// flags become zero-based indices into that array.
func BuildPayload(d *ExamDraft) client.CreateExamRequest {
	duration, _ := strconv.Atoi(strings.TrimSpace(d.Duration))

	req := client.CreateExamRequest{
		Title:        strings.TrimSpace(d.Title),
		Description:  strings.TrimSpace(d.Description),
		SubjectID:    d.Subject.ID,
		GradeLevelID: d.GradeLevel.ID,
		ExamTypeID:   d.ExamType.ID,
		Duration:     duration,
	}

	for _, q := range d.Questions {
		wire := client.CreateQuestionRequest{
			Content:     strings.TrimSpace(q.Text),
			Explanation: strings.TrimSpace(q.Explanation),
			Difficulty:  q.Difficulty,
		}
		for i, a := range q.Answers {
			wire.Options = append(wire.Options, strings.TrimSpace(a.Text))
			if a.IsCorrect {
				wire.CorrectAnswers = append(wire.CorrectAnswers, i)
			}
		}
		req.Questions = append(req.Questions, wire)
	}

	return req
}

// extractErrorMessage picks the display string for a failed submit:
// the server's errorDescription, then its message, then a local fallback.
func extractErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if apiErr.ErrorDescription != "" {
			return apiErr.ErrorDescription
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return MsgErrorFallback
}
