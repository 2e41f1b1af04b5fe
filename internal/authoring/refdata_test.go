package authoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefSource struct {
	subjects    []Ref
	gradeLevels []Ref
	examTypes   []Ref
	failSubject bool
}

func (f *fakeRefSource) ListSubjects(ctx context.Context) ([]Ref, error) {
	if f.failSubject {
		return nil, errors.New("boom")
	}
	return f.subjects, nil
}

func (f *fakeRefSource) ListGradeLevels(ctx context.Context) ([]Ref, error) {
	return f.gradeLevels, nil
}

func (f *fakeRefSource) ListExamTypes(ctx context.Context) ([]Ref, error) {
	return f.examTypes, nil
}

func TestLoadRefDataAllThree(t *testing.T) {
	src := &fakeRefSource{
		subjects:    []Ref{{ID: "s1", Name: "Toán học"}},
		gradeLevels: []Ref{{ID: "g1", Name: "Lớp 10"}, {ID: "g2", Name: "Lớp 11"}},
		examTypes:   []Ref{{ID: "t1", Name: "Thi thử"}},
	}
	notifier := &fakeNotifier{}

	data, err := LoadRefData(context.Background(), src, notifier)
	require.NoError(t, err)

	assert.Len(t, data.Subjects, 1)
	assert.Len(t, data.GradeLevels, 2)
	assert.Len(t, data.ExamTypes, 1)
	assert.Empty(t, notifier.toasts)
}

func TestLoadRefDataPartialFailureKeepsFormUsable(t *testing.T) {
	src := &fakeRefSource{
		failSubject: true,
		gradeLevels: []Ref{{ID: "g1", Name: "Lớp 10"}},
		examTypes:   []Ref{{ID: "t1", Name: "Thi thử"}},
	}
	notifier := &fakeNotifier{}

	data, err := LoadRefData(context.Background(), src, notifier)
	require.NoError(t, err)

	// The failed list stays empty; its picker reports no data.
	assert.Empty(t, data.Subjects)
	assert.Equal(t, PickerNoData, NewPicker(data.Subjects).State())

	// The other two loaded normally.
	assert.Len(t, data.GradeLevels, 1)
	assert.Len(t, data.ExamTypes, 1)

	// Exactly one error toast for the one failure.
	require.Len(t, notifier.toasts, 1)
	assert.Equal(t, ToastError, notifier.toasts[0].Type)
}

func TestLoadRefDataCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	notifier := &fakeNotifier{}
	_, err := LoadRefData(ctx, &fakeRefSource{failSubject: true}, notifier)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, notifier.toasts, "no toast after cancellation")
}
