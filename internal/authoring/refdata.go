package authoring

import (
	"context"
	"sync"
)

// RefSource fetches the reference-data candidate lists. Implemented by the
// API client; tests supply fakes.
type RefSource interface {
	ListSubjects(ctx context.Context) ([]Ref, error)
	ListGradeLevels(ctx context.Context) ([]Ref, error)
	ListExamTypes(ctx context.Context) ([]Ref, error)
}

// RefData holds the three picker candidate lists for one authoring session.
type RefData struct {
	Subjects    []Ref
	GradeLevels []Ref
	ExamTypes   []Ref
}

// LoadRefData fetches all three lists concurrently. A failed fetch surfaces
// one error toast and leaves that list empty; the form stays usable and the
// affected picker shows "no data". There is no retry; re-entering the screen
// reloads. Cancelling ctx abandons the load silently.
func LoadRefData(ctx context.Context, src RefSource, notifier Notifier) (*RefData, error) {
	data := &RefData{}

	fetches := []struct {
		name string
		dst  *[]Ref
		call func(context.Context) ([]Ref, error)
	}{
		{"môn học", &data.Subjects, src.ListSubjects},
		{"khối lớp", &data.GradeLevels, src.ListGradeLevels},
		{"loại đề thi", &data.ExamTypes, src.ListExamTypes},
	}

	var wg sync.WaitGroup
	for i := range fetches {
		f := &fetches[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs, err := f.call(ctx)
			if err != nil {
				if ctx.Err() == nil && notifier != nil {
					notifier.Notify(Toast{
						Type:     ToastError,
						Title:    "Lỗi",
						Body:     "Không thể tải danh sách " + f.name,
						Position: PositionBottom,
					})
				}
				return
			}
			*f.dst = refs
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
