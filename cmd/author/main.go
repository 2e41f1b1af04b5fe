// Command author is an interactive terminal client for creating exams.
// It drives the same authoring engine the mobile app uses: load the
// reference pickers, fill a draft question by question, validate, submit.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/onthi-app/onthi-backend/internal/authoring"
	"github.com/onthi-app/onthi-backend/internal/client"
)

func main() {
	baseURL := flag.String("server", "http://localhost:8080", "Backend base URL")
	email := flag.String("email", "", "Account email (prompted if empty)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reader := bufio.NewReader(os.Stdin)
	api := client.New(*baseURL)

	if err := login(ctx, api, reader, *email); err != nil {
		fmt.Fprintf(os.Stderr, "Đăng nhập thất bại: %v\n", err)
		os.Exit(1)
	}

	notifier := terminalNotifier{}
	refs, err := authoring.LoadRefData(ctx, refAdapter{api}, notifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Không thể tải dữ liệu: %v\n", err)
		os.Exit(1)
	}

	draft := buildDraft(reader, refs)

	nav := &exitNavigator{}
	controller := authoring.NewController(api, notifier, nav)

	for {
		if err := controller.Submit(ctx, draft); err != nil {
			if ctx.Err() != nil {
				return
			}
			// Server rejected; the toast already showed the reason.
		}
		if nav.done {
			return
		}
		if len(draft.Errors) > 0 {
			printErrors(draft.Errors)
		}
		if !promptYesNo(reader, "Thử lại?") {
			return
		}
		fixDraft(reader, draft, refs)
	}
}

func login(ctx context.Context, api *client.Client, reader *bufio.Reader, email string) error {
	if email == "" {
		email = prompt(reader, "Email")
	}
	fmt.Print("Mật khẩu: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}

	session, err := api.Login(ctx, email, string(raw))
	if err != nil {
		return err
	}
	fmt.Printf("Xin chào, %s!\n\n", session.User.Name)
	return nil
}

// buildDraft walks the user through the full form once.
func buildDraft(reader *bufio.Reader, refs *authoring.RefData) *authoring.ExamDraft {
	d := authoring.NewDraft()

	d.SetTitle(prompt(reader, "Tiêu đề đề thi"))
	d.SetDescription(prompt(reader, "Mô tả (tùy chọn)"))
	d.SetDuration(prompt(reader, "Thời gian làm bài (phút)"))

	d.SetSubject(pickRef(reader, "môn học", refs.Subjects))
	d.SetGradeLevel(pickRef(reader, "khối lớp", refs.GradeLevels))
	d.SetExamType(pickRef(reader, "loại đề thi", refs.ExamTypes))

	fillQuestion(reader, d, d.Questions[0].LocalID, 1)
	for promptYesNo(reader, "Thêm câu hỏi?") {
		id := d.AddQuestion()
		fillQuestion(reader, d, id, len(d.Questions))
	}

	return d
}

func fillQuestion(reader *bufio.Reader, d *authoring.ExamDraft, questionID string, number int) {
	fmt.Printf("\n── Câu %d ──\n", number)
	d.SetQuestionText(questionID, prompt(reader, "Nội dung câu hỏi"))

	var q *authoring.QuestionDraft
	for i := range d.Questions {
		if d.Questions[i].LocalID == questionID {
			q = &d.Questions[i]
		}
	}
	for i, a := range q.Answers {
		d.SetAnswerText(questionID, a.LocalID, prompt(reader, fmt.Sprintf("Đáp án %c", 'A'+i)))
	}

	for {
		pick := strings.ToUpper(prompt(reader, "Đáp án đúng (A-D)"))
		if len(pick) == 1 && pick[0] >= 'A' && pick[0] < byte('A'+len(q.Answers)) {
			d.SetCorrectAnswer(questionID, q.Answers[pick[0]-'A'].LocalID)
			break
		}
		fmt.Println("Vui lòng nhập A, B, C hoặc D")
	}

	d.SetExplanation(questionID, prompt(reader, "Giải thích (tùy chọn)"))
	if raw := prompt(reader, "Độ khó 1-5 (tùy chọn)"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			d.SetDifficulty(questionID, n)
		}
	}
}

// fixDraft re-prompts only the fields that failed validation.
func fixDraft(reader *bufio.Reader, d *authoring.ExamDraft, refs *authoring.RefData) {
	if _, bad := d.Errors[authoring.FieldTitle]; bad {
		d.SetTitle(prompt(reader, "Tiêu đề đề thi"))
	}
	if _, bad := d.Errors[authoring.FieldDuration]; bad {
		d.SetDuration(prompt(reader, "Thời gian làm bài (phút)"))
	}
	if _, bad := d.Errors[authoring.FieldSubject]; bad {
		d.SetSubject(pickRef(reader, "môn học", refs.Subjects))
	}
	if _, bad := d.Errors[authoring.FieldGradeLevel]; bad {
		d.SetGradeLevel(pickRef(reader, "khối lớp", refs.GradeLevels))
	}
	if _, bad := d.Errors[authoring.FieldExamType]; bad {
		d.SetExamType(pickRef(reader, "loại đề thi", refs.ExamTypes))
	}

	for i := range d.Questions {
		q := &d.Questions[i]
		if _, bad := d.Errors[authoring.QuestionKey(q.LocalID)]; bad {
			fmt.Printf("\n── Câu %d ──\n", i+1)
			d.SetQuestionText(q.LocalID, prompt(reader, "Nội dung câu hỏi"))
		}
		for j, a := range q.Answers {
			if _, bad := d.Errors[authoring.AnswerKey(q.LocalID, a.LocalID)]; bad {
				d.SetAnswerText(q.LocalID, a.LocalID, prompt(reader, fmt.Sprintf("Câu %d, đáp án %c", i+1, 'A'+j)))
			}
		}
	}
}

// pickRef is the terminal rendition of the selection modal: list, filter,
// choose by number.
func pickRef(reader *bufio.Reader, label string, candidates []authoring.Ref) authoring.Ref {
	picker := authoring.NewPicker(candidates)

	for {
		switch picker.State() {
		case authoring.PickerNoData:
			fmt.Printf("Không có dữ liệu %s\n", label)
			return authoring.Ref{}
		case authoring.PickerNoResults:
			fmt.Println("Không tìm thấy kết quả")
			picker.SetQuery("")
			continue
		}

		visible := picker.Visible()
		fmt.Printf("\nChọn %s:\n", label)
		for i, ref := range visible {
			fmt.Printf("  %d. %s\n", i+1, ref.Name)
		}

		in := prompt(reader, "Số thứ tự (hoặc gõ để tìm kiếm)")
		if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(visible) {
			return visible[n-1]
		}
		picker.SetQuery(in)
	}
}

func printErrors(errs authoring.FieldErrors) {
	fmt.Println("\nLỗi:")
	for _, msg := range errs {
		fmt.Printf("  - %s\n", msg)
	}
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptYesNo(reader *bufio.Reader, label string) bool {
	answer := strings.ToLower(prompt(reader, label+" (y/n)"))
	return answer == "y" || answer == "yes"
}

// refAdapter maps client items into the authoring engine's Ref shape.
type refAdapter struct {
	api *client.Client
}

func toRefs(items []client.RefItem) []authoring.Ref {
	refs := make([]authoring.Ref, len(items))
	for i, it := range items {
		refs[i] = authoring.Ref{ID: it.ID, Name: it.Name, Code: it.Code}
	}
	return refs
}

func (r refAdapter) ListSubjects(ctx context.Context) ([]authoring.Ref, error) {
	items, err := r.api.ListSubjects(ctx)
	return toRefs(items), err
}

func (r refAdapter) ListGradeLevels(ctx context.Context) ([]authoring.Ref, error) {
	items, err := r.api.ListGradeLevels(ctx)
	return toRefs(items), err
}

func (r refAdapter) ListExamTypes(ctx context.Context) ([]authoring.Ref, error) {
	items, err := r.api.ListExamTypes(ctx)
	return toRefs(items), err
}

// terminalNotifier renders toasts as stdout lines.
type terminalNotifier struct{}

func (terminalNotifier) Notify(t authoring.Toast) {
	prefix := "✔"
	if t.Type == authoring.ToastError {
		prefix = "✖"
	}
	fmt.Printf("\n%s %s: %s\n", prefix, t.Title, t.Body)
}

// exitNavigator marks the session finished in place of a screen dismissal.
type exitNavigator struct {
	done bool
}

func (n *exitNavigator) NavigateBack() {
	n.done = true
}
