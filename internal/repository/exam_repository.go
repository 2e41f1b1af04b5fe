package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onthi-app/onthi-backend/internal/model"
)

// ExamRepository handles exam + question data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

const examColumns = `e.id, e.title, e.description, e.subject_id, e.grade_level_id,
	e.exam_type_id, e.duration_minutes, e.author_id, e.question_count,
	e.is_deleted, e.created_at, e.updated_at`

// scanExam maps a row to an Exam. A missing row yields (nil, nil).
func scanExam(row pgx.Row) (*model.Exam, error) {
	e := &model.Exam{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.SubjectID, &e.GradeLevelID,
		&e.ExamTypeID, &e.Duration, &e.AuthorID, &e.QuestionCount,
		&e.IsDeleted, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List retrieves exams matching cond with pagination, newest first.
func (r *ExamRepository) List(ctx context.Context, cond model.ExamCond, limit, offset int) ([]model.Exam, int, error) {
	where := ``
	var args []interface{}
	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		if where == "" {
			where = ` WHERE `
		} else {
			where += ` AND `
		}
		where += fmt.Sprintf(clause, len(args))
	}

	if cond.SubjectID != nil {
		add(`e.subject_id = $%d`, *cond.SubjectID)
	}
	if len(cond.GradeLevelID) > 0 {
		add(`e.grade_level_id = ANY($%d)`, []uuid.UUID(cond.GradeLevelID))
	}
	if len(cond.ExamTypeID) > 0 {
		add(`e.exam_type_id = ANY($%d)`, []uuid.UUID(cond.ExamTypeID))
	}
	if cond.Title != nil {
		if cond.Title.Exact != "" {
			add(`e.title = $%d`, cond.Title.Exact)
		} else if cond.Title.CaseInsensitive {
			add(`e.title ILIKE $%d`, "%"+cond.Title.Pattern+"%")
		} else {
			add(`e.title LIKE $%d`, "%"+cond.Title.Pattern+"%")
		}
	}
	if cond.IsDeleted != nil {
		add(`e.is_deleted = $%d`, *cond.IsDeleted)
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exams e`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM exams e%s ORDER BY e.created_at DESC LIMIT $%d OFFSET $%d`,
		examColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.SubjectID, &e.GradeLevelID,
			&e.ExamTypeID, &e.Duration, &e.AuthorID, &e.QuestionCount,
			&e.IsDeleted, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		exams = append(exams, e)
	}
	return exams, total, rows.Err()
}

// GetByID retrieves one exam without questions.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	return scanExam(r.pool.QueryRow(ctx,
		`SELECT `+examColumns+` FROM exams e WHERE e.id = $1`, id))
}

// TitleExists reports whether a non-deleted exam with this title already
// exists for the subject.
func (r *ExamRepository) TitleExists(ctx context.Context, subjectID uuid.UUID, title string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM exams
		  WHERE subject_id = $1 AND lower(title) = lower($2) AND is_deleted = FALSE)`,
		subjectID, title).Scan(&exists)
	return exists, err
}

// CreateWithQuestions inserts an exam and its questions in one transaction.
func (r *ExamRepository) CreateWithQuestions(ctx context.Context, e *model.Exam, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO exams (title, description, subject_id, grade_level_id, exam_type_id,
		                    duration_minutes, author_id, question_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		e.Title, e.Description, e.SubjectID, e.GradeLevelID, e.ExamTypeID,
		e.Duration, e.AuthorID, len(questions),
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert exam: %w", err)
	}
	e.QuestionCount = len(questions)

	for i := range questions {
		q := &questions[i]
		q.ExamID = e.ID
		q.OrderNum = i
		err = tx.QueryRow(ctx,
			`INSERT INTO questions (exam_id, content, options, correct_answers,
			                        explanation, difficulty, order_num)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			q.ExamID, q.Content, q.Options, q.CorrectAnswers,
			q.Explanation, q.Difficulty, q.OrderNum,
		).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}

// ListQuestions retrieves all questions for an exam, ordered.
func (r *ExamRepository) ListQuestions(ctx context.Context, examID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, content, options, correct_answers, explanation, difficulty, order_num
		 FROM questions WHERE exam_id = $1
		 ORDER BY order_num`, examID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.ExamID, &q.Content, &q.Options, &q.CorrectAnswers,
			&q.Explanation, &q.Difficulty, &q.OrderNum); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// SoftDelete marks an exam deleted. Returns false when the exam does not
// exist or is already deleted.
func (r *ExamRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE exams SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
