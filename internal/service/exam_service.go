package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/onthi-app/onthi-backend/internal/model"
	"github.com/onthi-app/onthi-backend/internal/repository"
)

// Domain Errors
var (
	ErrExamNotFound          = errors.New("exam not found")
	ErrDuplicateTitle        = errors.New("exam title already exists in this subject")
	ErrNoCorrectAnswer       = errors.New("question has no correct answer")
	ErrAnswerIndexOutOfRange = errors.New("correct answer index out of range")
	ErrUnknownReference      = errors.New("unknown subject, grade level, or exam type")
	ErrNotExamAuthor         = errors.New("not the author of this exam")
)

// ExamService handles exam catalog business logic.
type ExamService struct {
	examRepo    *repository.ExamRepository
	refDataRepo *repository.RefDataRepository
	log         zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(examRepo *repository.ExamRepository, refDataRepo *repository.RefDataRepository, log zerolog.Logger) *ExamService {
	return &ExamService{
		examRepo:    examRepo,
		refDataRepo: refDataRepo,
		log:         log.With().Str("component", "exam_service").Logger(),
	}
}

// List retrieves exams filtered by cond with pagination.
func (s *ExamService) List(ctx context.Context, cond model.ExamCond, page, limit int) ([]model.Exam, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	exams, total, err := s.examRepo.List(ctx, cond, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}
	return exams, total, nil
}

// GetByID retrieves an exam with its questions.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam == nil || exam.IsDeleted {
		return nil, ErrExamNotFound
	}

	questions, err := s.examRepo.ListQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	exam.Questions = questions
	return exam, nil
}

// Create validates and persists an exam with its questions in one
// transaction. Request-shape rules (required fields, at least one question,
// at least two options each) are enforced by binding; this layer checks the
// rules that need the database or cross-field reasoning.
func (s *ExamService) Create(ctx context.Context, authorID uuid.UUID, req model.CreateExamRequest) (*model.Exam, error) {
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	for i, q := range req.Questions {
		if len(q.CorrectAnswers) == 0 {
			return nil, fmt.Errorf("question %d: %w", i+1, ErrNoCorrectAnswer)
		}
		for _, idx := range q.CorrectAnswers {
			if idx < 0 || idx >= len(q.Options) {
				return nil, fmt.Errorf("question %d: %w", i+1, ErrAnswerIndexOutOfRange)
			}
		}
	}

	taken, err := s.examRepo.TitleExists(ctx, req.SubjectID, req.Title)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateTitle
	}

	exam := &model.Exam{
		Title:        req.Title,
		Description:  req.Description,
		SubjectID:    req.SubjectID,
		GradeLevelID: req.GradeLevelID,
		ExamTypeID:   req.ExamTypeID,
		Duration:     req.Duration,
		AuthorID:     authorID,
	}

	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = model.Question{
			Content:        q.Content,
			Options:        q.Options,
			CorrectAnswers: q.CorrectAnswers,
			Explanation:    q.Explanation,
			Difficulty:     q.Difficulty,
		}
	}

	if err := s.examRepo.CreateWithQuestions(ctx, exam, questions); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}

	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Str("author_id", authorID.String()).
		Int("questions", len(questions)).
		Msg("Exam created")
	return exam, nil
}

// SoftDelete marks an exam deleted. Only the author or an admin may delete.
func (s *ExamService) SoftDelete(ctx context.Context, id, requesterID uuid.UUID, isAdmin bool) error {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if exam == nil || exam.IsDeleted {
		return ErrExamNotFound
	}
	if !isAdmin && exam.AuthorID != requesterID {
		return ErrNotExamAuthor
	}

	ok, err := s.examRepo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrExamNotFound
	}

	s.log.Info().Str("exam_id", id.String()).Msg("Exam deleted")
	return nil
}

func (s *ExamService) checkReferences(ctx context.Context, req model.CreateExamRequest) error {
	refs := []struct {
		coll model.RefCollection
		id   uuid.UUID
	}{
		{model.CollectionSubjects, req.SubjectID},
		{model.CollectionGradeLevels, req.GradeLevelID},
		{model.CollectionExamTypes, req.ExamTypeID},
	}
	for _, ref := range refs {
		exists, err := s.refDataRepo.Exists(ctx, ref.coll, ref.id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%s %s: %w", ref.coll, ref.id, ErrUnknownReference)
		}
	}
	return nil
}
