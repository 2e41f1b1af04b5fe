package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/onthi-app/onthi-backend/internal/middleware"
	"github.com/onthi-app/onthi-backend/internal/model"
	"github.com/onthi-app/onthi-backend/internal/response"
	"github.com/onthi-app/onthi-backend/internal/service"
	"github.com/onthi-app/onthi-backend/internal/validator"
)

// ExamHandler handles exam catalog endpoints.
type ExamHandler struct {
	examService   *service.ExamService
	exportService *service.ExportService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, exportService *service.ExportService) *ExamHandler {
	return &ExamHandler{examService: examService, exportService: exportService}
}

// List godoc
// GET /api/v1/exams
// Lists exams filtered by ?cond with pagination.
func (h *ExamHandler) List(c *gin.Context) {
	var cond model.ExamCond
	if err := parseCond(c, &cond); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCond)
		return
	}

	page, limit := parsePaging(c)
	exams, total, err := h.examService.List(c.Request.Context(), cond, page, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessList(c, http.StatusOK, exams, total, page, limit)
}

// Get godoc
// GET /api/v1/exams/:id
// Returns an exam with its questions.
func (h *ExamHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": exam})
}

// Create godoc
// POST /api/v1/exams
// Creates an exam with its questions in one transaction.
func (h *ExamHandler) Create(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateTitle):
			response.Fail(c, http.StatusConflict, response.ErrDuplicateTitle)
		case errors.Is(err, service.ErrNoCorrectAnswer):
			response.Fail(c, http.StatusBadRequest, response.ErrNoCorrectAnswer)
		case errors.Is(err, service.ErrAnswerIndexOutOfRange):
			response.Fail(c, http.StatusBadRequest, response.ErrAnswerIndexOutRange)
		case errors.Is(err, service.ErrUnknownReference):
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownReference)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"result": exam})
}

// Delete godoc
// DELETE /api/v1/exams/:id
// Soft-deletes an exam. Author or admin only.
func (h *ExamHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	err = h.examService.SoftDelete(c.Request.Context(), id, claims.UserID, claims.Role == model.RoleAdmin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExamNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrNotExamAuthor):
			response.Fail(c, http.StatusForbidden, response.ErrNotExamAuthor)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ExportPDF godoc
// GET /api/v1/exams/:id/export/pdf
// Streams the exam as a printable PDF paper.
func (h *ExamHandler) ExportPDF(c *gin.Context) {
	h.export(c, "application/pdf", "pdf", h.exportService.ExportPDF)
}

// ExportXLSX godoc
// GET /api/v1/exams/:id/export/xlsx
// Streams the exam as a spreadsheet with the answer key.
func (h *ExamHandler) ExportXLSX(c *gin.Context) {
	h.export(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx",
		h.exportService.ExportXLSX)
}

func (h *ExamHandler) export(c *gin.Context, contentType, ext string,
	render func(ctx context.Context, id uuid.UUID) ([]byte, error)) {

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	out, err := render(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrExportFailed)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="exam-%s.%s"`, id, ext))
	c.Data(http.StatusOK, contentType, out)
}
