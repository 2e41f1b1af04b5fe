package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/onthi-app/onthi-backend/internal/model"
	"github.com/onthi-app/onthi-backend/internal/response"
	"github.com/onthi-app/onthi-backend/internal/service"
	"github.com/onthi-app/onthi-backend/internal/validator"
)

// RefDataHandler serves the three reference-data collections. Each route
// group binds the handler to one collection via the closure methods below.
type RefDataHandler struct {
	refDataService *service.RefDataService
}

// NewRefDataHandler creates a new RefDataHandler.
func NewRefDataHandler(refDataService *service.RefDataService) *RefDataHandler {
	return &RefDataHandler{refDataService: refDataService}
}

// List godoc
// GET /api/v1/{subjects,grade-levels,exam-types}
// Lists a collection filtered by ?cond with pagination.
func (h *RefDataHandler) List(coll model.RefCollection) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cond model.RefCond
		if err := parseCond(c, &cond); err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidCond)
			return
		}

		page, limit := parsePaging(c)
		items, total, err := h.refDataService.List(c.Request.Context(), coll, cond, page, limit)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		response.SuccessList(c, http.StatusOK, items, total, page, limit)
	}
}

// ListActive godoc
// GET /api/v1/{subjects,grade-levels,exam-types}/active
// The picker payload: every active item, cached in Redis. The authoring
// screen fetches all three concurrently on mount.
func (h *RefDataHandler) ListActive(coll model.RefCollection) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.refDataService.ListActive(c.Request.Context(), coll)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		response.SuccessList(c, http.StatusOK, items, len(items), 1, len(items))
	}
}

// Create godoc
// POST /api/v1/admin/{subjects,grade-levels,exam-types}
func (h *RefDataHandler) Create(coll model.RefCollection) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.CreateRefItemRequest
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}

		item, err := h.refDataService.Create(c.Request.Context(), coll, req)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		response.Success(c, http.StatusCreated, gin.H{"result": item})
	}
}

// Update godoc
// PUT /api/v1/admin/{subjects,grade-levels,exam-types}/:id
func (h *RefDataHandler) Update(coll model.RefCollection) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}

		var req model.UpdateRefItemRequest
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}

		item, err := h.refDataService.Update(c.Request.Context(), coll, id, req)
		if err != nil {
			if errors.Is(err, service.ErrRefItemNotFound) {
				response.Fail(c, http.StatusNotFound, response.ErrNotFound)
				return
			}
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		response.Success(c, http.StatusOK, gin.H{"result": item})
	}
}

// Delete godoc
// DELETE /api/v1/admin/{subjects,grade-levels,exam-types}/:id
func (h *RefDataHandler) Delete(coll model.RefCollection) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}

		if err := h.refDataService.SoftDelete(c.Request.Context(), coll, id); err != nil {
			if errors.Is(err, service.ErrRefItemNotFound) {
				response.Fail(c, http.StatusNotFound, response.ErrNotFound)
				return
			}
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		response.Success(c, http.StatusOK, gin.H{})
	}
}
