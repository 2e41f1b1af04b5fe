package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/onthi-app/onthi-backend/internal/middleware"
	"github.com/onthi-app/onthi-backend/internal/model"
	"github.com/onthi-app/onthi-backend/internal/response"
	"github.com/onthi-app/onthi-backend/internal/service"
	"github.com/onthi-app/onthi-backend/internal/validator"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List godoc
// GET /api/v1/notifications
// Lists the authenticated user's notifications, filtered by ?cond. The user
// filter in cond is forced to the caller; one user cannot read another's feed.
func (h *NotificationHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var cond model.NotificationCond
	if err := parseCond(c, &cond); err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidCond)
		return
	}
	cond.UserID = &claims.UserID

	page, limit := parsePaging(c)
	items, total, err := h.notificationService.List(c.Request.Context(), cond, page, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessList(c, http.StatusOK, items, total, page, limit)
}

// UnreadCount godoc
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	n, err := h.notificationService.CountUnread(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"count": n})
}

// MarkRead godoc
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
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

	if err := h.notificationService.MarkRead(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// MarkAllRead godoc
// PUT /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	n, err := h.notificationService.MarkAllRead(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": n})
}

// Publish godoc
// POST /api/v1/admin/notifications
// Enqueues a notification; the worker persists it and pushes it into the
// recipient's WebSocket room.
func (h *NotificationHandler) Publish(c *gin.Context) {
	var req model.PublishNotificationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.notificationService.Publish(c.Request.Context(), req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{})
}
