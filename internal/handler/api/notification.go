package api

import (
	"net/http"

	resdto "campus-parking/internal/handler/dto/response"
	"campus-parking/internal/handler/middleware"
	"campus-parking/internal/usecase/commands"
	"campus-parking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	notificationCommands commands.NotificationCommands
	notificationQueries  queries.NotificationQueries
}

func NewNotificationHandler(
	notificationCommands commands.NotificationCommands,
	notificationQueries queries.NotificationQueries,
) *NotificationHandler {
	return &NotificationHandler{
		notificationCommands: notificationCommands,
		notificationQueries:  notificationQueries,
	}
}

// @Summary List notifications
// @Description List the caller's notifications, newest first
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param unread query bool false "Only unread"
// @Success 200 {array} queries.NotificationView
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	onlyUnread := c.Query("unread") == "true"
	notifications, err := h.notificationQueries.ListNotifications(c.Request.Context(), userID, onlyUnread)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// @Summary Unread count
// @Description Number of unread notifications for the caller
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.CountResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	count, err := h.notificationQueries.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CountResponse{Count: count})
}

// @Summary Mark notification read
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, err, "Invalid notification ID")
		return
	}

	if err := h.notificationCommands.MarkRead(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Mark all notifications read
// @Tags notifications
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.notificationCommands.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
