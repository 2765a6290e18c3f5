package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	list, err := h.NotificationRepo.ListByUser(c.Request.Context(), userID, 100)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Notifications fetched successfully", list)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid notification id")
		return
	}

	marked, err := h.NotificationRepo.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !marked {
		respondError(c, http.StatusNotFound, "Notification not found")
		return
	}

	respondOK(c, http.StatusOK, "Notification marked as read", nil)
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.NotificationRepo.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "All notifications marked as read", nil)
}
