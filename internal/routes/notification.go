package routes

import (
	"net/http"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/contracts"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	unreadOnly := c.Query("unread") == "true"
	pagination := h.parsePagination(c)

	notifications, total, err := h.NotificationService.GetByUserID(c.Request.Context(), userID, unreadOnly, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(notifications, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	notificationID, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.NotificationService.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Notificação marcada como lida"})
}
