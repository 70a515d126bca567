package routes

import (
	"net/http"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/contracts"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SendFriendRequest(c *gin.Context) {
	var body contracts.FriendRequestCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	addresseeID, err := pkg.ParseULID(body.AddresseeId)
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("addressee_id", "formato inválido"))
		return
	}

	friendship, err := h.FriendService.SendRequest(c.Request.Context(), userID, addresseeID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.FriendshipResponse{Friendship: friendship})
}

func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	friendshipID, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.FriendService.AcceptRequest(c.Request.Context(), friendshipID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Pedido de amizade aceito"})
}

func (h *Handler) ListFriends(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	friendships, err := h.FriendService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.FriendshipListResponse{
		Friendships: friendships,
		Total:       len(friendships),
	})
}

func (h *Handler) ListPendingFriendRequests(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	friendships, err := h.FriendService.ListPending(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.FriendshipListResponse{
		Friendships: friendships,
		Total:       len(friendships),
	})
}
