package routes

import (
	"net/http"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/contracts"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"

	"github.com/gin-gonic/gin"
)

type registerResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// RegisterUser cria o perfil e devolve o token usado pelo app. A autenticação
// de verdade (senha, OAuth) fica no provedor de identidade; aqui só existe o
// perfil que as metas e notificações referenciam.
func (h *Handler) RegisterUser(c *gin.Context) {
	var body contracts.UserCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	u := &user.User{
		Name:  body.Name,
		Email: body.Email,
	}
	if err := h.UserService.Create(c.Request.Context(), u); err != nil {
		h.respondError(c, err)
		return
	}

	token, err := h.JwtService.GenerateToken(u.Id)
	if err != nil {
		h.respondError(c, appErrors.ErrInternalServer.WithError(err))
		return
	}

	c.JSON(http.StatusCreated, registerResponse{User: u, Token: token})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	u, err := h.UserService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.UserResponse{User: u})
}
