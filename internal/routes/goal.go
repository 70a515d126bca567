package routes

import (
	"net/http"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/contracts"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// CreateGoal cria uma meta diretamente, sem passar pelo questionário.
func (h *Handler) CreateGoal(c *gin.Context) {
	var body contracts.GoalCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req, err := buildCreateRequest(&body, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.GoalService.CreateGoal(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.GoalResponse{Goal: created})
}

func buildCreateRequest(body *contracts.GoalCreateRequest, creatorID ulid.ULID) (*goal.CreateGoalRequest, error) {
	buddyID, err := pkg.ParseULIDPtr(body.BuddyId)
	if err != nil {
		return nil, appErrors.NewValidationError("buddy_id", "formato inválido")
	}

	req := &goal.CreateGoalRequest{
		Name:               body.Name,
		GoalType:           goal.GoalType(body.GoalType),
		Mode:               goal.Mode(body.Mode),
		CreatorId:          creatorID,
		BuddyId:            buddyID,
		KeepStreak:         body.KeepStreak,
		TrackDailyQuantity: body.TrackDailyQuantity,
		UnitTracked:        body.UnitTracked,
		CreatedListItems:   body.CreatedListItems,
		WinningCondition:   body.WinningCondition,
		WinningNumber:      body.WinningNumber,
		WinnersPrize:       body.WinnersPrize,
	}

	switch req.GoalType {
	case goal.TypeDailyTracker:
		if body.TrackDailyQuantity {
			req.TrackingMethod = goal.TrackingNumeric
		} else {
			req.TrackingMethod = goal.TrackingDailyCompletion
		}
	default:
		req.TrackingMethod = goal.TrackingList
	}

	if body.EndDate != nil && *body.EndDate != "" {
		endDate, err := pkg.ParseDay(*body.EndDate)
		if err != nil {
			return nil, appErrors.NewValidationError("end_date", "use o formato YYYY-MM-DD")
		}
		req.EndDate = &endDate
	}

	return req, nil
}

func (h *Handler) ListGoals(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filters := &goal.GoalFilters{}
	if status := c.Query("status"); status != "" {
		s := goal.GoalStatus(status)
		filters.Status = &s
	}
	if mode := c.Query("challenge_or_friendly"); mode != "" {
		m := goal.Mode(mode)
		filters.Mode = &m
	}

	pagination := h.parsePagination(c)

	goals, total, err := h.GoalService.GetGoalsByUserID(c.Request.Context(), userID, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := pkg.NewPaginatedResponse(goals, pagination.Page, pagination.Limit, total)
	c.JSON(http.StatusOK, response)
}

// GetGoal devolve a meta com o progresso dos dois participantes, inclusive
// linhas vazias sintetizadas para quem nunca registrou nada.
func (h *Handler) GetGoal(c *gin.Context) {
	goalID, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	g, rows, err := h.GoalService.GetProgressRows(c.Request.Context(), goalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.GoalDetailResponse{Goal: g, Progress: rows})
}

// GetGoalProgress devolve só as linhas de progresso, para o refresh da tela
// de detalhe sem recarregar a meta.
func (h *Handler) GetGoalProgress(c *gin.Context) {
	goalID, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	_, rows, err := h.GoalService.GetProgressRows(c.Request.Context(), goalID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ProgressListResponse{Progress: rows})
}

func (h *Handler) DeleteGoal(c *gin.Context) {
	goalID, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.GoalService.DeleteGoal(c.Request.Context(), goalID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Meta removida com sucesso"})
}

// SubmitProgress aplica o delta do participante; campo presente substitui o
// valor gravado. Em desafios, a condição de vitória é reavaliada na sequência.
func (h *Handler) SubmitProgress(c *gin.Context) {
	var body contracts.ProgressSubmitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	goalID, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	delta := goal.ProgressDelta{
		NumericValue:  body.NumericValue,
		CompletedDays: body.CompletedDays,
		ListItems:     body.ListItems,
	}

	row, err := h.GoalService.SubmitProgress(c.Request.Context(), goalID, userID, delta)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ProgressResponse{Progress: row})
}

// MarkWinnerSeen registra que o participante viu o resultado do desafio.
// Quando os dois lados já viram, a meta passa a finished.
func (h *Handler) MarkWinnerSeen(c *gin.Context) {
	goalID, err := h.parseIDParam(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.GoalService.MarkWinnerMessageSeen(c.Request.Context(), goalID, userID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Resultado marcado como visto"})
}
