package routes

import (
	"net/http"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/contracts"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/questionnaire"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"

	"github.com/gin-gonic/gin"
)

// StartQuestionnaire abre um fluxo novo e devolve a primeira pergunta. O
// estado do fluxo fica com o cliente e volta em cada chamada seguinte.
func (h *Handler) StartQuestionnaire(c *gin.Context) {
	flow := questionnaire.NewFlow()
	c.JSON(http.StatusOK, h.flowState(flow))
}

// AdvanceQuestionnaire avança o fluxo a partir do estado enviado pelo cliente.
func (h *Handler) AdvanceQuestionnaire(c *gin.Context) {
	var body contracts.QuestionnaireAdvanceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	flow := questionnaire.ResumeFlow(body.CurrentQuestion, body.History, body.Sheet)
	if _, err := flow.Advance(); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.flowState(flow))
}

// BackQuestionnaire volta ao nó visitado imediatamente antes, restaurado do
// histórico em vez de recalculado.
func (h *Handler) BackQuestionnaire(c *gin.Context) {
	var body contracts.QuestionnaireBackRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	flow := questionnaire.ResumeFlow(body.CurrentQuestion, body.History, body.Sheet)
	if _, ok := flow.MoveToPrevious(); !ok {
		h.respondError(c, appErrors.NewValidationError("history", "não há pergunta anterior"))
		return
	}

	c.JSON(http.StatusOK, h.flowState(flow))
}

// QuestionnaireOptions devolve as opções da pergunta, resolvidas contra as
// respostas já dadas quando a pergunta é dinâmica.
func (h *Handler) QuestionnaireOptions(c *gin.Context) {
	var body contracts.QuestionnaireOptionsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	if _, ok := questionnaire.Lookup(body.Question); !ok {
		h.respondError(c, appErrors.NewValidationError("question", "pergunta desconhecida"))
		return
	}

	c.JSON(http.StatusOK, contracts.QuestionnaireOptionsResponse{
		Question: body.Question,
		Options:  questionnaire.Options(body.Question, body.Sheet),
	})
}

// FinishQuestionnaire fecha o fluxo: converte a folha de respostas em uma
// meta e a persiste.
func (h *Handler) FinishQuestionnaire(c *gin.Context) {
	var body contracts.QuestionnaireFinishRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	req, err := body.Sheet.BuildCreateRequest(userID)
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

func (h *Handler) flowState(flow *questionnaire.Flow) contracts.QuestionnaireStateResponse {
	state := contracts.QuestionnaireStateResponse{
		CurrentQuestion: flow.Current(),
		History:         flow.History(),
		Done:            flow.Done(),
	}

	if q, ok := questionnaire.Lookup(flow.Current()); ok {
		state.Question = &q
		state.Options = questionnaire.Options(flow.Current(), flow.Sheet)
	}

	return state
}
