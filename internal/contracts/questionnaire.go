package contracts

import (
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/questionnaire"
)

// O estado do fluxo (nó atual, histórico e folha de respostas) vive no
// cliente; cada chamada o envia por inteiro e recebe a versão atualizada.
type QuestionnaireAdvanceRequest struct {
	CurrentQuestion questionnaire.QuestionID   `json:"current_question" binding:"required"`
	History         []questionnaire.QuestionID `json:"history"`
	Sheet           *questionnaire.AnswerSheet `json:"sheet" binding:"required"`
}

type QuestionnaireBackRequest struct {
	CurrentQuestion questionnaire.QuestionID   `json:"current_question" binding:"required"`
	History         []questionnaire.QuestionID `json:"history"`
	Sheet           *questionnaire.AnswerSheet `json:"sheet"`
}

type QuestionnaireOptionsRequest struct {
	Question questionnaire.QuestionID   `json:"question" binding:"required"`
	Sheet    *questionnaire.AnswerSheet `json:"sheet"`
}

type QuestionnaireStateResponse struct {
	CurrentQuestion questionnaire.QuestionID   `json:"current_question"`
	Question        *questionnaire.Question    `json:"question,omitempty"`
	Options         []string                   `json:"options,omitempty"`
	History         []questionnaire.QuestionID `json:"history"`
	Done            bool                       `json:"done"`
}

type QuestionnaireOptionsResponse struct {
	Question questionnaire.QuestionID `json:"question"`
	Options  []string                 `json:"options"`
}

// QuestionnaireFinishRequest fecha o fluxo e cria a meta a partir da folha.
type QuestionnaireFinishRequest struct {
	Sheet *questionnaire.AnswerSheet `json:"sheet" binding:"required"`
}
