package questionnaire

import (
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
)

// A árvore de decisão é uma tabela explícita: nó -> função que, olhando a
// folha de respostas, devolve o próximo nó. Determinística e síncrona.
var transitions = map[QuestionID]func(*AnswerSheet) QuestionID{
	QuestionGoalName: func(*AnswerSheet) QuestionID {
		return QuestionGoalType
	},
	QuestionGoalType: func(*AnswerSheet) QuestionID {
		return QuestionBuddyOrSolo
	},
	QuestionBuddyOrSolo: func(s *AnswerSheet) QuestionID {
		switch s.GoalType {
		case goal.TypeListTracker:
			return QuestionTaskTracked
		case goal.TypeDailyTracker:
			return QuestionKeepStreak
		case goal.TypeListCreatedByUser:
			return QuestionInsertListItems
		}
		return QuestionEnd
	},
	QuestionTaskTracked: func(*AnswerSheet) QuestionID {
		return QuestionChallengeOrFriendly
	},
	QuestionInsertListItems: func(*AnswerSheet) QuestionID {
		return QuestionChallengeOrFriendly
	},
	QuestionKeepStreak: func(*AnswerSheet) QuestionID {
		return QuestionTrackDailyQuantity
	},
	QuestionTrackDailyQuantity: func(s *AnswerSheet) QuestionID {
		if s.boolAnswer(s.TrackDailyQuantity) {
			return QuestionUnitTracked
		}
		return QuestionChallengeOrFriendly
	},
	QuestionUnitTracked: func(*AnswerSheet) QuestionID {
		return QuestionChallengeOrFriendly
	},
	QuestionChallengeOrFriendly: func(s *AnswerSheet) QuestionID {
		if s.Mode == goal.ModeChallenge {
			return QuestionWinningCondition
		}
		return QuestionEnd
	},
	QuestionWinningCondition: func(s *AnswerSheet) QuestionID {
		kind := goal.ParseWinningCondition(s.WinningCondition)
		if kind.RequiresTargetNumber() {
			return QuestionWinningNumber
		}
		if kind.RequiresEndDate() {
			return QuestionEndDate
		}
		return QuestionWinnersPrize
	},
	QuestionWinningNumber: func(*AnswerSheet) QuestionID {
		return QuestionWinnersPrize
	},
	QuestionEndDate: func(*AnswerSheet) QuestionID {
		return QuestionWinnersPrize
	},
	QuestionWinnersPrize: func(*AnswerSheet) QuestionID {
		return QuestionEnd
	},
}

// Next calcula o próximo nó a partir do nó atual e das respostas já dadas.
func Next(current QuestionID, sheet *AnswerSheet) (QuestionID, error) {
	transition, ok := transitions[current]
	if !ok {
		return QuestionEnd, appErrors.NewValidationError("current_question", "pergunta desconhecida")
	}
	return transition(sheet), nil
}

// Flow é o motor com estado usado durante uma criação de meta: nó atual,
// pilha de histórico e a folha de respostas. A volta restaura exatamente o
// nó visitado antes, em vez de recomputar a árvore.
type Flow struct {
	current QuestionID
	history []QuestionID
	Sheet   *AnswerSheet
}

func NewFlow() *Flow {
	return &Flow{
		current: QuestionGoalName,
		Sheet:   &AnswerSheet{},
	}
}

// ResumeFlow reconstrói o motor a partir do estado mantido pelo cliente.
func ResumeFlow(current QuestionID, history []QuestionID, sheet *AnswerSheet) *Flow {
	if sheet == nil {
		sheet = &AnswerSheet{}
	}
	return &Flow{
		current: current,
		history: append([]QuestionID(nil), history...),
		Sheet:   sheet,
	}
}

func (f *Flow) Current() QuestionID {
	return f.current
}

func (f *Flow) History() []QuestionID {
	return append([]QuestionID(nil), f.history...)
}

func (f *Flow) Done() bool {
	return f.current == QuestionEnd
}

// Advance empurra o nó atual para o histórico e move para o próximo.
func (f *Flow) Advance() (QuestionID, error) {
	if f.Done() {
		return QuestionEnd, nil
	}
	next, err := Next(f.current, f.Sheet)
	if err != nil {
		return f.current, err
	}
	f.history = append(f.history, f.current)
	f.current = next
	return next, nil
}

func (f *Flow) CanGoBack() bool {
	return len(f.history) > 0
}

// MoveToPrevious desempilha o último nó visitado.
func (f *Flow) MoveToPrevious() (QuestionID, bool) {
	if !f.CanGoBack() {
		return f.current, false
	}
	last := f.history[len(f.history)-1]
	f.history = f.history[:len(f.history)-1]
	f.current = last
	return last, true
}
