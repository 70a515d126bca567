package questionnaire

import (
	"strings"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"

	"github.com/oklog/ulid/v2"
)

// AnswerSheet acumula as respostas do fluxo. É um registro esparso: cada tipo
// de meta usa só um subconjunto dos campos, e a validação de presença
// acontece uma única vez, na construção da meta.
type AnswerSheet struct {
	GoalName           string        `json:"goal_name,omitempty"`
	GoalType           goal.GoalType `json:"goal_type,omitempty"`
	WithBuddy          *bool         `json:"with_buddy,omitempty"`
	BuddyId            *ulid.ULID    `json:"buddy_id,omitempty"`
	TaskTracked        string        `json:"task_tracked,omitempty"`
	ListItems          []string      `json:"list_items,omitempty"`
	KeepStreak         *bool         `json:"keep_streak,omitempty"`
	TrackDailyQuantity *bool         `json:"track_daily_quantity,omitempty"`
	UnitTracked        string        `json:"unit_tracked,omitempty"`
	Mode               goal.Mode     `json:"challenge_or_friendly,omitempty"`
	WinningCondition   string        `json:"winning_condition,omitempty"`
	WinningNumber      *float64      `json:"winning_number,omitempty"`
	EndDate            *time.Time    `json:"end_date,omitempty"`
	WinnersPrize       string        `json:"winners_prize,omitempty"`
}

func (s *AnswerSheet) boolAnswer(v *bool) bool {
	return v != nil && *v
}

// TrackingMethod deriva o método de acompanhamento do tipo da meta.
func (s *AnswerSheet) TrackingMethod() goal.TrackingMethod {
	switch s.GoalType {
	case goal.TypeDailyTracker:
		if s.boolAnswer(s.TrackDailyQuantity) {
			return goal.TrackingNumeric
		}
		return goal.TrackingDailyCompletion
	default:
		return goal.TrackingList
	}
}

// BuildCreateRequest converte a folha preenchida no pedido de criação da
// meta. A validação por tipo acontece em goal.Validate.
func (s *AnswerSheet) BuildCreateRequest(creatorID ulid.ULID) (*goal.CreateGoalRequest, error) {
	if strings.TrimSpace(s.GoalName) == "" {
		return nil, appErrors.NewValidationError("goal_name", "é obrigatório")
	}
	if s.Mode == "" {
		return nil, appErrors.NewValidationError("challenge_or_friendly", "o fluxo não foi concluído")
	}
	if s.boolAnswer(s.WithBuddy) && s.BuddyId == nil {
		return nil, appErrors.NewValidationError("buddy_id", "é obrigatório ao escolher buddy")
	}

	var buddyID *ulid.ULID
	if s.boolAnswer(s.WithBuddy) {
		buddyID = s.BuddyId
	}

	req := &goal.CreateGoalRequest{
		Name:               s.GoalName,
		TrackingMethod:     s.TrackingMethod(),
		GoalType:           s.GoalType,
		Mode:               s.Mode,
		CreatorId:          creatorID,
		BuddyId:            buddyID,
		KeepStreak:         s.boolAnswer(s.KeepStreak),
		TrackDailyQuantity: s.boolAnswer(s.TrackDailyQuantity),
		UnitTracked:        s.UnitTracked,
		CreatedListItems:   s.ListItems,
		WinningCondition:   s.WinningCondition,
		WinningNumber:      s.WinningNumber,
		EndDate:            s.EndDate,
		WinnersPrize:       s.WinnersPrize,
	}

	if err := goal.Validate(req); err != nil {
		return nil, err
	}

	return req, nil
}
