package questionnaire

import (
	"fmt"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
)

// Options devolve as opções de uma pergunta. Para a condição de vitória elas
// dependem do tipo da meta e das respostas de streak/quantidade.
func Options(id QuestionID, sheet *AnswerSheet) []string {
	q, ok := Lookup(id)
	if !ok {
		return nil
	}
	if !q.DynamicOptions {
		return q.StaticOptions
	}

	switch id {
	case QuestionWinningCondition:
		return winningConditionOptions(sheet)
	}
	return nil
}

func winningConditionOptions(sheet *AnswerSheet) []string {
	if sheet == nil {
		return nil
	}

	var options []string

	switch sheet.GoalType {
	case goal.TypeListTracker:
		unit := sheet.TaskTracked
		if unit == "" {
			unit = "items"
		}
		options = append(options,
			fmt.Sprintf("%s %s", goal.LabelFirstToReach, unit),
			goal.LabelMostByEndDate,
		)

	case goal.TypeListCreatedByUser:
		options = append(options,
			goal.LabelFirstToFinish,
			goal.LabelMostByEndDate,
		)

	case goal.TypeDailyTracker:
		if sheet.boolAnswer(sheet.TrackDailyQuantity) {
			unit := sheet.UnitTracked
			if unit == "" {
				unit = "amount"
			}
			options = append(options,
				fmt.Sprintf("%s %s", goal.LabelFirstToComplete, unit),
				goal.LabelMostAmountByEnd,
			)
		} else {
			options = append(options,
				fmt.Sprintf("%s days", goal.LabelFirstToReach),
				goal.LabelMostDaysByEndDate,
			)
		}
		// Opções de streak só aparecem se o usuário quis manter streak.
		if sheet.boolAnswer(sheet.KeepStreak) {
			options = append(options,
				goal.LabelFirstToStreak,
				goal.LabelLongestStreakByEnd,
			)
		}
	}

	return options
}
