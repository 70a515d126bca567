package goal

import "strings"

// ConditionKind é a forma normalizada do rótulo de condição de vitória.
// O rótulo gravado é texto livre escolhido no questionário; a correspondência
// por substring, sem diferenciar maiúsculas, reproduz o comportamento do app
// para metas já existentes. Rótulo desconhecido nunca produz vencedor.
type ConditionKind int

const (
	ConditionUnknown ConditionKind = iota
	ConditionReachTarget
	ConditionFinishList
	ConditionReachStreak
	ConditionMostByEndDate
	ConditionLongestStreakByEndDate
)

// Rótulos oferecidos pelo questionário. Metas antigas podem carregar
// variações de texto; ParseWinningCondition aceita qualquer uma delas.
const (
	LabelFirstToReach       = "First to reach"
	LabelFirstToFinish      = "First to finish the list"
	LabelFirstToComplete    = "First to complete"
	LabelFirstToStreak      = "First to reach a streak of"
	LabelMostByEndDate      = "Whoever does the most by the end date"
	LabelMostDaysByEndDate  = "Whoever completes the most days by the end date"
	LabelMostAmountByEnd    = "Whoever completes the most amount by the end date"
	LabelLongestStreakByEnd = "Whoever has the longest streak by the end date"
)

func ParseWinningCondition(condition string) ConditionKind {
	text := strings.ToLower(condition)
	if text == "" {
		return ConditionUnknown
	}

	hasEndDate := strings.Contains(text, "end date") || strings.Contains(text, "by the end")

	switch {
	case strings.Contains(text, "streak"):
		if hasEndDate {
			return ConditionLongestStreakByEndDate
		}
		return ConditionReachStreak
	case strings.Contains(text, "finish"):
		return ConditionFinishList
	case hasEndDate || strings.Contains(text, "most"):
		return ConditionMostByEndDate
	case strings.Contains(text, "reach") || strings.Contains(text, "complete"):
		return ConditionReachTarget
	}

	return ConditionUnknown
}

// RequiresTargetNumber indica se o questionário ainda precisa perguntar o alvo.
func (k ConditionKind) RequiresTargetNumber() bool {
	switch k {
	case ConditionReachTarget, ConditionReachStreak:
		return true
	}
	return false
}

// RequiresEndDate indica se o questionário ainda precisa perguntar a data final.
func (k ConditionKind) RequiresEndDate() bool {
	switch k {
	case ConditionMostByEndDate, ConditionLongestStreakByEndDate:
		return true
	}
	return false
}
