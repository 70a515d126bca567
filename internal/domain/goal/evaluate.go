package goal

import (
	"strconv"
	"strings"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// CurrentCount deriva a contagem de um participante conforme o tipo da meta.
func CurrentCount(g *Goal, p *GoalProgress) float64 {
	if p == nil {
		return 0
	}

	switch g.GoalType {
	case TypeListTracker, TypeListCreatedByUser:
		return float64(len(p.ListItems))
	case TypeDailyTracker:
		if g.TrackDailyQuantity {
			if len(p.ListItems) == 0 {
				return p.NumericValue
			}
			var total float64
			for _, entry := range p.ListItems {
				value, err := strconv.ParseFloat(strings.TrimSpace(entry.Title), 64)
				if err != nil {
					continue
				}
				total += value
			}
			return total
		}
		return float64(distinctDays(p.CompletedDays))
	}

	return 0
}

func distinctDays(days []string) int {
	seen := make(map[string]bool, len(days))
	for _, raw := range days {
		day, err := pkg.ParseDay(raw)
		if err != nil {
			continue
		}
		seen[pkg.FormatDay(day)] = true
	}
	return len(seen)
}

// EvaluateWinner decide se algum participante já venceu o desafio.
// Devolve nil enquanto não houver vencedor; nil nunca é um erro.
// Linhas de progresso ausentes são tratadas como progresso vazio.
func EvaluateWinner(g *Goal, creatorProgress, buddyProgress *GoalProgress, now time.Time) *ulid.ULID {
	if g == nil || !g.IsChallenge() || g.BuddyId == nil {
		return nil
	}

	if creatorProgress == nil {
		creatorProgress = EmptyProgress(g.Id, g.CreatorId)
	}
	if buddyProgress == nil {
		buddyProgress = EmptyProgress(g.Id, *g.BuddyId)
	}

	switch ParseWinningCondition(g.WinningCondition) {
	case ConditionReachTarget:
		if g.WinningNumber == nil {
			return nil
		}
		return thresholdWinner(g,
			CurrentCount(g, creatorProgress),
			CurrentCount(g, buddyProgress),
			*g.WinningNumber,
		)

	case ConditionFinishList:
		target := float64(len(g.CreatedListItems))
		if target == 0 {
			return nil
		}
		return thresholdWinner(g,
			float64(len(creatorProgress.ListItems)),
			float64(len(buddyProgress.ListItems)),
			target,
		)

	case ConditionReachStreak:
		if g.WinningNumber == nil {
			return nil
		}
		creatorStreak, _ := Streak(creatorProgress.CompletedDays, now)
		buddyStreak, _ := Streak(buddyProgress.CompletedDays, now)
		return thresholdWinner(g, float64(creatorStreak), float64(buddyStreak), *g.WinningNumber)

	case ConditionMostByEndDate:
		if !endDatePassed(g, now) {
			return nil
		}
		return strictlyLargerWinner(g,
			CurrentCount(g, creatorProgress),
			CurrentCount(g, buddyProgress),
		)

	case ConditionLongestStreakByEndDate:
		if !endDatePassed(g, now) {
			return nil
		}
		_, creatorLongest := Streak(creatorProgress.CompletedDays, now)
		_, buddyLongest := Streak(buddyProgress.CompletedDays, now)
		return strictlyLargerWinner(g, float64(creatorLongest), float64(buddyLongest))
	}

	return nil
}

// thresholdWinner aplica a regra "primeiro a alcançar": vence quem atingiu o
// alvo enquanto o outro ainda está abaixo. Se ambos atingiram na mesma
// avaliação, ninguém vence nesta rodada; a próxima reavaliação decide.
func thresholdWinner(g *Goal, creatorCount, buddyCount, target float64) *ulid.ULID {
	creatorReached := creatorCount >= target
	buddyReached := buddyCount >= target

	switch {
	case creatorReached && !buddyReached:
		id := g.CreatorId
		return &id
	case buddyReached && !creatorReached:
		id := *g.BuddyId
		return &id
	}
	return nil
}

// strictlyLargerWinner decide condições "por data final": empate exato nunca
// produz vencedor.
func strictlyLargerWinner(g *Goal, creatorMetric, buddyMetric float64) *ulid.ULID {
	switch {
	case creatorMetric > buddyMetric:
		id := g.CreatorId
		return &id
	case buddyMetric > creatorMetric:
		id := *g.BuddyId
		return &id
	}
	return nil
}

// endDatePassed compara em granularidade de dia: "hoje" igual ou posterior à
// data final conta como expirado.
func endDatePassed(g *Goal, now time.Time) bool {
	if g.EndDate == nil {
		return false
	}
	today := pkg.TruncateToDay(now)
	end := pkg.TruncateToDay(*g.EndDate)
	return !today.Before(end)
}
