package goal

import "github.com/oklog/ulid/v2"

// Máquina de estados do ciclo de vida:
//
//	active -> pending_finish -> finished
//
// Nenhuma transição anda para trás e reaplicar uma transição já feita é
// sempre um no-op, porque avaliação e varredura reexecutam a qualquer momento.

// CanMarkPendingFinish diz se a meta aceita a primeira transição.
// Só metas challenge com buddy saem de active por este caminho; metas
// friendly ou solo nunca saem de active.
func CanMarkPendingFinish(g *Goal) bool {
	if g == nil || !g.IsChallenge() || !g.HasBuddy() {
		return false
	}
	return g.Status.Normalized() == StatusActive
}

// PendingFinishFields monta a atualização parcial da primeira transição:
// status, vencedor e perdedor são gravados juntos.
func PendingFinishFields(g *Goal, winnerID ulid.ULID) map[string]interface{} {
	loserID := g.CreatorId
	if winnerID == g.CreatorId {
		loserID = *g.BuddyId
	}
	return map[string]interface{}{
		"goal_status":    string(StatusPendingFinish),
		"winner_user_id": winnerID.String(),
		"loser_user_id":  loserID.String(),
	}
}

// CanFinish diz se a meta aceita a segunda transição, disparada quando os
// dois participantes já viram a mensagem de vencedor.
func CanFinish(g *Goal) bool {
	if g == nil {
		return false
	}
	return g.Status.Normalized() == StatusPendingFinish
}

// AllSeenWinnerMessage verifica as flags dos dois participantes. Linha de
// progresso ausente conta como flag não marcada.
func AllSeenWinnerMessage(g *Goal, rows []*GoalProgress) bool {
	if g.BuddyId == nil {
		return false
	}

	seen := make(map[ulid.ULID]bool, len(rows))
	for _, row := range rows {
		if row != nil && row.HasSeenWinnerMessage {
			seen[row.UserId] = true
		}
	}

	return seen[g.CreatorId] && seen[*g.BuddyId]
}
