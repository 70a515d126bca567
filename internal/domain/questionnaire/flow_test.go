package questionnaire_test

import (
	"testing"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/questionnaire"
)

func boolPtr(v bool) *bool { return &v }

func advance(t *testing.T, flow *questionnaire.Flow) questionnaire.QuestionID {
	t.Helper()
	next, err := flow.Advance()
	if err != nil {
		t.Fatalf("unexpected error advancing from %s: %v", flow.Current(), err)
	}
	return next
}

func TestFlowDailyTrackerWithoutQuantitySkipsUnit(t *testing.T) {
	t.Parallel()

	flow := questionnaire.NewFlow()
	if flow.Current() != questionnaire.QuestionGoalName {
		t.Fatalf("flow must start at goal_name, got %s", flow.Current())
	}

	flow.Sheet.GoalName = "Meditate"
	advance(t, flow)

	flow.Sheet.GoalType = goal.TypeDailyTracker
	advance(t, flow)

	flow.Sheet.WithBuddy = boolPtr(false)
	if next := advance(t, flow); next != questionnaire.QuestionKeepStreak {
		t.Fatalf("daily tracker must go to keep_streak, got %s", next)
	}

	flow.Sheet.KeepStreak = boolPtr(true)
	if next := advance(t, flow); next != questionnaire.QuestionTrackDailyQuantity {
		t.Fatalf("expected track_daily_quantity, got %s", next)
	}

	// Sem quantidade diária, a pergunta de unidade não aparece.
	flow.Sheet.TrackDailyQuantity = boolPtr(false)
	if next := advance(t, flow); next != questionnaire.QuestionChallengeOrFriendly {
		t.Fatalf("expected challenge_or_friendly without unit question, got %s", next)
	}

	flow.Sheet.Mode = goal.ModeFriendly
	if next := advance(t, flow); next != questionnaire.QuestionEnd {
		t.Fatalf("friendly goal must end after mode question, got %s", next)
	}
	if !flow.Done() {
		t.Fatal("flow should be done")
	}
}

func TestFlowDailyQuantityAsksUnit(t *testing.T) {
	t.Parallel()

	sheet := &questionnaire.AnswerSheet{
		GoalType:           goal.TypeDailyTracker,
		KeepStreak:         boolPtr(false),
		TrackDailyQuantity: boolPtr(true),
	}

	next, err := questionnaire.Next(questionnaire.QuestionTrackDailyQuantity, sheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != questionnaire.QuestionUnitTracked {
		t.Fatalf("expected unit_tracked, got %s", next)
	}

	next, err = questionnaire.Next(questionnaire.QuestionUnitTracked, sheet)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != questionnaire.QuestionChallengeOrFriendly {
		t.Fatalf("expected challenge_or_friendly, got %s", next)
	}
}

func TestFlowGoalTypeBranches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goalType goal.GoalType
		want     questionnaire.QuestionID
	}{
		{goal.TypeListTracker, questionnaire.QuestionTaskTracked},
		{goal.TypeDailyTracker, questionnaire.QuestionKeepStreak},
		{goal.TypeListCreatedByUser, questionnaire.QuestionInsertListItems},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.goalType), func(t *testing.T) {
			sheet := &questionnaire.AnswerSheet{GoalType: tt.goalType}
			next, err := questionnaire.Next(questionnaire.QuestionBuddyOrSolo, sheet)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, next)
			}
		})
	}
}

func TestFlowWinningConditionBranches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		condition string
		want      questionnaire.QuestionID
	}{
		{"reach target asks number", "First to reach 5 books", questionnaire.QuestionWinningNumber},
		{"streak asks number", "First to reach a streak of", questionnaire.QuestionWinningNumber},
		{"most by end date asks date", "Whoever does the most by the end date", questionnaire.QuestionEndDate},
		{"longest streak asks date", "Whoever has the longest streak by the end date", questionnaire.QuestionEndDate},
		{"finish list goes straight to prize", "First to finish the list", questionnaire.QuestionWinnersPrize},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sheet := &questionnaire.AnswerSheet{WinningCondition: tt.condition}
			next, err := questionnaire.Next(questionnaire.QuestionWinningCondition, sheet)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if next != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, next)
			}
		})
	}
}

func TestFlowUnknownQuestion(t *testing.T) {
	t.Parallel()

	if _, err := questionnaire.Next("bogus", &questionnaire.AnswerSheet{}); err == nil {
		t.Fatal("expected error for unknown question")
	}
}

func TestFlowBackNavigationRestoresExactNode(t *testing.T) {
	t.Parallel()

	flow := questionnaire.NewFlow()
	flow.Sheet.GoalName = "Meditate"
	advance(t, flow)
	flow.Sheet.GoalType = goal.TypeDailyTracker
	advance(t, flow)
	flow.Sheet.WithBuddy = boolPtr(false)
	advance(t, flow)

	if flow.Current() != questionnaire.QuestionKeepStreak {
		t.Fatalf("expected keep_streak, got %s", flow.Current())
	}

	prev, ok := flow.MoveToPrevious()
	if !ok || prev != questionnaire.QuestionBuddyOrSolo {
		t.Fatalf("expected buddy_or_solo, got %s (ok=%v)", prev, ok)
	}
	prev, ok = flow.MoveToPrevious()
	if !ok || prev != questionnaire.QuestionGoalType {
		t.Fatalf("expected goal_type, got %s (ok=%v)", prev, ok)
	}
	prev, ok = flow.MoveToPrevious()
	if !ok || prev != questionnaire.QuestionGoalName {
		t.Fatalf("expected goal_name, got %s (ok=%v)", prev, ok)
	}

	if _, ok := flow.MoveToPrevious(); ok {
		t.Fatal("there is nothing before the first question")
	}
}

func TestResumeFlowFromClientState(t *testing.T) {
	t.Parallel()

	sheet := &questionnaire.AnswerSheet{
		GoalName: "Meditate",
		GoalType: goal.TypeDailyTracker,
	}
	history := []questionnaire.QuestionID{
		questionnaire.QuestionGoalName,
		questionnaire.QuestionGoalType,
	}

	flow := questionnaire.ResumeFlow(questionnaire.QuestionBuddyOrSolo, history, sheet)
	if flow.Current() != questionnaire.QuestionBuddyOrSolo {
		t.Fatalf("expected buddy_or_solo, got %s", flow.Current())
	}

	prev, ok := flow.MoveToPrevious()
	if !ok || prev != questionnaire.QuestionGoalType {
		t.Fatalf("expected goal_type, got %s (ok=%v)", prev, ok)
	}

	if resumed := questionnaire.ResumeFlow(questionnaire.QuestionGoalName, nil, nil); resumed.Sheet == nil {
		t.Fatal("resume must synthesize an empty sheet")
	}
}
