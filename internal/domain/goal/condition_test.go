package goal_test

import (
	"testing"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"
)

func TestParseWinningCondition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		condition string
		want      goal.ConditionKind
	}{
		{"", goal.ConditionUnknown},
		{"something else entirely", goal.ConditionUnknown},
		{"First to reach 20 books", goal.ConditionReachTarget},
		{"first to complete 50 km", goal.ConditionReachTarget},
		{"FIRST TO REACH 5", goal.ConditionReachTarget},
		{"First to finish the list", goal.ConditionFinishList},
		{"First to reach a streak of", goal.ConditionReachStreak},
		{"first to reach a STREAK of 10", goal.ConditionReachStreak},
		{"Whoever does the most by the end date", goal.ConditionMostByEndDate},
		{"Whoever completes the most days by the end date", goal.ConditionMostByEndDate},
		{"Whoever completes the most amount by the end date", goal.ConditionMostByEndDate},
		{"Whoever has the longest streak by the end date", goal.ConditionLongestStreakByEndDate},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.condition, func(t *testing.T) {
			got := goal.ParseWinningCondition(tt.condition)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConditionKindRequirements(t *testing.T) {
	t.Parallel()

	if !goal.ConditionReachTarget.RequiresTargetNumber() {
		t.Fatal("reach target should require a number")
	}
	if !goal.ConditionReachStreak.RequiresTargetNumber() {
		t.Fatal("reach streak should require a number")
	}
	if goal.ConditionFinishList.RequiresTargetNumber() {
		t.Fatal("finish list derives its own target from the list")
	}
	if !goal.ConditionMostByEndDate.RequiresEndDate() {
		t.Fatal("most by end date should require an end date")
	}
	if !goal.ConditionLongestStreakByEndDate.RequiresEndDate() {
		t.Fatal("longest streak by end date should require an end date")
	}
	if goal.ConditionReachTarget.RequiresEndDate() {
		t.Fatal("reach target should not require an end date")
	}
}
