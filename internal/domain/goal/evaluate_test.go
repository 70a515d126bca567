package goal_test

import (
	"testing"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/goal"

	"github.com/oklog/ulid/v2"
)

func challengeGoal(creator, buddy ulid.ULID, mutate func(*goal.Goal)) *goal.Goal {
	g := &goal.Goal{
		Id:        ulid.Make(),
		Name:      "Read more books",
		GoalType:  goal.TypeListTracker,
		Mode:      goal.ModeChallenge,
		CreatorId: creator,
		BuddyId:   &buddy,
		Status:    goal.StatusActive,
	}
	if mutate != nil {
		mutate(g)
	}
	return g
}

func progressWithItems(g *goal.Goal, userID ulid.ULID, n int) *goal.GoalProgress {
	p := goal.EmptyProgress(g.Id, userID)
	for i := 0; i < n; i++ {
		p.ListItems = append(p.ListItems, goal.ListEntry{Title: "item", CreatedAt: time.Now()})
	}
	return p
}

func progressWithDays(g *goal.Goal, userID ulid.ULID, days ...string) *goal.GoalProgress {
	p := goal.EmptyProgress(g.Id, userID)
	p.CompletedDays = days
	return p
}

func TestCurrentCount(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()

	t.Run("list types count list items", func(t *testing.T) {
		g := challengeGoal(creator, buddy, nil)
		p := progressWithItems(g, creator, 3)
		if got := goal.CurrentCount(g, p); got != 3 {
			t.Fatalf("expected 3, got %v", got)
		}
	})

	t.Run("daily tracker counts distinct valid days", func(t *testing.T) {
		g := challengeGoal(creator, buddy, func(g *goal.Goal) {
			g.GoalType = goal.TypeDailyTracker
		})
		p := progressWithDays(g, creator, "2025-03-01", "2025-03-01", "2025-03-02", "bogus")
		if got := goal.CurrentCount(g, p); got != 2 {
			t.Fatalf("expected 2, got %v", got)
		}
	})

	t.Run("daily quantity sums numeric entries", func(t *testing.T) {
		g := challengeGoal(creator, buddy, func(g *goal.Goal) {
			g.GoalType = goal.TypeDailyTracker
			g.TrackDailyQuantity = true
		})
		p := goal.EmptyProgress(g.Id, creator)
		p.ListItems = []goal.ListEntry{
			{Title: "2.5"},
			{Title: " 3 "},
			{Title: "not a number"},
		}
		if got := goal.CurrentCount(g, p); got != 5.5 {
			t.Fatalf("expected 5.5, got %v", got)
		}
	})

	t.Run("daily quantity falls back to numeric value", func(t *testing.T) {
		g := challengeGoal(creator, buddy, func(g *goal.Goal) {
			g.GoalType = goal.TypeDailyTracker
			g.TrackDailyQuantity = true
		})
		p := goal.EmptyProgress(g.Id, creator)
		p.NumericValue = 42
		if got := goal.CurrentCount(g, p); got != 42 {
			t.Fatalf("expected 42, got %v", got)
		}
	})

	t.Run("nil progress counts as zero", func(t *testing.T) {
		g := challengeGoal(creator, buddy, nil)
		if got := goal.CurrentCount(g, nil); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})
}

func TestEvaluateWinnerReachTarget(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()
	now := day("2025-03-10")
	target := 5.0

	g := challengeGoal(creator, buddy, func(g *goal.Goal) {
		g.WinningCondition = "First to reach 5 books"
		g.WinningNumber = &target
	})

	t.Run("creator reaches target first", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 5), progressWithItems(g, buddy, 2), now)
		if winner == nil || *winner != creator {
			t.Fatalf("expected creator to win, got %v", winner)
		}
	})

	t.Run("buddy reaches target first", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 1), progressWithItems(g, buddy, 6), now)
		if winner == nil || *winner != buddy {
			t.Fatalf("expected buddy to win, got %v", winner)
		}
	})

	t.Run("both at target yields no winner", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 5), progressWithItems(g, buddy, 5), now)
		if winner != nil {
			t.Fatalf("expected no winner, got %v", winner)
		}
	})

	t.Run("nobody at target", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 4), progressWithItems(g, buddy, 3), now)
		if winner != nil {
			t.Fatalf("expected no winner, got %v", winner)
		}
	})

	t.Run("missing target number never wins", func(t *testing.T) {
		noTarget := challengeGoal(creator, buddy, func(g *goal.Goal) {
			g.WinningCondition = "First to reach 5 books"
		})
		winner := goal.EvaluateWinner(noTarget, progressWithItems(noTarget, creator, 10), nil, now)
		if winner != nil {
			t.Fatalf("expected no winner, got %v", winner)
		}
	})
}

func TestEvaluateWinnerFinishList(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()
	now := day("2025-03-10")

	g := challengeGoal(creator, buddy, func(g *goal.Goal) {
		g.GoalType = goal.TypeListCreatedByUser
		g.WinningCondition = "First to finish the list"
		g.CreatedListItems = []string{"chapter 1", "chapter 2", "chapter 3"}
	})

	t.Run("finishing the list wins", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 3), progressWithItems(g, buddy, 1), now)
		if winner == nil || *winner != creator {
			t.Fatalf("expected creator to win, got %v", winner)
		}
	})

	t.Run("empty created list never wins", func(t *testing.T) {
		empty := challengeGoal(creator, buddy, func(g *goal.Goal) {
			g.GoalType = goal.TypeListCreatedByUser
			g.WinningCondition = "First to finish the list"
		})
		winner := goal.EvaluateWinner(empty, progressWithItems(empty, creator, 4), nil, now)
		if winner != nil {
			t.Fatalf("expected no winner, got %v", winner)
		}
	})
}

func TestEvaluateWinnerReachStreak(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()
	now := day("2025-03-10")
	target := 3.0

	g := challengeGoal(creator, buddy, func(g *goal.Goal) {
		g.GoalType = goal.TypeDailyTracker
		g.KeepStreak = true
		g.WinningCondition = "First to reach a streak of"
		g.WinningNumber = &target
	})

	t.Run("current streak at target wins", func(t *testing.T) {
		winner := goal.EvaluateWinner(g,
			progressWithDays(g, creator, "2025-03-08", "2025-03-09", "2025-03-10"),
			progressWithDays(g, buddy, "2025-03-09", "2025-03-10"),
			now,
		)
		if winner == nil || *winner != creator {
			t.Fatalf("expected creator to win, got %v", winner)
		}
	})

	t.Run("broken streak does not count", func(t *testing.T) {
		winner := goal.EvaluateWinner(g,
			progressWithDays(g, creator, "2025-03-06", "2025-03-07", "2025-03-08"),
			nil,
			now,
		)
		if winner != nil {
			t.Fatalf("expected no winner, got %v", winner)
		}
	})
}

func TestEvaluateWinnerMostByEndDate(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()
	endDate := day("2025-03-10")

	g := challengeGoal(creator, buddy, func(g *goal.Goal) {
		g.WinningCondition = "Whoever does the most by the end date"
		g.EndDate = &endDate
	})

	t.Run("before end date nobody wins", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 9), progressWithItems(g, buddy, 1), day("2025-03-09"))
		if winner != nil {
			t.Fatalf("expected no winner before the end date, got %v", winner)
		}
	})

	t.Run("on end date largest count wins", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 9), progressWithItems(g, buddy, 1), day("2025-03-10"))
		if winner == nil || *winner != creator {
			t.Fatalf("expected creator to win, got %v", winner)
		}
	})

	t.Run("after end date with missing buddy row", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 1), nil, day("2025-03-12"))
		if winner == nil || *winner != creator {
			t.Fatalf("expected creator to win against empty progress, got %v", winner)
		}
	})

	t.Run("exact tie never wins", func(t *testing.T) {
		winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 4), progressWithItems(g, buddy, 4), day("2025-03-11"))
		if winner != nil {
			t.Fatalf("expected no winner on a tie, got %v", winner)
		}
	})
}

func TestEvaluateWinnerLongestStreakByEndDate(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()
	endDate := day("2025-03-10")

	g := challengeGoal(creator, buddy, func(g *goal.Goal) {
		g.GoalType = goal.TypeDailyTracker
		g.KeepStreak = true
		g.WinningCondition = "Whoever has the longest streak by the end date"
		g.EndDate = &endDate
	})

	// O criador tem a maior sequência histórica mesmo com a atual quebrada.
	winner := goal.EvaluateWinner(g,
		progressWithDays(g, creator, "2025-03-01", "2025-03-02", "2025-03-03", "2025-03-04", "2025-03-09"),
		progressWithDays(g, buddy, "2025-03-09", "2025-03-10"),
		day("2025-03-10"),
	)
	if winner == nil || *winner != creator {
		t.Fatalf("expected creator to win on longest streak, got %v", winner)
	}
}

func TestEvaluateWinnerGuards(t *testing.T) {
	t.Parallel()

	creator := ulid.Make()
	buddy := ulid.Make()
	now := day("2025-03-10")

	t.Run("friendly goal never produces a winner", func(t *testing.T) {
		target := 1.0
		g := challengeGoal(creator, buddy, func(g *goal.Goal) {
			g.Mode = goal.ModeFriendly
			g.WinningCondition = "First to reach 1"
			g.WinningNumber = &target
		})
		if winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 5), nil, now); winner != nil {
			t.Fatalf("expected no winner for friendly goal, got %v", winner)
		}
	})

	t.Run("solo challenge never produces a winner", func(t *testing.T) {
		target := 1.0
		g := challengeGoal(creator, buddy, func(g *goal.Goal) {
			g.BuddyId = nil
			g.WinningCondition = "First to reach 1"
			g.WinningNumber = &target
		})
		if winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 5), nil, now); winner != nil {
			t.Fatalf("expected no winner without buddy, got %v", winner)
		}
	})

	t.Run("unknown condition never produces a winner", func(t *testing.T) {
		g := challengeGoal(creator, buddy, func(g *goal.Goal) {
			g.WinningCondition = "whoever trains harder"
		})
		if winner := goal.EvaluateWinner(g, progressWithItems(g, creator, 50), nil, now); winner != nil {
			t.Fatalf("expected no winner for unknown condition, got %v", winner)
		}
	})

	t.Run("nil goal", func(t *testing.T) {
		if winner := goal.EvaluateWinner(nil, nil, nil, now); winner != nil {
			t.Fatalf("expected nil, got %v", winner)
		}
	})
}
