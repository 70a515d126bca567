package goal

import (
	"context"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type GoalFilters struct {
	Status *GoalStatus
	Mode   *Mode
}

type Repository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, id ulid.ULID) (*Goal, error)
	GetByUserID(ctx context.Context, userID ulid.ULID, filters *GoalFilters, pagination *pkg.PaginationParams) ([]*Goal, int64, error)
	UpdateFields(ctx context.Context, id ulid.ULID, fields map[string]interface{}) error
	Delete(ctx context.Context, id ulid.ULID) error
	// ListExpiredChallenges devolve metas challenge com data final já passada
	// e status active (ou ausente) ou pending_finish.
	ListExpiredChallenges(ctx context.Context, now time.Time) ([]*Goal, error)
}

type ProgressRepository interface {
	// GetByGoalAndUser devolve (nil, nil) quando a linha ainda não existe;
	// linha ausente é estado normal, nunca erro.
	GetByGoalAndUser(ctx context.Context, goalID, userID ulid.ULID) (*GoalProgress, error)
	ListByGoal(ctx context.Context, goalID ulid.ULID) ([]*GoalProgress, error)
	Upsert(ctx context.Context, progress *GoalProgress) error
}
