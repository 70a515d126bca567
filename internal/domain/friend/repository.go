package friend

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, friendship *Friendship) error
	GetByID(ctx context.Context, id ulid.ULID) (*Friendship, error)
	GetBetween(ctx context.Context, a, b ulid.ULID) (*Friendship, error)
	ListByUser(ctx context.Context, userID ulid.ULID, status *Status) ([]*Friendship, error)
	UpdateStatus(ctx context.Context, id ulid.ULID, status Status) error
}
