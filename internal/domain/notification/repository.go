package notification

import (
	"context"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	GetByID(ctx context.Context, id ulid.ULID) (*Notification, error)
	GetByUserID(ctx context.Context, userID ulid.ULID, unreadOnly bool, pagination *pkg.PaginationParams) ([]*Notification, int64, error)
	MarkRead(ctx context.Context, id ulid.ULID) error
}

// Sink entrega a notificação ao dispositivo do usuário (push). Pode falhar de
// forma independente do repositório.
type Sink interface {
	Send(ctx context.Context, notification *Notification) error
}
