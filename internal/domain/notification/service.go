package notification

import (
	"context"

	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/logger"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
	Sink       Sink
}

func NewService(repo Repository, sink Sink) *Service {
	return &Service{Repository: repo, Sink: sink}
}

// Notify persiste a notificação e tenta o push. A falha do push é registrada
// e engolida; só a persistência devolve erro ao chamador.
func (s *Service) Notify(ctx context.Context, n *Notification) (*Notification, error) {
	n.Id = pkg.GenerateULIDObject()
	n.CreatedAt = pkg.SetTimestamps()

	if err := s.Repository.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.Sink != nil {
		if err := s.Sink.Send(ctx, n); err != nil {
			logger.Warn().
				Err(err).
				Str("notification_id", n.Id.String()).
				Str("user_id", n.UserId.String()).
				Str("type", string(n.Type)).
				Msg("Falha ao enviar push; notificação permanece gravada")
		}
	}

	return n, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID ulid.ULID, unreadOnly bool, pagination *pkg.PaginationParams) ([]*Notification, int64, error) {
	return s.Repository.GetByUserID(ctx, userID, unreadOnly, pagination)
}

// MarkRead só permite o dono marcar a própria notificação.
func (s *Service) MarkRead(ctx context.Context, id, userID ulid.ULID) error {
	n, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserId != userID {
		return appErrors.ErrResourceNotOwned
	}
	return s.Repository.MarkRead(ctx, id)
}
