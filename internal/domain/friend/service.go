package friend

import (
	"context"
	"fmt"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/notification"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/logger"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository    Repository
	UserService   *user.Service
	Notifications *notification.Service
}

func NewService(repo Repository, userSvc *user.Service, notifications *notification.Service) *Service {
	return &Service{
		Repository:    repo,
		UserService:   userSvc,
		Notifications: notifications,
	}
}

// SendRequest cria o pedido de amizade e notifica o destinatário.
func (s *Service) SendRequest(ctx context.Context, requesterID, addresseeID ulid.ULID) (*Friendship, error) {
	if requesterID == addresseeID {
		return nil, appErrors.NewValidationError("addressee_id", "não pode ser o próprio usuário")
	}
	if err := s.UserService.Exists(ctx, addresseeID); err != nil {
		return nil, err
	}

	existing, err := s.Repository.GetBetween(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewConflictError("Pedido de amizade")
	}

	now := pkg.SetTimestamps()
	friendship := &Friendship{
		Id:          pkg.GenerateULIDObject(),
		RequesterId: requesterID,
		AddresseeId: addresseeID,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repository.Create(ctx, friendship); err != nil {
		return nil, err
	}

	s.attemptNotify(ctx, addresseeID, requesterID, notification.TypeFriendRequest,
		"Friend Request", "%s sent you a friend request")

	return friendship, nil
}

// AcceptRequest só pode ser chamado pelo destinatário do pedido.
func (s *Service) AcceptRequest(ctx context.Context, friendshipID, userID ulid.ULID) error {
	friendship, err := s.Repository.GetByID(ctx, friendshipID)
	if err != nil {
		return err
	}
	if friendship.AddresseeId != userID {
		return appErrors.ErrResourceNotOwned
	}
	if friendship.Status == StatusAccepted {
		return nil
	}

	if err := s.Repository.UpdateStatus(ctx, friendshipID, StatusAccepted); err != nil {
		return err
	}

	s.attemptNotify(ctx, friendship.RequesterId, userID, notification.TypeFriendRequestAccepted,
		"Friend Request Accepted", "%s accepted your friend request")

	return nil
}

func (s *Service) ListFriends(ctx context.Context, userID ulid.ULID) ([]*Friendship, error) {
	accepted := StatusAccepted
	return s.Repository.ListByUser(ctx, userID, &accepted)
}

func (s *Service) ListPending(ctx context.Context, userID ulid.ULID) ([]*Friendship, error) {
	pending := StatusPending
	return s.Repository.ListByUser(ctx, userID, &pending)
}

func (s *Service) attemptNotify(ctx context.Context, to, relatedUser ulid.ULID, typ notification.Type, title, messageFormat string) {
	name := "Someone"
	if displayName, err := s.UserService.DisplayName(ctx, relatedUser); err == nil {
		name = displayName
	}

	related := relatedUser
	_, err := s.Notifications.Notify(ctx, &notification.Notification{
		UserId:        to,
		Type:          typ,
		Title:         title,
		Message:       fmt.Sprintf(messageFormat, name),
		RelatedUserId: &related,
	})
	if err != nil {
		logger.Warn().
			Err(err).
			Str("user_id", to.String()).
			Str("type", string(typ)).
			Msg("Falha ao criar notificação de amizade")
	}
}
