package user

import (
	"context"
	"strings"

	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Create(ctx context.Context, u *User) error {
	if strings.TrimSpace(u.Name) == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}

	u.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	u.CreatedAt = now
	u.UpdatedAt = now

	return s.Repository.Create(ctx, u)
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id ulid.ULID) error {
	exists, err := s.Repository.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return appErrors.ErrUserNotFound
	}
	return nil
}

// DisplayName busca o nome de perfil para compor textos de notificação.
func (s *Service) DisplayName(ctx context.Context, id ulid.ULID) (string, error) {
	u, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if u == nil || u.Name == "" {
		return "", appErrors.ErrUserNotFound
	}
	return u.Name, nil
}
