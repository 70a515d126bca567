package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

type userRow struct {
	Id        string `gorm:"type:varchar(26);primaryKey"`
	Name      string `gorm:"type:varchar(100);not null"`
	Email     string `gorm:"type:varchar(100);uniqueIndex:idx_users_email;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string {
	return "users"
}

func toDomainUser(row *userRow) (*user.User, error) {
	id, err := pkg.ParseULID(row.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &user.User{
		Id:        id,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func toUserRow(u *user.User) *userRow {
	return &userRow{
		Id:        u.Id.String(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	row := toUserRow(u)
	if err := r.DB.WithContext(ctx).Table("users").Create(&row).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	row := toUserRow(u)
	result := r.DB.WithContext(ctx).Table("users").
		Where("id = ?", row.Id).
		Updates(row)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	var row userRow
	err := r.DB.WithContext(ctx).Table("users").
		Where("id = ?", id.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var row userRow
	err := r.DB.WithContext(ctx).Table("users").
		Where("email = ?", email).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&row)
}

func (r *UserRepository) Exists(ctx context.Context, id ulid.ULID) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Table("users").
		Where("id = ?", id.String()).
		Count(&count).Error
	if err != nil {
		return false, appErrors.NewDatabaseError(err)
	}
	return count > 0, nil
}
