package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/friend"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type FriendRepository struct {
	DB *gorm.DB
}

type friendshipRow struct {
	Id          string `gorm:"type:varchar(26);primaryKey"`
	RequesterId string `gorm:"type:varchar(26);not null;index:idx_friendships_requester"`
	AddresseeId string `gorm:"type:varchar(26);not null;index:idx_friendships_addressee"`
	Status      string `gorm:"type:varchar(10);not null;default:'pending'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (friendshipRow) TableName() string {
	return "friendships"
}

func toDomainFriendship(row *friendshipRow) (*friend.Friendship, error) {
	id, err := pkg.ParseULID(row.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	requesterID, err := pkg.ParseULID(row.RequesterId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	addresseeID, err := pkg.ParseULID(row.AddresseeId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &friend.Friendship{
		Id:          id,
		RequesterId: requesterID,
		AddresseeId: addresseeID,
		Status:      friend.Status(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

func toFriendshipRow(f *friend.Friendship) *friendshipRow {
	return &friendshipRow{
		Id:          f.Id.String(),
		RequesterId: f.RequesterId.String(),
		AddresseeId: f.AddresseeId.String(),
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func (r *FriendRepository) Create(ctx context.Context, f *friend.Friendship) error {
	row := toFriendshipRow(f)
	if err := r.DB.WithContext(ctx).Table("friendships").Create(&row).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *FriendRepository) GetByID(ctx context.Context, id ulid.ULID) (*friend.Friendship, error) {
	var row friendshipRow
	err := r.DB.WithContext(ctx).Table("friendships").
		Where("id = ?", id.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrFriendshipNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainFriendship(&row)
}

// GetBetween ignora direção: (a,b) e (b,a) são o mesmo vínculo.
func (r *FriendRepository) GetBetween(ctx context.Context, a, b ulid.ULID) (*friend.Friendship, error) {
	var row friendshipRow
	err := r.DB.WithContext(ctx).Table("friendships").
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			a.String(), b.String(), b.String(), a.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainFriendship(&row)
}

func (r *FriendRepository) ListByUser(ctx context.Context, userID ulid.ULID, status *friend.Status) ([]*friend.Friendship, error) {
	query := r.DB.WithContext(ctx).Table("friendships").
		Where("requester_id = ? OR addressee_id = ?", userID.String(), userID.String())
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var rows []friendshipRow
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	out := make([]*friend.Friendship, 0, len(rows))
	for i := range rows {
		f, err := toDomainFriendship(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *FriendRepository) UpdateStatus(ctx context.Context, id ulid.ULID, status friend.Status) error {
	result := r.DB.WithContext(ctx).Table("friendships").
		Where("id = ?", id.String()).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrFriendshipNotFound
	}
	return nil
}
