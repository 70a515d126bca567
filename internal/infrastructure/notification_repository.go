package infrastructure

import (
	"context"
	"errors"
	"time"

	"github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/notification"
	appErrors "github.com/joserrivase/Accountability-Buddy-sub000/internal/errors"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

type notificationRow struct {
	Id            string  `gorm:"type:varchar(26);primaryKey"`
	UserId        string  `gorm:"type:varchar(26);not null;index:idx_notifications_user_id"`
	Type          string  `gorm:"type:varchar(30);not null"`
	Title         string  `gorm:"type:varchar(100);not null"`
	Message       string  `gorm:"type:varchar(500);not null"`
	RelatedUserId *string `gorm:"type:varchar(26)"`
	RelatedGoalId *string `gorm:"type:varchar(26)"`
	Read          bool    `gorm:"default:false"`
	CreatedAt     time.Time
}

func (notificationRow) TableName() string {
	return "notifications"
}

func toDomainNotification(row *notificationRow) (*notification.Notification, error) {
	id, err := pkg.ParseULID(row.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	userID, err := pkg.ParseULID(row.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	relatedUser, err := pkg.ParseULIDPtr(row.RelatedUserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	relatedGoal, err := pkg.ParseULIDPtr(row.RelatedGoalId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &notification.Notification{
		Id:            id,
		UserId:        userID,
		Type:          notification.Type(row.Type),
		Title:         row.Title,
		Message:       row.Message,
		RelatedUserId: relatedUser,
		RelatedGoalId: relatedGoal,
		Read:          row.Read,
		CreatedAt:     row.CreatedAt,
	}, nil
}

func toNotificationRow(n *notification.Notification) *notificationRow {
	return &notificationRow{
		Id:            n.Id.String(),
		UserId:        n.UserId.String(),
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		RelatedUserId: pkg.ULIDPtrToString(n.RelatedUserId),
		RelatedGoalId: pkg.ULIDPtrToString(n.RelatedGoalId),
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	row := toNotificationRow(n)
	if err := r.DB.WithContext(ctx).Table("notifications").Create(&row).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id ulid.ULID) (*notification.Notification, error) {
	var row notificationRow
	err := r.DB.WithContext(ctx).Table("notifications").
		Where("id = ?", id.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrNotificationNotFound
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainNotification(&row)
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID ulid.ULID, unreadOnly bool, pagination *pkg.PaginationParams) ([]*notification.Notification, int64, error) {
	query := r.DB.WithContext(ctx).Table("notifications").
		Where("user_id = ?", userID.String())
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	return pkg.Paginate[notification.Notification, notificationRow](query, pagination, "created_at DESC", toDomainNotification)
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id ulid.ULID) error {
	result := r.DB.WithContext(ctx).Table("notifications").
		Where("id = ?", id.String()).
		Update("read", true)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrNotificationNotFound
	}
	return nil
}
