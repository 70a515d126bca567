package notification

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Type string

const (
	TypeFriendRequest         Type = "friend_request"
	TypeGoalUpdate            Type = "goal_update"
	TypeFriendRequestAccepted Type = "friend_request_accepted"
)

// Notification é endereçada a exatamente um usuário. Depois de criada, só a
// flag de leitura muda.
type Notification struct {
	Id            ulid.ULID  `gorm:"type:varchar(26);primaryKey" json:"id"`
	UserId        ulid.ULID  `gorm:"column:user_id;type:varchar(26);not null;index:idx_notifications_user_id" json:"userId"`
	Type          Type       `gorm:"type:varchar(30);not null" json:"type"`
	Title         string     `gorm:"type:varchar(100);not null" json:"title"`
	Message       string     `gorm:"type:varchar(500);not null" json:"message"`
	RelatedUserId *ulid.ULID `gorm:"column:related_user_id;type:varchar(26)" json:"relatedUserId,omitempty"`
	RelatedGoalId *ulid.ULID `gorm:"column:related_goal_id;type:varchar(26)" json:"relatedGoalId,omitempty"`
	Read          bool       `gorm:"default:false" json:"read"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;not null" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
