package friend

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
)

type Friendship struct {
	Id          ulid.ULID `gorm:"type:varchar(26);primaryKey" json:"id"`
	RequesterId ulid.ULID `gorm:"column:requester_id;type:varchar(26);not null;index:idx_friendships_requester" json:"requesterId"`
	AddresseeId ulid.ULID `gorm:"column:addressee_id;type:varchar(26);not null;index:idx_friendships_addressee" json:"addresseeId"`
	Status      Status    `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;not null" json:"updatedAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}
