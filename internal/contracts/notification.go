package contracts

import (
	domainNotification "github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/notification"
)

type NotificationListResponse struct {
	Notifications []*domainNotification.Notification `json:"notifications"`
	Total         int64                              `json:"total"`
}
