package contracts

import (
	domainFriend "github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/friend"
)

type FriendRequestCreate struct {
	AddresseeId string `json:"addressee_id" binding:"required"`
}

type FriendshipResponse struct {
	Friendship *domainFriend.Friendship `json:"friendship"`
}

type FriendshipListResponse struct {
	Friendships []*domainFriend.Friendship `json:"friendships"`
	Total       int                        `json:"total"`
}
