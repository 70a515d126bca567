package contracts

import (
	domainUser "github.com/joserrivase/Accountability-Buddy-sub000/internal/domain/user"
)

type UserCreateRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

type UserResponse struct {
	User *domainUser.User `json:"user"`
}
