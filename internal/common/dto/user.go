package dto

import "time"

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	RoleID   uint   `json:"roleId" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// UpdateUserRequest is the request body for updating a user
type UpdateUserRequest struct {
	Password string `json:"password"`
	RoleID   uint   `json:"roleId"`
	IsActive *bool  `json:"isActive"`
}

// UserResponse is the wire representation of a user
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	RoleID    uint      `json:"roleId"`
	RoleCode  string    `json:"roleCode,omitempty"`
	PhotoURL  string    `json:"photoUrl,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
