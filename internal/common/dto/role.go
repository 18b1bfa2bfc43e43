package dto

import "time"

// CreateRoleRequest is the request body for creating a role
type CreateRoleRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

// UpdateRoleRequest is the request body for updating a role.
// Code is intentionally absent since role codes are immutable.
type UpdateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   *int   `json:"sortOrder"`
}

// RoleResponse is the wire representation of a role
type RoleResponse struct {
	ID          uint      `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsSystem    bool      `json:"isSystem"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SavePermissionsRequest replaces a role's stored menu permissions wholesale
type SavePermissionsRequest struct {
	MenuCodes []string `json:"menuCodes" binding:"required"`
}
