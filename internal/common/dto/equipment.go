package dto

import "time"

// CreateEquipmentRequest is the request body for registering equipment
type CreateEquipmentRequest struct {
	Code        string     `json:"code" binding:"required"`
	Name        string     `json:"name" binding:"required"`
	Line        string     `json:"line"`
	Status      string     `json:"status" binding:"omitempty,oneof=RUNNING IDLE MAINTENANCE"`
	InstalledAt *time.Time `json:"installedAt"`
}

// EquipmentResponse is the wire representation of equipment
type EquipmentResponse struct {
	ID          uint       `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Line        string     `json:"line,omitempty"`
	Status      string     `json:"status"`
	InstalledAt *time.Time `json:"installedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreatePMPlanRequest is the request body for creating a maintenance plan
type CreatePMPlanRequest struct {
	EquipmentID uint   `json:"equipmentId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	CycleDays   int    `json:"cycleDays" binding:"required,min=1"`
}

// UpdatePMPlanRequest is the request body for updating a maintenance plan
type UpdatePMPlanRequest struct {
	Title     string `json:"title"`
	CycleDays int    `json:"cycleDays"`
}

// PMPlanResponse is the wire representation of a maintenance plan
type PMPlanResponse struct {
	ID          uint       `json:"id"`
	EquipmentID uint       `json:"equipmentId"`
	Title       string     `json:"title"`
	CycleDays   int        `json:"cycleDays"`
	LastDoneAt  *time.Time `json:"lastDoneAt,omitempty"`
	NextDueAt   *time.Time `json:"nextDueAt,omitempty"`
	Overdue     bool       `json:"overdue"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
