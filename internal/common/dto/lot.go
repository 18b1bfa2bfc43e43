package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest is the request body for creating an inventory lot
type CreateLotRequest struct {
	Serial   string          `json:"serial" binding:"required"`
	PartNo   string          `json:"partNo" binding:"required"`
	Qty      decimal.Decimal `json:"qty" binding:"required"`
	Location string          `json:"location"`
}

// UpdateLotRequest is the request body for updating a lot
type UpdateLotRequest struct {
	PartNo   string           `json:"partNo"`
	Qty      *decimal.Decimal `json:"qty"`
	Location string           `json:"location"`
	Status   string           `json:"status"`
}

// LotResponse is the wire representation of a lot
type LotResponse struct {
	ID        uint            `json:"id"`
	Serial    string          `json:"serial"`
	PartNo    string          `json:"partNo"`
	Qty       decimal.Decimal `json:"qty"`
	Location  string          `json:"location,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// LotScanResponse is the wire representation of a recorded scan event
type LotScanResponse struct {
	ID        uint      `json:"id"`
	LotID     uint      `json:"lotId"`
	DeviceID  string    `json:"deviceId"`
	ScannedAt time.Time `json:"scannedAt"`
}
