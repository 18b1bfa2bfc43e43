package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOQCRequest is the request body for opening an outgoing QC inspection
type CreateOQCRequest struct {
	LotID     uint            `json:"lotId" binding:"required"`
	SampleQty decimal.Decimal `json:"sampleQty" binding:"required"`
}

// JudgeOQCRequest records the inspection verdict
type JudgeOQCRequest struct {
	Result string `json:"result" binding:"required,oneof=PASS FAIL"`
}

// OQCResponse is the wire representation of an OQC request
type OQCResponse struct {
	ID          uint            `json:"id"`
	LotID       uint            `json:"lotId"`
	SampleQty   decimal.Decimal `json:"sampleQty"`
	Result      string          `json:"result"`
	InspectedBy string          `json:"inspectedBy,omitempty"`
	InspectedAt *time.Time      `json:"inspectedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateShipmentRequest is the request body for registering a shipment
type CreateShipmentRequest struct {
	LotID       uint   `json:"lotId" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// ShipmentResponse is the wire representation of a shipment
type ShipmentResponse struct {
	ID          uint       `json:"id"`
	LotID       uint       `json:"lotId"`
	Destination string     `json:"destination"`
	Status      string     `json:"status"`
	ShippedAt   *time.Time `json:"shippedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
