package erp

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/common/config"
	"go.uber.org/zap"
)

// Client pushes shipment notifications to the upstream ERP system.
// Notification failures are logged and never block the shipping flow.
type Client struct {
	logger *zap.Logger
	http   *resty.Client
	base   string
}

// ShipmentNotice is the payload posted to the ERP on dispatch
type ShipmentNotice struct {
	ShipmentID  uint      `json:"shipmentId"`
	LotSerial   string    `json:"lotSerial"`
	PartNo      string    `json:"partNo"`
	Qty         string    `json:"qty"`
	Destination string    `json:"destination"`
	ShippedAt   time.Time `json:"shippedAt"`
}

// NewClient creates an ERP client. A nil client is returned when no base
// URL is configured so callers can skip notification entirely.
func NewClient(logger *zap.Logger, cfg config.ERPConfig) *Client {
	if cfg.BaseURL == "" {
		return nil
	}

	timeout := cfg.Timeout.Std()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	if cfg.APIKey != "" {
		c.SetHeader("X-API-Key", cfg.APIKey)
	}

	return &Client{
		logger: logger.Named("erp.client"),
		http:   c,
		base:   cfg.BaseURL,
	}
}

// NotifyShipment posts a dispatch notice. The error return is advisory;
// callers record it but complete the shipment regardless.
func (c *Client) NotifyShipment(ctx context.Context, shipment *database.Shipment, lot *database.Lot) error {
	if c == nil {
		return nil
	}

	shippedAt := time.Now()
	if shipment.ShippedAt != nil {
		shippedAt = *shipment.ShippedAt
	}

	notice := ShipmentNotice{
		ShipmentID:  shipment.ID,
		LotSerial:   lot.Serial,
		PartNo:      lot.PartNo,
		Qty:         lot.Qty.String(),
		Destination: shipment.Destination,
		ShippedAt:   shippedAt,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(notice).
		Post("/api/shipments/notify")
	if err != nil {
		c.logger.Warn("erp notification failed",
			zap.Uint("shipment_id", shipment.ID),
			zap.Error(err))
		return err
	}
	if resp.IsError() {
		err := fmt.Errorf("erp returned status %d", resp.StatusCode())
		c.logger.Warn("erp notification rejected",
			zap.Uint("shipment_id", shipment.ID),
			zap.Int("status", resp.StatusCode()))
		return err
	}

	c.logger.Info("erp notified of shipment",
		zap.Uint("shipment_id", shipment.ID),
		zap.String("lot_serial", lot.Serial))
	return nil
}
