package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/i18n"
	"go.uber.org/zap"
)

// ListShipments handles listing all shipments
func (h *Handler) ListShipments(c *gin.Context) {
	shipments, err := h.db.ListShipments(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	out := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, toShipmentResponse(s))
	}
	i18n.RespondData(c, out)
}

// GetShipment returns one shipment by id
func (h *Handler) GetShipment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	s, err := h.db.GetShipmentByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrShipmentNotFound)
		return
	}
	i18n.RespondData(c, toShipmentResponse(s))
}

// CreateShipment registers an outbound delivery for a lot in stock
func (h *Handler) CreateShipment(c *gin.Context) {
	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	lot, err := h.db.GetLotByID(c.Request.Context(), req.LotID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrLotNotFound)
		return
	}
	if lot.Status != database.LotInStock {
		i18n.RespondWithError(c, i18n.ErrLotNotInStock)
		return
	}

	s := &database.Shipment{
		LotID:       lot.ID,
		Destination: req.Destination,
		Status:      database.ShipmentReady,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := h.db.CreateShipment(c.Request.Context(), s); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Created("Messages.Shipment.Created").WithPayload(toShipmentResponse(s)).Send(c)
}

// DispatchShipment marks a shipment shipped, moves the lot out of stock
// and notifies the ERP. ERP failures are recorded but never roll back
// the dispatch.
func (h *Handler) DispatchShipment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	s, err := h.db.GetShipmentByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrShipmentNotFound)
		return
	}
	if s.Status == database.ShipmentShipped {
		i18n.RespondWithError(c, i18n.ErrShipmentAlreadyShipped)
		return
	}

	lot, err := h.db.GetLotByID(c.Request.Context(), s.LotID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrLotNotFound)
		return
	}

	now := time.Now()
	s.Status = database.ShipmentShipped
	s.ShippedAt = &now
	s.UpdatedAt = now

	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.UpdateShipment(ctx, s); err != nil {
			return err
		}
		lot.Status = database.LotShipped
		lot.UpdatedAt = now
		return h.db.UpdateLot(ctx, lot)
	})
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	if h.erp != nil {
		if err := h.erp.NotifyShipment(c.Request.Context(), s, lot); err != nil {
			if h.metrics != nil {
				h.metrics.ERPNotify("error")
			}
		} else if h.metrics != nil {
			h.metrics.ERPNotify("ok")
		}
	}

	h.logger.Info("shipment dispatched",
		zap.Uint("shipment_id", s.ID),
		zap.String("lot_serial", lot.Serial),
		zap.String("destination", s.Destination))
	i18n.Success("Messages.Shipment.Shipped").WithPayload(toShipmentResponse(s)).Send(c)
}

func toShipmentResponse(s *database.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		ID:          s.ID,
		LotID:       s.LotID,
		Destination: s.Destination,
		Status:      string(s.Status),
		ShippedAt:   s.ShippedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
