package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/export"
	"github.com/harnesslab/wiremes/internal/i18n"
	"go.uber.org/zap"
)

// ListLots handles listing all inventory lots
func (h *Handler) ListLots(c *gin.Context) {
	lots, err := h.db.ListLots(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	out := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toLotResponse(lot))
	}
	i18n.RespondData(c, out)
}

// GetLot returns one lot by id
func (h *Handler) GetLot(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	lot, err := h.db.GetLotByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrLotNotFound)
		return
	}
	i18n.RespondData(c, toLotResponse(lot))
}

// CreateLot registers a new inventory lot
func (h *Handler) CreateLot(c *gin.Context) {
	var req dto.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if _, err := h.db.GetLotBySerial(c.Request.Context(), req.Serial); err == nil {
		i18n.RespondWithError(c, i18n.ErrLotSerialExists)
		return
	}

	lot := &database.Lot{
		Serial:    req.Serial,
		PartNo:    req.PartNo,
		Qty:       req.Qty,
		Location:  req.Location,
		Status:    database.LotInStock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.db.CreateLot(c.Request.Context(), lot); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	h.logger.Info("lot created",
		zap.String("serial", lot.Serial),
		zap.String("part_no", lot.PartNo))
	i18n.Created("Messages.Lot.Created").WithPayload(toLotResponse(lot)).Send(c)
}

// UpdateLot handles lot updates
func (h *Handler) UpdateLot(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	var req dto.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	lot, err := h.db.GetLotByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrLotNotFound)
		return
	}

	if req.PartNo != "" {
		lot.PartNo = req.PartNo
	}
	if req.Qty != nil {
		lot.Qty = *req.Qty
	}
	if req.Location != "" {
		lot.Location = req.Location
	}
	if req.Status != "" {
		switch database.LotStatus(req.Status) {
		case database.LotInStock, database.LotHold, database.LotShipped:
			lot.Status = database.LotStatus(req.Status)
		default:
			i18n.RespondWithError(c, i18n.ErrBadRequest)
			return
		}
	}
	lot.UpdatedAt = time.Now()

	if err := h.db.UpdateLot(c.Request.Context(), lot); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Lot.Updated").WithPayload(toLotResponse(lot)).Send(c)
}

// DeleteLot removes a lot
func (h *Handler) DeleteLot(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if _, err := h.db.GetLotByID(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrLotNotFound)
		return
	}

	if err := h.db.DeleteLot(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Lot.Deleted").Send(c)
}

// ListLotScans returns the scan history of one lot
func (h *Handler) ListLotScans(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if _, err := h.db.GetLotByID(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrLotNotFound)
		return
	}

	scans, err := h.db.ListLotScans(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	out := make([]dto.LotScanResponse, 0, len(scans))
	for _, s := range scans {
		out = append(out, dto.LotScanResponse{
			ID:        s.ID,
			LotID:     s.LotID,
			DeviceID:  s.DeviceID,
			ScannedAt: s.ScannedAt,
		})
	}
	i18n.RespondData(c, out)
}

// ExportLots streams the full lot list as an xlsx workbook
func (h *Handler) ExportLots(c *gin.Context) {
	lots, err := h.db.ListLots(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	filename := fmt.Sprintf("lots-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := export.WriteLots(c.Writer, lots); err != nil {
		h.logger.Error("failed to export lots", zap.Error(err))
	}
}

func toLotResponse(lot *database.Lot) dto.LotResponse {
	return dto.LotResponse{
		ID:        lot.ID,
		Serial:    lot.Serial,
		PartNo:    lot.PartNo,
		Qty:       lot.Qty,
		Location:  lot.Location,
		Status:    string(lot.Status),
		CreatedAt: lot.CreatedAt,
		UpdatedAt: lot.UpdatedAt,
	}
}
