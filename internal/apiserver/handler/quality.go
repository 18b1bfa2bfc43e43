package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/apiserver/middleware"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/export"
	"github.com/harnesslab/wiremes/internal/i18n"
	"go.uber.org/zap"
)

// ListOQCRequests handles listing all outgoing inspections
func (h *Handler) ListOQCRequests(c *gin.Context) {
	reqs, err := h.db.ListOQCRequests(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	out := make([]dto.OQCResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toOQCResponse(r))
	}
	i18n.RespondData(c, out)
}

// GetOQCRequest returns one inspection by id
func (h *Handler) GetOQCRequest(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	req, err := h.db.GetOQCRequestByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrOQCNotFound)
		return
	}
	i18n.RespondData(c, toOQCResponse(req))
}

// CreateOQCRequest opens an inspection and puts the lot on hold
func (h *Handler) CreateOQCRequest(c *gin.Context) {
	var req dto.CreateOQCRequest
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

	oqc := &database.OQCRequest{
		LotID:     lot.ID,
		SampleQty: req.SampleQty,
		Result:    database.OQCPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	// Opening the inspection and holding the lot must land together.
	err = h.db.Transaction(c.Request.Context(), func(ctx context.Context) error {
		if err := h.db.CreateOQCRequest(ctx, oqc); err != nil {
			return err
		}
		lot.Status = database.LotHold
		lot.UpdatedAt = time.Now()
		return h.db.UpdateLot(ctx, lot)
	})
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Created("Messages.OQC.Created").WithPayload(toOQCResponse(oqc)).Send(c)
}

// JudgeOQCRequest records the inspection verdict. PASS releases the lot
// back to stock; FAIL keeps it on hold.
func (h *Handler) JudgeOQCRequest(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	var req dto.JudgeOQCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	oqc, err := h.db.GetOQCRequestByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrOQCNotFound)
		return
	}
	if oqc.Result != database.OQCPending {
		i18n.RespondWithError(c, i18n.ErrOQCAlreadyJudged)
		return
	}

	inspector := ""
	if claims := middleware.ClaimsFromContext(c); claims != nil {
		inspector = claims.Username
	}

	now := time.Now()
	oqc.Result = database.OQCResult(req.Result)
	oqc.InspectedBy = inspector
	oqc.InspectedAt = &now
	oqc.UpdatedAt = now

	if err := h.db.UpdateOQCRequest(c.Request.Context(), oqc); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	if oqc.Result == database.OQCPass {
		if lot, err := h.db.GetLotByID(c.Request.Context(), oqc.LotID); err == nil {
			lot.Status = database.LotInStock
			lot.UpdatedAt = now
			if err := h.db.UpdateLot(c.Request.Context(), lot); err != nil {
				h.logger.Error("failed to release lot after oqc pass",
					zap.Uint("lot_id", lot.ID),
					zap.Error(err))
			}
		}
	}

	i18n.Success("Messages.OQC.Judged").WithPayload(toOQCResponse(oqc)).Send(c)
}

// ExportOQCRequests streams all inspections as an xlsx workbook
func (h *Handler) ExportOQCRequests(c *gin.Context) {
	reqs, err := h.db.ListOQCRequests(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	filename := fmt.Sprintf("oqc-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)

	if err := export.WriteOQCRequests(c.Writer, reqs); err != nil {
		h.logger.Error("failed to export oqc requests", zap.Error(err))
	}
}

func toOQCResponse(r *database.OQCRequest) dto.OQCResponse {
	return dto.OQCResponse{
		ID:          r.ID,
		LotID:       r.LotID,
		SampleQty:   r.SampleQty,
		Result:      string(r.Result),
		InspectedBy: r.InspectedBy,
		InspectedAt: r.InspectedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
