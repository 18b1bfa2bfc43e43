package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/apiserver/scheduler"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/i18n"
	"github.com/tidwall/gjson"
)

func bindRaw(body []byte, out interface{}) error {
	return json.Unmarshal(body, out)
}

// ListEquipment handles listing all equipment
func (h *Handler) ListEquipment(c *gin.Context) {
	items, err := h.db.ListEquipment(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	out := make([]dto.EquipmentResponse, 0, len(items))
	for _, eq := range items {
		out = append(out, toEquipmentResponse(eq))
	}
	i18n.RespondData(c, out)
}

// GetEquipment returns one piece of equipment by id
func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	eq, err := h.db.GetEquipmentByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrEquipmentNotFound)
		return
	}
	i18n.RespondData(c, toEquipmentResponse(eq))
}

// CreateEquipment handles equipment registration
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req dto.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	status := database.EquipmentIdle
	if req.Status != "" {
		status = database.EquipmentStatus(req.Status)
	}

	eq := &database.Equipment{
		Code:        req.Code,
		Name:        req.Name,
		Line:        req.Line,
		Status:      status,
		InstalledAt: req.InstalledAt,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := h.db.CreateEquipment(c.Request.Context(), eq); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Created("Messages.Equipment.Created").WithPayload(toEquipmentResponse(eq)).Send(c)
}

// PatchEquipment applies a partial update. Field presence is checked on
// the raw body so that explicit empty values still apply.
func (h *Handler) PatchEquipment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	eq, err := h.db.GetEquipmentByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrEquipmentNotFound)
		return
	}

	body, err := c.GetRawData()
	if err != nil || !gjson.ValidBytes(body) {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if v := gjson.GetBytes(body, "name"); v.Exists() {
		eq.Name = v.String()
	}
	if v := gjson.GetBytes(body, "line"); v.Exists() {
		eq.Line = v.String()
	}
	if v := gjson.GetBytes(body, "status"); v.Exists() {
		switch database.EquipmentStatus(v.String()) {
		case database.EquipmentRunning, database.EquipmentIdle, database.EquipmentMaintenance:
			eq.Status = database.EquipmentStatus(v.String())
		default:
			i18n.RespondWithError(c, i18n.ErrBadRequest)
			return
		}
	}
	if v := gjson.GetBytes(body, "installedAt"); v.Exists() {
		if v.Type == gjson.Null {
			eq.InstalledAt = nil
		} else {
			ts, err := time.Parse(time.RFC3339, v.String())
			if err != nil {
				i18n.RespondWithError(c, i18n.ErrBadRequest)
				return
			}
			eq.InstalledAt = &ts
		}
	}
	eq.UpdatedAt = time.Now()

	if err := h.db.UpdateEquipment(c.Request.Context(), eq); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Equipment.Updated").WithPayload(toEquipmentResponse(eq)).Send(c)
}

// DeleteEquipment handles equipment removal
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if _, err := h.db.GetEquipmentByID(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrEquipmentNotFound)
		return
	}

	if err := h.db.DeleteEquipment(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Equipment.Deleted").Send(c)
}

// ListPMPlans lists maintenance plans, optionally scoped to one machine
// via the equipmentId query parameter.
func (h *Handler) ListPMPlans(c *gin.Context) {
	var equipmentID uint
	if q := c.Query("equipmentId"); q != "" {
		parsed, err := strconv.ParseUint(q, 10, 32)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrBadRequest)
			return
		}
		equipmentID = uint(parsed)
	}

	plans, err := h.db.ListPMPlans(c.Request.Context(), equipmentID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	now := time.Now()
	out := make([]dto.PMPlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPMPlanResponse(p, now))
	}
	i18n.RespondData(c, out)
}

// CreatePMPlan creates a maintenance plan and derives its first due date
func (h *Handler) CreatePMPlan(c *gin.Context) {
	var req dto.CreatePMPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if _, err := h.db.GetEquipmentByID(c.Request.Context(), req.EquipmentID); err != nil {
		i18n.RespondWithError(c, i18n.ErrEquipmentNotFound)
		return
	}

	now := time.Now()
	plan := &database.PMPlan{
		EquipmentID: req.EquipmentID,
		Title:       req.Title,
		CycleDays:   req.CycleDays,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	due := scheduler.Derive(plan, now)
	plan.NextDueAt = &due

	if err := h.db.CreatePMPlan(c.Request.Context(), plan); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Created("Messages.PMPlan.Created").WithPayload(toPMPlanResponse(plan, now)).Send(c)
}

// UpdatePMPlan updates a plan's title or cycle and re-derives the due date
func (h *Handler) UpdatePMPlan(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	var req dto.UpdatePMPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	plan, err := h.db.GetPMPlanByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrPMPlanNotFound)
		return
	}

	if req.Title != "" {
		plan.Title = req.Title
	}
	if req.CycleDays > 0 {
		plan.CycleDays = req.CycleDays
	}
	now := time.Now()
	due := scheduler.Derive(plan, now)
	plan.NextDueAt = &due
	plan.UpdatedAt = now

	if err := h.db.UpdatePMPlan(c.Request.Context(), plan); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.PMPlan.Updated").WithPayload(toPMPlanResponse(plan, now)).Send(c)
}

// CompletePMPlan marks a plan done now and rolls the due date forward
func (h *Handler) CompletePMPlan(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	plan, err := h.db.GetPMPlanByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrPMPlanNotFound)
		return
	}

	now := time.Now()
	plan.LastDoneAt = &now
	due := scheduler.Derive(plan, now)
	plan.NextDueAt = &due
	plan.UpdatedAt = now

	if err := h.db.UpdatePMPlan(c.Request.Context(), plan); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.PMPlan.Completed").WithPayload(toPMPlanResponse(plan, now)).Send(c)
}

// DeletePMPlan removes a maintenance plan
func (h *Handler) DeletePMPlan(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if _, err := h.db.GetPMPlanByID(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrPMPlanNotFound)
		return
	}

	if err := h.db.DeletePMPlan(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.PMPlan.Deleted").Send(c)
}

func toEquipmentResponse(eq *database.Equipment) dto.EquipmentResponse {
	return dto.EquipmentResponse{
		ID:          eq.ID,
		Code:        eq.Code,
		Name:        eq.Name,
		Line:        eq.Line,
		Status:      string(eq.Status),
		InstalledAt: eq.InstalledAt,
		CreatedAt:   eq.CreatedAt,
		UpdatedAt:   eq.UpdatedAt,
	}
}

func toPMPlanResponse(p *database.PMPlan, now time.Time) dto.PMPlanResponse {
	overdue := p.NextDueAt != nil && p.NextDueAt.Before(now)
	return dto.PMPlanResponse{
		ID:          p.ID,
		EquipmentID: p.EquipmentID,
		Title:       p.Title,
		CycleDays:   p.CycleDays,
		LastDoneAt:  p.LastDoneAt,
		NextDueAt:   p.NextDueAt,
		Overdue:     overdue,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
