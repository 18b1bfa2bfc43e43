package handler

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/common/cnst"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/i18n"
	"github.com/harnesslab/wiremes/internal/menu"
	"go.uber.org/zap"
)

// Role codes are screaming-snake identifiers like QA_INSPECTOR.
var roleCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// ListRoles handles listing all roles
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.db.ListRoles(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	i18n.RespondData(c, out)
}

// GetRole returns one role by id
func (h *Handler) GetRole(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	role, err := h.db.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrRoleNotFound)
		return
	}
	i18n.RespondData(c, toRoleResponse(role))
}

// CreateRole handles role creation
func (h *Handler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if !roleCodePattern.MatchString(req.Code) {
		i18n.RespondWithError(c, i18n.ErrInvalidRoleCode)
		return
	}
	if _, err := h.db.GetRoleByCode(c.Request.Context(), req.Code); err == nil {
		i18n.RespondWithError(c, i18n.ErrRoleCodeExists)
		return
	}

	role := &database.Role{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := h.db.CreateRole(c.Request.Context(), role); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	h.logger.Info("role created", zap.String("code", role.Code))
	i18n.Created("Messages.Role.Created").WithPayload(toRoleResponse(role)).Send(c)
}

// UpdateRole handles role updates. The role code itself never changes.
func (h *Handler) UpdateRole(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	role, err := h.db.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrRoleNotFound)
		return
	}
	if role.IsSystem {
		i18n.RespondWithError(c, i18n.ErrSystemRoleReadOnly)
		return
	}

	// Reject any attempt to rewrite the code before binding the
	// narrower update shape.
	var probe struct {
		Code string `json:"code"`
	}
	body, err := c.GetRawData()
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}
	if err := bindRaw(body, &probe); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}
	if probe.Code != "" && probe.Code != role.Code {
		i18n.RespondWithError(c, i18n.ErrRoleCodeImmutable)
		return
	}

	var req dto.UpdateRoleRequest
	if err := bindRaw(body, &req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if req.Name != "" {
		role.Name = req.Name
	}
	if req.Description != "" {
		role.Description = req.Description
	}
	if req.SortOrder != nil {
		role.SortOrder = *req.SortOrder
	}
	role.UpdatedAt = time.Now()

	if err := h.db.UpdateRole(c.Request.Context(), role); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Role.Updated").WithPayload(toRoleResponse(role)).Send(c)
}

// DeleteRole handles role deletion
func (h *Handler) DeleteRole(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	role, err := h.db.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrRoleNotFound)
		return
	}
	if role.IsSystem {
		i18n.RespondWithError(c, i18n.ErrSystemRoleReadOnly)
		return
	}

	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}
	for _, u := range users {
		if u.RoleID == role.ID {
			i18n.RespondWithError(c, i18n.ErrRoleInUse)
			return
		}
	}

	if err := h.db.DeleteRole(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Role.Deleted").Send(c)
}

// GetRolePermissions returns the role's menu permission view, with
// parent check states derived from the stored leaf codes.
func (h *Handler) GetRolePermissions(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	role, err := h.db.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrRoleNotFound)
		return
	}

	stored, err := h.db.GetRolePermissions(c.Request.Context(), role.ID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.RespondData(c, menu.ViewFor(role.Code, stored))
}

// SaveRolePermissions replaces the role's permission set wholesale
func (h *Handler) SaveRolePermissions(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	var req dto.SavePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	role, err := h.db.GetRoleByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrRoleNotFound)
		return
	}
	if role.Code == cnst.AdminRoleCode {
		i18n.RespondWithError(c, i18n.ErrSystemRoleReadOnly)
		return
	}

	known := map[string]bool{}
	for _, code := range cnst.AllMenuCodes() {
		known[code] = true
	}
	for _, code := range req.MenuCodes {
		if !known[code] {
			i18n.RespondWithError(c, i18n.ErrUnknownMenuCode.WithData(map[string]interface{}{"Code": code}))
			return
		}
	}

	if err := h.db.ReplaceRolePermissions(c.Request.Context(), role.ID, req.MenuCodes); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Role.PermissionsSaved").WithPayload(menu.ViewFor(role.Code, req.MenuCodes)).Send(c)
}

// MenuTree returns the full static menu definition for permission editors
func (h *Handler) MenuTree(c *gin.Context) {
	i18n.RespondData(c, cnst.MenuTree)
}

func toRoleResponse(r *database.Role) dto.RoleResponse {
	return dto.RoleResponse{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		SortOrder:   r.SortOrder,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
