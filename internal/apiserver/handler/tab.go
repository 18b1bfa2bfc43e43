package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/middleware"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/i18n"
	"github.com/harnesslab/wiremes/internal/tabs"
)

// registryForRequest resolves the tab registry of the authenticated user
func (h *Handler) registryForRequest(c *gin.Context) (*tabs.Registry, bool) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return nil, false
	}

	reg, err := h.tabs.ForUser(c.Request.Context(), claims.Username)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrTabStateUnavailable)
		return nil, false
	}
	return reg, true
}

// GetTabs returns the user's current tab state
func (h *Handler) GetTabs(c *gin.Context) {
	reg, ok := h.registryForRequest(c)
	if !ok {
		return
	}

	state, err := reg.Snapshot()
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrTabStateUnavailable)
		return
	}
	i18n.RespondData(c, state)
}

// OpenTab opens a tab for a path, or activates it when already open
func (h *Handler) OpenTab(c *gin.Context) {
	var req dto.TabOpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	reg, ok := h.registryForRequest(c)
	if !ok {
		return
	}

	state, err := reg.OpenOrActivate(c.Request.Context(), req.Path, tabs.Meta{
		LabelKey: req.LabelKey,
		ParentID: req.ParentID,
		Pinned:   req.Pinned,
	})
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrTabStateUnavailable)
		return
	}
	if h.metrics != nil {
		h.metrics.TabOp("open")
	}
	i18n.RespondData(c, state)
}

// ActivateTab switches the active tab
func (h *Handler) ActivateTab(c *gin.Context) {
	var req dto.TabTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	reg, ok := h.registryForRequest(c)
	if !ok {
		return
	}

	state, err := reg.SetActiveTab(c.Request.Context(), req.TabID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrTabStateUnavailable)
		return
	}
	if h.metrics != nil {
		h.metrics.TabOp("activate")
	}
	i18n.RespondData(c, state)
}

// CloseTab removes one tab. Pinned tabs survive the request unchanged.
func (h *Handler) CloseTab(c *gin.Context) {
	var req dto.TabTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	reg, ok := h.registryForRequest(c)
	if !ok {
		return
	}

	state, err := reg.RemoveTab(c.Request.Context(), req.TabID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrTabStateUnavailable)
		return
	}
	if h.metrics != nil {
		h.metrics.TabOp("close")
	}
	i18n.RespondData(c, state)
}

// CloseOtherTabs keeps one tab plus any pinned tabs
func (h *Handler) CloseOtherTabs(c *gin.Context) {
	var req dto.TabTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	reg, ok := h.registryForRequest(c)
	if !ok {
		return
	}

	state, err := reg.CloseOtherTabs(c.Request.Context(), req.TabID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrTabStateUnavailable)
		return
	}
	if h.metrics != nil {
		h.metrics.TabOp("close_others")
	}
	i18n.RespondData(c, state)
}

// CloseAllTabs removes every unpinned tab
func (h *Handler) CloseAllTabs(c *gin.Context) {
	reg, ok := h.registryForRequest(c)
	if !ok {
		return
	}

	state, err := reg.CloseAllTabs(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrTabStateUnavailable)
		return
	}
	if h.metrics != nil {
		h.metrics.TabOp("close_all")
	}
	i18n.RespondData(c, state)
}
