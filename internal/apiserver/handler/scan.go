package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/i18n"
	"github.com/harnesslab/wiremes/internal/scan"
)

// scanSessionView is the wire shape of one scan session
type scanSessionView struct {
	ID              string          `json:"id"`
	DeviceID        string          `json:"deviceId"`
	State           scan.State      `json:"state"`
	Value           string          `json:"value"`
	KeyboardVisible bool            `json:"keyboardVisible"`
	Device          scan.DeviceView `json:"device"`
}

func toScanSessionView(sess *scan.Session) scanSessionView {
	return scanSessionView{
		ID:              sess.ID,
		DeviceID:        sess.DeviceID,
		State:           sess.Controller.State(),
		Value:           sess.Controller.Value(),
		KeyboardVisible: sess.Controller.KeyboardVisible(),
		Device:          sess.Device.View(),
	}
}

// RegisterScanSession attaches a PDA terminal and runs the mount sequence
func (h *Handler) RegisterScanSession(c *gin.Context) {
	var req dto.RegisterScanSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	sess := h.scans.Register(req.DeviceID, scan.SessionOptions{
		KeyboardVisible:  req.KeyboardVisible,
		DisableAutoClear: req.DisableAutoClear,
		Disabled:         req.Disabled,
		HasKeyboardAPI:   req.HasKeyboardAPI,
	})
	if h.metrics != nil {
		h.metrics.ScanSessionOpened(req.DeviceID)
	}

	i18n.Created("Messages.Scan.SessionRegistered").WithPayload(toScanSessionView(sess)).Send(c)
}

// GetScanSession returns the current session state for the terminal to apply
func (h *Handler) GetScanSession(c *gin.Context) {
	sess, err := h.scans.Get(c.Param("id"))
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrScanSessionNotFound)
		return
	}
	i18n.RespondData(c, toScanSessionView(sess))
}

// ListScanSessions lists all attached terminals
func (h *Handler) ListScanSessions(c *gin.Context) {
	sessions := h.scans.List()
	out := make([]scanSessionView, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toScanSessionView(sess))
	}
	i18n.RespondData(c, out)
}

// ScanSessionKeys relays raw key events from the terminal to the
// controller. Printable keys first, then control keys in order.
func (h *Handler) ScanSessionKeys(c *gin.Context) {
	sess, err := h.scans.Get(c.Param("id"))
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrScanSessionNotFound)
		return
	}

	var req dto.ScanKeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	for _, r := range req.Keys {
		sess.Controller.Press(r)
	}
	for _, ctrl := range req.Control {
		switch ctrl {
		case "enter":
			sess.Controller.Enter()
		case "backspace":
			sess.Controller.Backspace()
		}
	}

	i18n.RespondData(c, toScanSessionView(sess))
}

// ToggleScanKeyboard flips the session's virtual keyboard preference
func (h *Handler) ToggleScanKeyboard(c *gin.Context) {
	sess, err := h.scans.Get(c.Param("id"))
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrScanSessionNotFound)
		return
	}

	sess.Controller.ToggleKeyboardVisibility()
	i18n.RespondData(c, toScanSessionView(sess))
}

// UnregisterScanSession detaches a terminal
func (h *Handler) UnregisterScanSession(c *gin.Context) {
	sess, err := h.scans.Get(c.Param("id"))
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrScanSessionNotFound)
		return
	}

	if err := h.scans.Unregister(sess.ID); err != nil {
		i18n.RespondWithError(c, i18n.ErrScanSessionNotFound)
		return
	}
	if h.metrics != nil {
		h.metrics.ScanSessionClosed(sess.DeviceID)
	}

	i18n.Success("Messages.Scan.SessionClosed").Send(c)
}
