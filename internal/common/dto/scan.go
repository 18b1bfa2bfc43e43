package dto

// RegisterScanSessionRequest describes a PDA terminal attaching to the server
type RegisterScanSessionRequest struct {
	DeviceID         string `json:"deviceId" binding:"required"`
	KeyboardVisible  bool   `json:"keyboardVisible"`
	DisableAutoClear bool   `json:"disableAutoClear"`
	Disabled         bool   `json:"disabled"`
	HasKeyboardAPI   bool   `json:"hasKeyboardApi"`
}

// ScanKeysRequest carries raw key events relayed from the terminal.
// Keys holds printable characters; each control entry is applied in order.
type ScanKeysRequest struct {
	Keys    string   `json:"keys"`
	Control []string `json:"control" binding:"omitempty,dive,oneof=enter backspace"`
}

// TabOpenRequest opens or activates a tab for the current user
type TabOpenRequest struct {
	Path     string `json:"path" binding:"required"`
	LabelKey string `json:"labelKey"`
	ParentID string `json:"parentId"`
	Pinned   bool   `json:"pinned"`
}

// TabTargetRequest addresses an existing tab by id
type TabTargetRequest struct {
	TabID string `json:"tabId" binding:"required"`
}
