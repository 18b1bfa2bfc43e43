package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/middleware"
)

// RegisterRoutes wires every API endpoint onto the engine
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/auth/login", h.Login)

	api := r.Group("/api", middleware.JWTAuthMiddleware(h.jwtService))

	api.GET("/auth/me", h.CurrentUser)
	api.POST("/auth/change-password", h.ChangePassword)

	admin := api.Group("", middleware.AdminOnlyMiddleware())
	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateUser)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.POST("/users/:id/photo", h.UploadUserPhoto)

	admin.GET("/roles", h.ListRoles)
	admin.POST("/roles", h.CreateRole)
	admin.GET("/roles/:id", h.GetRole)
	admin.PUT("/roles/:id", h.UpdateRole)
	admin.DELETE("/roles/:id", h.DeleteRole)
	admin.GET("/roles/:id/permissions", h.GetRolePermissions)
	admin.PUT("/roles/:id/permissions", h.SaveRolePermissions)

	api.GET("/menu", h.MenuTree)

	api.GET("/equipment", h.ListEquipment)
	api.POST("/equipment", h.CreateEquipment)
	api.GET("/equipment/:id", h.GetEquipment)
	api.PATCH("/equipment/:id", h.PatchEquipment)
	api.DELETE("/equipment/:id", h.DeleteEquipment)

	api.GET("/pm-plans", h.ListPMPlans)
	api.POST("/pm-plans", h.CreatePMPlan)
	api.PUT("/pm-plans/:id", h.UpdatePMPlan)
	api.POST("/pm-plans/:id/complete", h.CompletePMPlan)
	api.DELETE("/pm-plans/:id", h.DeletePMPlan)

	api.GET("/lots", h.ListLots)
	api.POST("/lots", h.CreateLot)
	api.GET("/lots/export", h.ExportLots)
	api.GET("/lots/:id", h.GetLot)
	api.PUT("/lots/:id", h.UpdateLot)
	api.DELETE("/lots/:id", h.DeleteLot)
	api.GET("/lots/:id/scans", h.ListLotScans)

	api.GET("/oqc", h.ListOQCRequests)
	api.POST("/oqc", h.CreateOQCRequest)
	api.GET("/oqc/export", h.ExportOQCRequests)
	api.GET("/oqc/:id", h.GetOQCRequest)
	api.POST("/oqc/:id/judge", h.JudgeOQCRequest)

	api.GET("/shipments", h.ListShipments)
	api.POST("/shipments", h.CreateShipment)
	api.GET("/shipments/:id", h.GetShipment)
	api.POST("/shipments/:id/dispatch", h.DispatchShipment)

	api.POST("/scan-sessions", h.RegisterScanSession)
	api.GET("/scan-sessions", h.ListScanSessions)
	api.GET("/scan-sessions/:id", h.GetScanSession)
	api.POST("/scan-sessions/:id/keys", h.ScanSessionKeys)
	api.POST("/scan-sessions/:id/keyboard-toggle", h.ToggleScanKeyboard)
	api.DELETE("/scan-sessions/:id", h.UnregisterScanSession)

	api.GET("/tabs", h.GetTabs)
	api.POST("/tabs/open", h.OpenTab)
	api.POST("/tabs/activate", h.ActivateTab)
	api.POST("/tabs/close", h.CloseTab)
	api.POST("/tabs/close-others", h.CloseOtherTabs)
	api.POST("/tabs/close-all", h.CloseAllTabs)
}
