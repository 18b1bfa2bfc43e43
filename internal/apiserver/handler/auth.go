package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/apiserver/middleware"
	"github.com/harnesslab/wiremes/internal/auth/jwt"
	"github.com/harnesslab/wiremes/internal/common/config"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/erp"
	"github.com/harnesslab/wiremes/internal/i18n"
	"github.com/harnesslab/wiremes/internal/scan"
	"github.com/harnesslab/wiremes/internal/tabs"
	"github.com/harnesslab/wiremes/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler carries the shared dependencies of all API handlers
type Handler struct {
	db         database.Database
	jwtService *jwt.Service
	cfg        *config.ServerConfig
	logger     *zap.Logger
	tabs       *tabs.Manager
	scans      *scan.Manager
	erp        *erp.Client
	metrics    *metrics.Metrics
}

// NewHandler creates a new API handler
func NewHandler(db database.Database, jwtService *jwt.Service, cfg *config.ServerConfig, logger *zap.Logger, tabMgr *tabs.Manager, scanMgr *scan.Manager, erpClient *erp.Client, m *metrics.Metrics) *Handler {
	return &Handler{
		db:         db,
		jwtService: jwtService,
		cfg:        cfg,
		logger:     logger.Named("apiserver.handler"),
		tabs:       tabMgr,
		scans:      scanMgr,
		erp:        erpClient,
		metrics:    m,
	}
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInvalidCredentials)
		return
	}

	if !user.IsActive {
		i18n.RespondWithError(c, i18n.ErrUserDisabled)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		i18n.RespondWithError(c, i18n.ErrInvalidCredentials)
		return
	}

	role, err := h.db.GetRoleByID(c.Request.Context(), user.RoleID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username, role.ID, role.Code)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Auth.LoginSuccess").WithPayload(dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user, role.Code),
	}).Send(c)
}

// ChangePassword handles password change requests for the current user
func (h *Handler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), claims.Username)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		i18n.RespondWithError(c, i18n.ErrInvalidOldPassword)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	user.Password = string(hashed)
	user.UpdatedAt = time.Now()
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.Auth.PasswordChanged").Send(c)
}

// CurrentUser returns the authenticated user's profile
func (h *Handler) CurrentUser(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		i18n.RespondWithError(c, i18n.ErrUnauthorized)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUserNotFound)
		return
	}

	i18n.RespondData(c, toUserResponse(user, claims.RoleCode))
}

func toUserResponse(user *database.User, roleCode string) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		RoleID:    user.RoleID,
		RoleCode:  roleCode,
		PhotoURL:  user.PhotoURL,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
