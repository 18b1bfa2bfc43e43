package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/i18n"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers handles listing all users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	roleCodes := h.roleCodeIndex(c)
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u, roleCodes[u.RoleID]))
	}
	i18n.RespondData(c, out)
}

// CreateUser handles user creation
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if _, err := h.db.GetUserByUsername(c.Request.Context(), req.Username); err == nil {
		i18n.RespondWithError(c, i18n.ErrUsernameExists)
		return
	}

	role, err := h.db.GetRoleByID(c.Request.Context(), req.RoleID)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrRoleNotFound)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &database.User{
		Username:  req.Username,
		Password:  string(hashed),
		RoleID:    role.ID,
		IsActive:  isActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	h.logger.Info("user created",
		zap.String("username", user.Username),
		zap.String("role", role.Code))
	i18n.Created("Messages.User.Created").WithPayload(toUserResponse(user, role.Code)).Send(c)
}

// UpdateUser handles user updates
func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUserNotFound)
		return
	}

	roleCode := ""
	if req.RoleID != 0 {
		role, err := h.db.GetRoleByID(c.Request.Context(), req.RoleID)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrRoleNotFound)
			return
		}
		user.RoleID = role.ID
		roleCode = role.Code
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			i18n.RespondWithError(c, i18n.ErrInternalServer)
			return
		}
		user.Password = string(hashed)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = time.Now()

	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.User.Updated").WithPayload(toUserResponse(user, roleCode)).Send(c)
}

// DeleteUser handles user deletion
func (h *Handler) DeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if _, err := h.db.GetUserByID(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrUserNotFound)
		return
	}

	if err := h.db.DeleteUser(c.Request.Context(), id); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.User.Deleted").Send(c)
}

// UploadUserPhoto stores a profile photo and records its public URL
func (h *Handler) UploadUserPhoto(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	user, err := h.db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrUserNotFound)
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		i18n.RespondWithError(c, i18n.ErrBadRequest)
		return
	}

	if err := os.MkdirAll(h.cfg.Upload.Dir, 0o755); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	name := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	dst := filepath.Join(h.cfg.Upload.Dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.logger.Error("failed to store photo", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	user.PhotoURL = strings.TrimRight(h.cfg.Upload.BaseURL, "/") + "/" + name
	user.UpdatedAt = time.Now()
	if err := h.db.UpdateUser(c.Request.Context(), user); err != nil {
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}

	i18n.Success("Messages.User.PhotoUploaded").WithPayload(gin.H{"photoUrl": user.PhotoURL}).Send(c)
}

// roleCodeIndex maps role ids to codes for response assembly
func (h *Handler) roleCodeIndex(c *gin.Context) map[uint]string {
	index := map[uint]string{}
	roles, err := h.db.ListRoles(c.Request.Context())
	if err != nil {
		return index
	}
	for _, r := range roles {
		index[r.ID] = r.Code
	}
	return index
}

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
