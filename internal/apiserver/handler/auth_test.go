package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid credentials", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
			Username: "admin",
			Password: "admin123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.LoginResponse
		decodeData(t, w, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "admin", resp.User.Username)
		assert.Equal(t, "ADMIN", resp.User.RoleCode)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
			Username: "admin",
			Password: "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
			Username: "ghost",
			Password: "admin123",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("disabled user", func(t *testing.T) {
		user, err := env.db.GetUserByUsername(context.Background(), "operator")
		require.NoError(t, err)
		user.IsActive = false
		require.NoError(t, env.db.UpdateUser(context.Background(), user))
		defer func() {
			user.IsActive = true
			_ = env.db.UpdateUser(context.Background(), user)
		}()

		w := env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
			Username: "operator",
			Password: "admin123",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/change-password", env.userToken, dto.ChangePasswordRequest{
		OldPassword: "admin123",
		NewPassword: "newpass456",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// old password no longer works
	w = env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "operator",
		Password: "admin123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{
		Username: "operator",
		Password: "newpass456",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChangePasswordWrongOld(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/change-password", env.userToken, dto.ChangePasswordRequest{
		OldPassword: "nope",
		NewPassword: "newpass456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/auth/me", env.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.UserResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "admin", resp.Username)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/lots", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRoutesRejectRegularUsers(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/users", env.userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.request(t, http.MethodGet, "/api/users", env.adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
