package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/harnesslab/wiremes/internal/common/cnst"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRole(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/roles", env.adminToken, dto.CreateRoleRequest{
			Code: "QA_INSPECTOR",
			Name: "QA Inspector",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp dto.RoleResponse
		decodeData(t, w, &resp)
		assert.Equal(t, "QA_INSPECTOR", resp.Code)
		assert.False(t, resp.IsSystem)
	})

	t.Run("invalid code", func(t *testing.T) {
		for _, code := range []string{"qa_inspector", "1QA", "QA-INSPECTOR", ""} {
			w := env.request(t, http.MethodPost, "/api/roles", env.adminToken, dto.CreateRoleRequest{
				Code: code,
				Name: "Bad",
			})
			assert.Equal(t, http.StatusBadRequest, w.Code, "code %q", code)
		}
	})

	t.Run("duplicate code", func(t *testing.T) {
		w := env.request(t, http.MethodPost, "/api/roles", env.adminToken, dto.CreateRoleRequest{
			Code: "QA_INSPECTOR",
			Name: "Duplicate",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUpdateRoleCodeImmutable(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d", env.userRole.ID), env.adminToken, map[string]interface{}{
		"code": "RENAMED",
		"name": "Renamed",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// sending the unchanged code is fine
	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d", env.userRole.ID), env.adminToken, map[string]interface{}{
		"code": "OPERATOR",
		"name": "Renamed",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RoleResponse
	decodeData(t, w, &resp)
	assert.Equal(t, "Renamed", resp.Name)
	assert.Equal(t, "OPERATOR", resp.Code)
}

func TestSystemRoleProtected(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d", env.adminRole.ID), env.adminToken, map[string]interface{}{
		"name": "Hacked",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodDelete, fmt.Sprintf("/api/roles/%d", env.adminRole.ID), env.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d/permissions", env.adminRole.ID), env.adminToken, dto.SavePermissionsRequest{
		MenuCodes: []string{"dashboard"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteRoleInUse(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/roles/%d", env.userRole.ID), env.adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSavePermissionsRejectsUnknownCode(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d/permissions", env.userRole.ID), env.adminToken, dto.SavePermissionsRequest{
		MenuCodes: []string{"dashboard", "no-such-menu"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminPermissionViewIsDisabledAndTotal(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/roles/%d/permissions", env.adminRole.ID), env.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view menu.View
	decodeData(t, w, &view)
	assert.True(t, view.Disabled)
	assert.ElementsMatch(t, cnst.AllMenuCodes(), view.Codes)
}

// Toggling a parent group checks all of its children, the saved set
// survives a reload, and the parent reports allChecked on re-read.
func TestQualityGroupRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/roles", env.adminToken, dto.CreateRoleRequest{
		Code: "QA_INSPECTOR",
		Name: "QA Inspector",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var role dto.RoleResponse
	decodeData(t, w, &role)

	// toggle the quality parent on an empty set
	set := menu.NewPermissionSet(nil)
	set.ToggleParent("quality", cnst.ChildrenOf("quality"), true)

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d/permissions", role.ID), env.adminToken, dto.SavePermissionsRequest{
		MenuCodes: set.Codes(),
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/roles/%d/permissions", role.ID), env.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view menu.View
	decodeData(t, w, &view)
	assert.ElementsMatch(t, []string{"quality", "qc-defect", "qc-repair"}, view.Codes)
	assert.False(t, view.Disabled)
	require.Contains(t, view.ParentStates, "quality")
	assert.True(t, view.ParentStates["quality"].AllChecked)
	assert.False(t, view.ParentStates["quality"].Indeterminate)
}

func TestPartialGroupIsIndeterminate(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/roles/%d/permissions", env.userRole.ID), env.adminToken, dto.SavePermissionsRequest{
		MenuCodes: []string{"qc-defect"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, fmt.Sprintf("/api/roles/%d/permissions", env.userRole.ID), env.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var view menu.View
	decodeData(t, w, &view)
	require.Contains(t, view.ParentStates, "quality")
	assert.False(t, view.ParentStates["quality"].AllChecked)
	assert.True(t, view.ParentStates["quality"].Indeterminate)
}

func TestMenuTree(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/menu", env.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var items []cnst.MenuItem
	decodeData(t, w, &items)
	assert.Equal(t, len(cnst.MenuTree), len(items))
}
