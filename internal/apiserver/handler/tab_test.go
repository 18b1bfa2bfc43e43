package handler

import (
	"net/http"
	"testing"

	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/tabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTab(t *testing.T, env *testEnv, token, path string, pinned bool) tabs.State {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/tabs/open", token, dto.TabOpenRequest{
		Path:   path,
		Pinned: pinned,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var state tabs.State
	decodeData(t, w, &state)
	return state
}

func TestOpenTabAppendsAndActivates(t *testing.T) {
	env := newTestEnv(t)

	state := openTab(t, env, env.userToken, "/inventory/lots", false)
	require.Len(t, state.Tabs, 1)
	assert.Equal(t, "inventory-lots", state.ActiveTabID)

	state = openTab(t, env, env.userToken, "/equipment/master", false)
	require.Len(t, state.Tabs, 2)
	assert.Equal(t, "equipment-master", state.ActiveTabID)
	// append order preserved
	assert.Equal(t, "inventory-lots", state.Tabs[0].ID)

	// re-opening an existing path activates instead of duplicating
	state = openTab(t, env, env.userToken, "/inventory/lots", false)
	require.Len(t, state.Tabs, 2)
	assert.Equal(t, "inventory-lots", state.ActiveTabID)
}

func TestCloseTabActivatesLeftNeighbor(t *testing.T) {
	env := newTestEnv(t)

	openTab(t, env, env.userToken, "/a", false)
	openTab(t, env, env.userToken, "/b", false)
	openTab(t, env, env.userToken, "/c", false)

	w := env.request(t, http.MethodPost, "/api/tabs/close", env.userToken, dto.TabTargetRequest{TabID: "c"})
	require.Equal(t, http.StatusOK, w.Code)

	var state tabs.State
	decodeData(t, w, &state)
	require.Len(t, state.Tabs, 2)
	assert.Equal(t, "b", state.ActiveTabID)
}

func TestPinnedTabSurvivesBulkClose(t *testing.T) {
	env := newTestEnv(t)

	openTab(t, env, env.userToken, "/dashboard", true)
	openTab(t, env, env.userToken, "/a", false)
	openTab(t, env, env.userToken, "/b", false)

	w := env.request(t, http.MethodPost, "/api/tabs/close-all", env.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state tabs.State
	decodeData(t, w, &state)
	require.Len(t, state.Tabs, 1)
	assert.Equal(t, "dashboard", state.Tabs[0].ID)
	assert.True(t, state.Tabs[0].Pinned)
}

func TestTabStateIsPerUser(t *testing.T) {
	env := newTestEnv(t)

	openTab(t, env, env.userToken, "/a", false)

	w := env.request(t, http.MethodGet, "/api/tabs", env.adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var state tabs.State
	decodeData(t, w, &state)
	assert.Empty(t, state.Tabs)
}

func TestActivateUnknownTabIsNoop(t *testing.T) {
	env := newTestEnv(t)

	openTab(t, env, env.userToken, "/a", false)

	w := env.request(t, http.MethodPost, "/api/tabs/activate", env.userToken, dto.TabTargetRequest{TabID: "ghost"})
	require.Equal(t, http.StatusOK, w.Code)

	var state tabs.State
	decodeData(t, w, &state)
	assert.Equal(t, "a", state.ActiveTabID)
}
