package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/apiserver/database"
	"github.com/harnesslab/wiremes/internal/auth/jwt"
	"github.com/harnesslab/wiremes/internal/common/config"
	"github.com/harnesslab/wiremes/internal/scan"
	"github.com/harnesslab/wiremes/internal/tabs"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	db         *fakeDB
	handler    *Handler
	router     *gin.Engine
	adminToken string
	userToken  string
	adminRole  *database.Role
	userRole   *database.Role
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newFakeDB()
	jwtService := mustNewJWTService()

	cfg := &config.ServerConfig{}
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.BaseURL = "/static/uploads"

	logger := zap.NewNop()
	tabMgr := tabs.NewManager(tabs.NewMemoryStore())
	scanMgr := scan.NewManager(logger, nil, func(ctx context.Context, sess *scan.Session, value string) {
		if lot, err := db.GetLotBySerial(ctx, value); err == nil {
			_ = db.CreateLotScan(ctx, &database.LotScan{
				LotID:     lot.ID,
				DeviceID:  sess.DeviceID,
				ScannedAt: time.Now(),
			})
		}
	})

	h := NewHandler(db, jwtService, cfg, logger, tabMgr, scanMgr, nil, nil)
	router := gin.New()
	h.RegisterRoutes(router)

	env := &testEnv{db: db, handler: h, router: router}
	env.seed(t, jwtService)
	return env
}

func (e *testEnv) seed(t *testing.T, jwtService *jwt.Service) {
	t.Helper()
	ctx := context.Background()

	e.adminRole = &database.Role{Code: "ADMIN", Name: "Administrator", IsSystem: true}
	require.NoError(t, e.db.CreateRole(ctx, e.adminRole))
	e.userRole = &database.Role{Code: "OPERATOR", Name: "Line Operator"}
	require.NoError(t, e.db.CreateRole(ctx, e.userRole))

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &database.User{Username: "admin", Password: string(hashed), RoleID: e.adminRole.ID, IsActive: true}
	require.NoError(t, e.db.CreateUser(ctx, admin))

	operator := &database.User{Username: "operator", Password: string(hashed), RoleID: e.userRole.ID, IsActive: true}
	require.NoError(t, e.db.CreateUser(ctx, operator))

	e.adminToken, err = jwtService.GenerateToken(admin.ID, admin.Username, e.adminRole.ID, e.adminRole.Code)
	require.NoError(t, err)
	e.userToken, err = jwtService.GenerateToken(operator.ID, operator.Username, e.userRole.ID, e.userRole.Code)
	require.NoError(t, err)
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "expected success envelope, got %s", w.Body.String())
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}
