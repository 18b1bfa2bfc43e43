package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harnesslab/wiremes/internal/common/config"
	"github.com/harnesslab/wiremes/internal/common/dto"
	"github.com/harnesslab/wiremes/internal/erp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openOQC(t *testing.T, env *testEnv, lotID uint) dto.OQCResponse {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/oqc", env.userToken, dto.CreateOQCRequest{
		LotID:     lotID,
		SampleQty: decimal.NewFromInt(5),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.OQCResponse
	decodeData(t, w, &resp)
	return resp
}

func TestCreateOQCHoldsLot(t *testing.T) {
	env := newTestEnv(t)
	lot := createLot(t, env, "LOT-001")

	oqc := openOQC(t, env, lot.ID)
	assert.Equal(t, "PENDING", oqc.Result)

	stored, err := env.db.GetLotByID(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.Equal(t, "HOLD", string(stored.Status))

	// a held lot cannot be inspected again
	w := env.request(t, http.MethodPost, "/api/oqc", env.userToken, dto.CreateOQCRequest{
		LotID:     lot.ID,
		SampleQty: decimal.NewFromInt(2),
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJudgeOQCPassReleasesLot(t *testing.T) {
	env := newTestEnv(t)
	lot := createLot(t, env, "LOT-001")
	oqc := openOQC(t, env, lot.ID)

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/oqc/%d/judge", oqc.ID), env.userToken, dto.JudgeOQCRequest{
		Result: "PASS",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var judged dto.OQCResponse
	decodeData(t, w, &judged)
	assert.Equal(t, "PASS", judged.Result)
	assert.Equal(t, "operator", judged.InspectedBy)
	require.NotNil(t, judged.InspectedAt)

	stored, err := env.db.GetLotByID(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.Equal(t, "IN_STOCK", string(stored.Status))

	// double judgement is rejected
	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/oqc/%d/judge", oqc.ID), env.userToken, dto.JudgeOQCRequest{
		Result: "FAIL",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJudgeOQCFailKeepsHold(t *testing.T) {
	env := newTestEnv(t)
	lot := createLot(t, env, "LOT-001")
	oqc := openOQC(t, env, lot.ID)

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/oqc/%d/judge", oqc.ID), env.userToken, dto.JudgeOQCRequest{
		Result: "FAIL",
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.db.GetLotByID(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.Equal(t, "HOLD", string(stored.Status))
}

func TestShipmentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	lot := createLot(t, env, "LOT-001")

	w := env.request(t, http.MethodPost, "/api/shipments", env.userToken, dto.CreateShipmentRequest{
		LotID:       lot.ID,
		Destination: "Busan",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var shipment dto.ShipmentResponse
	decodeData(t, w, &shipment)
	assert.Equal(t, "READY", shipment.Status)

	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/shipments/%d/dispatch", shipment.ID), env.userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var shipped dto.ShipmentResponse
	decodeData(t, w, &shipped)
	assert.Equal(t, "SHIPPED", shipped.Status)
	require.NotNil(t, shipped.ShippedAt)

	stored, err := env.db.GetLotByID(context.Background(), lot.ID)
	require.NoError(t, err)
	assert.Equal(t, "SHIPPED", string(stored.Status))

	// double dispatch is rejected
	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/shipments/%d/dispatch", shipment.ID), env.userToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestShipmentRequiresLotInStock(t *testing.T) {
	env := newTestEnv(t)
	lot := createLot(t, env, "LOT-001")
	openOQC(t, env, lot.ID)

	w := env.request(t, http.MethodPost, "/api/shipments", env.userToken, dto.CreateShipmentRequest{
		LotID:       lot.ID,
		Destination: "Busan",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

// Dispatch completes even when the ERP endpoint is down.
func TestDispatchSurvivesERPFailure(t *testing.T) {
	env := newTestEnv(t)

	erpSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer erpSrv.Close()

	env.handler.erp = erp.NewClient(env.handler.logger, config.ERPConfig{BaseURL: erpSrv.URL})

	lot := createLot(t, env, "LOT-001")
	w := env.request(t, http.MethodPost, "/api/shipments", env.userToken, dto.CreateShipmentRequest{
		LotID:       lot.ID,
		Destination: "Incheon",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var shipment dto.ShipmentResponse
	decodeData(t, w, &shipment)

	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/shipments/%d/dispatch", shipment.ID), env.userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
