package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smsgate/internal/models"
	"smsgate/internal/poller"
	"smsgate/internal/structures"
	"smsgate/internal/testutil"
)

func newStatusFixture(t *testing.T) (*StatusController, *poller.StateStore) {
	t.Helper()
	conf := &structures.Config{
		Poller: structures.PollerConfig{StateDir: t.TempDir()},
	}
	logger := &testutil.MockLogger{}
	states := poller.NewStateStore(conf, logger, testutil.NewMockMetrics())
	return NewStatusController(logger, states), states
}

func getStatus(t *testing.T, sc *StatusController) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	sc.GetStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestStatusController_FreshState(t *testing.T) {
	sc, _ := newStatusFixture(t)

	resp := getStatus(t, sc)

	assert.Equal(t, float64(0), resp["last_processed_sms_id"])
	assert.Equal(t, float64(0), resp["total_sms_received"])
	assert.Equal(t, "never", resp["last_check"])
	assert.Equal(t, "never", resp["last_sms"])
	assert.NotContains(t, resp, "latest_sms")
}

func TestStatusController_PopulatedState(t *testing.T) {
	sc, states := newStatusFixture(t)

	state := models.NewPollerState()
	state.UpdateWithMessage(&models.Message{
		ID:      5,
		Number:  "+491701234567",
		Time:    "08/15/25 10:30:00 AM",
		Content: "hello",
	}, time.Now())
	require.NoError(t, states.Save(state))

	resp := getStatus(t, sc)

	assert.Equal(t, float64(5), resp["last_processed_sms_id"])
	assert.Equal(t, float64(5), resp["max_sms_id_seen"])
	assert.Equal(t, float64(1), resp["total_sms_received"])
	assert.Equal(t, float64(1), resp["tracked_hashes"])
	assert.NotEqual(t, "never", resp["last_check"])

	latest, ok := resp["latest_sms"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "+491701234567", latest["number"])
	assert.Equal(t, "hello", latest["content"])
}

func TestFormatUnixSeconds(t *testing.T) {
	assert.Equal(t, "never", formatUnixSeconds(0))
	assert.Equal(t, "never", formatUnixSeconds(-1))

	ts := float64(time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local).Unix())
	assert.Equal(t, "2026-08-28 10:00:00", formatUnixSeconds(ts))
}
