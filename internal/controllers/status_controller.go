package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"smsgate/internal/models"
	"smsgate/internal/poller"
	"smsgate/internal/providers"
)

// StatusController exposes the current poller state readout in daemon mode,
// the HTTP counterpart of the `smsgate status` command.
type StatusController struct {
	logger providers.Logger
	states *poller.StateStore
}

func NewStatusController(logger providers.Logger, states *poller.StateStore) *StatusController {
	return &StatusController{
		logger: logger,
		states: states,
	}
}

type statusResponse struct {
	LastProcessedID int               `json:"last_processed_sms_id"`
	MaxIDSeen       int               `json:"max_sms_id_seen"`
	TotalReceived   int               `json:"total_sms_received"`
	TrackedHashes   int               `json:"tracked_hashes"`
	LastCheck       string            `json:"last_check"`
	LastSMS         string            `json:"last_sms"`
	LatestSMS       *models.LatestSMS `json:"latest_sms,omitempty"`
}

func (sc *StatusController) GetStatus(w http.ResponseWriter, r *http.Request) {
	state := sc.states.Load()

	resp := statusResponse{
		LastProcessedID: state.LastProcessedID,
		MaxIDSeen:       state.MaxIDSeen,
		TotalReceived:   state.TotalReceived,
		TrackedHashes:   len(state.ProcessedHashes),
		LastCheck:       formatUnixSeconds(state.LastCheck),
		LastSMS:         formatUnixSeconds(state.LastSMSTimestamp),
	}
	if state.LatestSMS != (models.LatestSMS{}) {
		latest := state.LatestSMS
		resp.LatestSMS = &latest
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		sc.logger.Errorf(providers.TypeHTTP, "Failed to marshal status response: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func formatUnixSeconds(ts float64) string {
	if ts <= 0 {
		return "never"
	}
	return time.Unix(int64(ts), 0).Format("2006-01-02 15:04:05")
}
