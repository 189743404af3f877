package poller

import (
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"

	"smsgate/internal/models"
	"smsgate/internal/providers"
	"smsgate/internal/structures"
)

const stateFileName = "sms-poller-state.json"

// StateStore persists the single PollerState record. Writes are atomic
// (temp file + fsync + rename) so a crash mid-write never corrupts the
// previous durable value. Not safe for concurrent poller processes; the
// design assumes one poller per state directory.
type StateStore struct {
	path    string
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStateStore(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *StateStore {
	return &StateStore{
		path:    filepath.Join(conf.Poller.StateDir, stateFileName),
		logger:  logger,
		metrics: metrics,
	}
}

// Load returns the persisted poller state. It never fails the cycle: a
// missing file yields defaults, a corrupt file is logged and replaced by
// defaults, and legacy files are migrated by field presence.
func (s *StateStore) Load() *models.PollerState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Infof(providers.TypePoll, "No state file found, initializing new state")
		} else {
			s.logger.Warnf(providers.TypePoll, "Failed to read state file: %s, using defaults", err)
		}
		return models.NewPollerState()
	}

	var raw models.StateFile
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warnf(providers.TypePoll, "Failed to parse state file: %s, using defaults", err)
		return models.NewPollerState()
	}

	state, synthesized := models.MigrateStateFile(&raw)
	for _, field := range synthesized {
		s.logger.Infof(providers.TypePoll, "Migrated state: added %s field", field)
	}
	s.logger.Debugf(providers.TypePoll, "Loaded state: last_processed_sms_id=%d, total=%d",
		state.LastProcessedID, state.TotalReceived)
	return state
}

// Save writes the state atomically. A failed save must surface to the
// caller: dedup history lives only in this record, and silently
// proceeding would make a later cycle miss messages.
func (s *StateStore) Save(state *models.PollerState) error {
	start := time.Now()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := s.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(jsonData)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, s.path); err != nil {
		return err
	}

	s.metrics.ObserveStateSaveDuration(time.Since(start))
	s.logger.Debugf(providers.TypePoll, "State saved: last_processed_sms_id=%d", state.LastProcessedID)
	return nil
}

// Reset overwrites the durable record with defaults. Emergency use.
func (s *StateStore) Reset() error {
	return s.Save(models.NewPollerState())
}
