package models

// StateFile is the raw on-disk shape of the poller state. Pointer fields
// distinguish absent from zero for the fields added after v1.0, so schema
// version detection works by field presence. Unknown extra fields are
// ignored on read.
type StateFile struct {
	LastProcessedID  int       `json:"last_processed_sms_id"`
	MaxIDSeen        *int      `json:"max_sms_id_seen"`
	LastCheck        float64   `json:"last_check"`
	TotalReceived    int       `json:"total_sms_received"`
	LastSMSTimestamp float64   `json:"last_sms_timestamp"`
	LatestSMS        LatestSMS `json:"latest_sms"`
	ProcessedHashes  *[]string `json:"processed_hashes"`
}

// MigrateStateFile lifts a raw state file to the current schema.
// A file missing processed_hashes gets an empty list; a file missing
// max_sms_id_seen is seeded from last_processed_sms_id. Returns the migrated
// state plus the names of synthesized fields for the caller to log.
// Pure transform, no I/O.
func MigrateStateFile(raw *StateFile) (*PollerState, []string) {
	state := &PollerState{
		LastProcessedID:  raw.LastProcessedID,
		LastCheck:        raw.LastCheck,
		TotalReceived:    raw.TotalReceived,
		LastSMSTimestamp: raw.LastSMSTimestamp,
		LatestSMS:        raw.LatestSMS,
	}

	var synthesized []string

	if raw.ProcessedHashes != nil {
		state.ProcessedHashes = *raw.ProcessedHashes
	} else {
		state.ProcessedHashes = []string{}
		synthesized = append(synthesized, "processed_hashes")
	}

	if raw.MaxIDSeen != nil {
		state.MaxIDSeen = *raw.MaxIDSeen
	} else {
		state.MaxIDSeen = raw.LastProcessedID
		synthesized = append(synthesized, "max_sms_id_seen")
	}

	return state, synthesized
}
