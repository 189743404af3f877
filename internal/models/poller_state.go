package models

import "time"

// Hash list growth bounds. When the list would exceed maxTrackedHashes it is
// cut back to the most recent truncatedHashes entries, leaving ~500 inserts
// of headroom before the next truncation (hysteresis).
const (
	maxTrackedHashes = 1000
	truncatedHashes  = 500
)

// PollerState is the single persistent record describing poller progress.
// Field names are wire-compatible with pre-existing state files.
type PollerState struct {
	LastProcessedID  int       `json:"last_processed_sms_id"`
	MaxIDSeen        int       `json:"max_sms_id_seen"`
	LastCheck        float64   `json:"last_check"`
	TotalReceived    int       `json:"total_sms_received"`
	LastSMSTimestamp float64   `json:"last_sms_timestamp"`
	LatestSMS        LatestSMS `json:"latest_sms"`
	ProcessedHashes  []string  `json:"processed_hashes"`
}

func NewPollerState() *PollerState {
	return &PollerState{ProcessedHashes: []string{}}
}

// IsNew reports whether the message has not been processed before.
// Deduplication is purely fingerprint-based: it is immune to modem-side ID
// counter resets and never yields a false negative from an ID discontinuity.
func (s *PollerState) IsNew(msg *Message) bool {
	return !s.hasHash(msg.Fingerprint())
}

// SuspectedIDReset reports whether the message's modem ID sits below the
// highest ID ever observed, which indicates the modem's counter restarted.
// Informational only; it never affects the dedup decision.
func (s *PollerState) SuspectedIDReset(msg *Message) bool {
	return s.MaxIDSeen > 0 && msg.ID < s.MaxIDSeen
}

// UpdateWithMessage records a newly accepted message. Callers must apply
// messages in the batch's natural order so the true most-recent message
// wins the latest_sms slot.
func (s *PollerState) UpdateWithMessage(msg *Message, now time.Time) {
	if msg.ID > s.LastProcessedID {
		s.LastProcessedID = msg.ID
	}
	if msg.ID > s.MaxIDSeen {
		s.MaxIDSeen = msg.ID
	}

	hash := msg.Fingerprint()
	if !s.hasHash(hash) {
		s.ProcessedHashes = append(s.ProcessedHashes, hash)
		if len(s.ProcessedHashes) > maxTrackedHashes {
			s.ProcessedHashes = s.ProcessedHashes[len(s.ProcessedHashes)-truncatedHashes:]
		}
	}

	ts := float64(now.UnixNano()) / float64(time.Second)
	s.LastCheck = ts
	s.LastSMSTimestamp = ts
	s.TotalReceived++
	s.LatestSMS = LatestSMS{
		Number:  msg.Number,
		Time:    msg.Time,
		Content: msg.Content,
	}
}

// MarkCheck records a completed poll cycle that accepted no messages.
func (s *PollerState) MarkCheck(now time.Time) {
	s.LastCheck = float64(now.UnixNano()) / float64(time.Second)
}

func (s *PollerState) hasHash(hash string) bool {
	for _, h := range s.ProcessedHashes {
		if h == hash {
			return true
		}
	}
	return false
}
