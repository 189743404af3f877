package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// fingerprintLen is the number of hex characters kept from the full digest.
// 64 bits of SHA-256 is plenty for an inbox-sized message space and keeps
// the state file compact.
const fingerprintLen = 16

// Message is a single inbound SMS as reported by the modem. Immutable once
// fetched. The JSON field names are the on-disk archive format.
type Message struct {
	ID      int    `json:"id"`
	Number  string `json:"number"`
	Time    string `json:"time"`
	Content string `json:"content"`
	Read    bool   `json:"read"`
}

// Fingerprint derives the content identity of a message from number, time
// and body. The modem-assigned ID is deliberately excluded: the modem's
// counter resets on reboot or power loss, while message content does not
// duplicate in practice. Missing fields hash as empty strings, so legacy
// archive entries still produce a stable, comparable value.
func (m *Message) Fingerprint() string {
	h := sha256.Sum256([]byte(m.Number + "|" + m.Time + "|" + m.Content))
	return hex.EncodeToString(h[:])[:fingerprintLen]
}

// LatestSMS is the denormalized copy of the most recently accepted message,
// kept in the poller state for handoff to the downstream notifier.
type LatestSMS struct {
	Number  string `json:"number"`
	Time    string `json:"time"`
	Content string `json:"content"`
}
