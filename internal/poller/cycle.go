package poller

import (
	"context"
	"time"

	"smsgate/internal/models"
	"smsgate/internal/poller/interfaces"
	"smsgate/internal/providers"
)

// Outcome is the terminal result of one poll cycle. The exit-code mapping is
// the contract consumed by the external wrapper that triggers the notifier.
type Outcome int

const (
	OutcomeNoNewMessages Outcome = iota
	OutcomeError
	OutcomeNewMessages
	OutcomeInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoNewMessages:
		return "no_new_messages"
	case OutcomeNewMessages:
		return "new_messages"
	case OutcomeInterrupted:
		return "interrupted"
	default:
		return "error"
	}
}

// ExitCode maps the outcome to the wrapper's exit-code contract:
// 0 no new SMS, 1 error, 2 new SMS forwarded, 130 interrupted.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeNoNewMessages:
		return 0
	case OutcomeNewMessages:
		return 2
	case OutcomeInterrupted:
		return 130
	default:
		return 1
	}
}

// Cycle runs one fetch-dedup-archive-persist invocation. Cancellation is
// cooperative and polled at exactly two checkpoints: before the fetch and
// after it. Once mutation of state or archive begins, the cycle runs to
// completion so the persisted record never represents a partial mutation.
type Cycle struct {
	transport interfaces.TransportInterface
	states    *StateStore
	archive   *ArchiveStore
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	now       func() time.Time
}

func NewCycle(transport interfaces.TransportInterface, states *StateStore, archive *ArchiveStore, logger providers.Logger, metrics providers.MetricsProviderInterface) *Cycle {
	return &Cycle{
		transport: transport,
		states:    states,
		archive:   archive,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// States exposes the cycle's state store for the status and reset commands.
func (c *Cycle) States() *StateStore {
	return c.states
}

func (c *Cycle) Run(ctx context.Context) Outcome {
	outcome := c.run(ctx)
	c.metrics.IncPollCycles(outcome.String())
	return outcome
}

func (c *Cycle) run(ctx context.Context) Outcome {
	if ctx.Err() != nil {
		c.logger.Infof(providers.TypePoll, "Shutdown requested before polling, exiting")
		return OutcomeInterrupted
	}

	msgs, err := c.transport.FetchMessages(ctx)
	if err != nil {
		c.logger.Errorf(providers.TypePoll, "Failed to fetch SMS: %s", err)
		return OutcomeError
	}

	if ctx.Err() != nil {
		c.logger.Infof(providers.TypePoll, "Shutdown requested after fetch, exiting")
		return OutcomeInterrupted
	}

	state := c.states.Load()
	c.logger.Infof(providers.TypePoll, "Last processed SMS ID: %d, Max ID seen: %d, Hashes tracked: %d",
		state.LastProcessedID, state.MaxIDSeen, len(state.ProcessedHashes))

	newMsgs := make([]*models.Message, 0, len(msgs))
	for _, msg := range msgs {
		if !state.IsNew(msg) {
			c.logger.Debugf(providers.TypePoll, "SMS #%d already processed (hash match)", msg.ID)
			continue
		}
		if state.SuspectedIDReset(msg) {
			c.logger.Infof(providers.TypePoll, "ID reset detected: current=%d, max_seen=%d", msg.ID, state.MaxIDSeen)
		}
		newMsgs = append(newMsgs, msg)
	}

	if len(newMsgs) == 0 {
		state.MarkCheck(c.now())
		if err := c.states.Save(state); err != nil {
			c.logger.Errorf(providers.TypePoll, "Critical: Failed to save state: %s", err)
			return OutcomeError
		}
		if len(msgs) == 0 {
			c.logger.Infof(providers.TypePoll, "No SMS in modem inbox")
		} else {
			c.logger.Infof(providers.TypePoll, "No new SMS (all %d already processed)", len(msgs))
		}
		return OutcomeNoNewMessages
	}

	c.logger.Infof(providers.TypePoll, "Found %d new SMS", len(newMsgs))

	// Archive failure is non-fatal: the archive is a secondary durability
	// mechanism relative to the dedup state.
	if _, err := c.archive.Append(newMsgs, c.now()); err != nil {
		c.metrics.IncArchiveFailures()
		c.logger.Warnf(providers.TypePoll, "Failed to archive SMS (non-critical): %s", err)
	}

	// Batch order matters: the last accepted message wins the latest_sms slot.
	for _, msg := range newMsgs {
		c.logger.Infof(providers.TypePoll, "  SMS #%d from %s: %s", msg.ID, msg.Number, snippet(msg.Content))
		state.UpdateWithMessage(msg, c.now())
	}

	if err := c.states.Save(state); err != nil {
		c.logger.Errorf(providers.TypePoll, "Critical: Failed to save state after processing SMS: %s", err)
		return OutcomeError
	}

	c.metrics.AddMessagesReceived(len(newMsgs))
	c.metrics.SetTrackedHashes(len(state.ProcessedHashes))
	c.logger.Infof(providers.TypePoll, "Processed %d new SMS, last_id=%d", len(newMsgs), state.LastProcessedID)

	return OutcomeNewMessages
}

func snippet(s string) string {
	const maxLen = 50
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
