package poller

import (
	"context"
	"sync"

	"github.com/roylee0704/gron"

	"smsgate/internal/poller/interfaces"
	"smsgate/internal/providers"
	"smsgate/internal/structures"
)

// Scheduler drives the daemon mode: a poll cycle every poll interval and,
// when enabled, periodic compaction of closed months' archives.
type Scheduler struct {
	config    *structures.Config
	logger    providers.Logger
	cycle     *Cycle
	compactor *Compactor
	cron      *gron.Cron
	cancel    context.CancelFunc
	opsMu     sync.Mutex
}

func (s *Scheduler) Init() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Poller.PollInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		outcome := s.cycle.Run(ctx)
		s.logger.Infof(providers.TypePoll, "Poll cycle finished: %s", outcome)
	})

	if s.config.Archive.Compaction {
		s.cron.AddFunc(gron.Every(s.config.Archive.CompactionInterval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			if _, err := s.compactor.Compact(s.cycle.now()); err != nil {
				s.logger.Errorf(providers.TypePoll, "Compaction error: %s", err)
			}
		})
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.cron != nil {
		s.cron.Stop()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, cycle *Cycle, compactor *Compactor) interfaces.SchedulerInterface {
	return &Scheduler{
		config:    config,
		logger:    logger,
		cycle:     cycle,
		compactor: compactor,
	}
}
