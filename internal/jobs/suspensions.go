package jobs

import (
	"context"
	"time"

	"care-hub-go/pkg/logger"
	"github.com/robfig/cron/v3"
)

// DefaultSuspensionSchedule runs shortly after midnight, when the previous
// day's suspensions have ended.
const DefaultSuspensionSchedule = "0 5 0 * * *"

type SuspensionHealer interface {
	HealExpired(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	healer  SuspensionHealer
	log     logger.Logger
	timeout time.Duration
}

func NewScheduler(healer SuspensionHealer, log logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		healer:  healer,
		log:     log,
		timeout: time.Minute,
	}
}

func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		spec = DefaultSuspensionSchedule
	}
	if _, err := s.cron.AddFunc(spec, s.RunSuspensionSweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("suspension sweep scheduled", "schedule", spec)
	return nil
}

// Stop waits for a running sweep to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) RunSuspensionSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	healed, err := s.healer.HealExpired(ctx)
	if err != nil {
		s.log.InternalError("suspension sweep failed", err, "healed", healed)
		return
	}
	if healed > 0 {
		s.log.Info("suspension sweep reactivated users", "healed", healed)
	}
}
