package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/tatianab/wealth-quest/internal/autopilot"
	"github.com/tatianab/wealth-quest/internal/engine"
	"github.com/tatianab/wealth-quest/internal/log"
	"github.com/tatianab/wealth-quest/internal/models"
	"github.com/tatianab/wealth-quest/internal/session"
)

// Tick describes one scheduled month.
type Tick struct {
	State  models.GameState
	Report engine.Report
}

// Scheduler advances a session on a cron schedule.
type Scheduler struct {
	Cron    *cron.Cron
	Session *session.Session
	// Autopilot, when set, makes the player's moves before each month.
	Autopilot *autopilot.Policy
	// OnTick, when set, receives every advanced month. It runs on the
	// cron goroutine.
	OnTick func(Tick)

	logger *log.Logger
}

// New creates a Scheduler and registers the autoplay job on spec, a
// standard cron expression or descriptor such as "@every 3s".
func New(spec string, sess *session.Session, pilot *autopilot.Policy, logger *log.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = log.Discard()
	}
	s := &Scheduler{
		Cron:      cron.New(),
		Session:   sess,
		Autopilot: pilot,
		logger:    logger.WithComponent(log.ComponentScheduler),
	}
	if _, err := s.Cron.AddFunc(spec, func() { s.RunNow() }); err != nil {
		return nil, fmt.Errorf("register autoplay %q: %w", spec, err)
	}
	return s, nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the scheduler and returns a context that is done once a
// running tick has finished.
func (s *Scheduler) Stop() context.Context {
	ctx := s.Cron.Stop()
	s.logger.Info("scheduler stopped")
	return ctx
}

// RunNow executes one autoplay tick immediately.
func (s *Scheduler) RunNow() Tick {
	if s.Autopilot != nil {
		p := *s.Autopilot
		s.Session.Apply(p.Step)
	}
	state, report := s.Session.Advance()
	t := Tick{State: state, Report: report}
	if s.OnTick != nil {
		s.OnTick(t)
	}
	return t
}
