package gamemode

import (
	"context"
	"fmt"
	"time"
)

const defaultPollInterval = 10 * time.Millisecond

// VTSwitcher brings the greeter's virtual terminal to the foreground after a
// switch into game mode. Optional.
type VTSwitcher interface {
	SwitchVT() error
}

// Service drives the whole core: it reconciles the pointer at startup, then
// runs the single-threaded poll loop that feeds the edge detector and commits
// toggles. Toggle side effects (pointer swap, service restart) run
// synchronously on the loop goroutine, so a second toggle can never race one
// in flight.
type Service struct {
	source   Source
	switcher *Switcher
	detector *EdgeDetector
	restart  Restarter
	guard    SessionGuard
	vt       VTSwitcher
	logger   Logger
	interval time.Duration
}

// ServiceConfig wires a Service. Guard and VT are optional; PollInterval
// defaults to 10ms when zero.
type ServiceConfig struct {
	Source       Source
	Switcher     *Switcher
	Detector     *EdgeDetector
	Restarter    Restarter
	Guard        SessionGuard
	VT           VTSwitcher
	Logger       Logger
	PollInterval time.Duration
}

func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("event source is nil")
	}
	if cfg.Switcher == nil {
		return nil, fmt.Errorf("mode switcher is nil")
	}
	if cfg.Detector == nil {
		return nil, fmt.Errorf("edge detector is nil")
	}
	if cfg.Restarter == nil {
		return nil, fmt.Errorf("restarter is nil")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Service{
		source:   cfg.Source,
		switcher: cfg.Switcher,
		detector: cfg.Detector,
		restart:  cfg.Restarter,
		guard:    cfg.Guard,
		vt:       cfg.VT,
		logger:   cfg.Logger,
		interval: interval,
	}, nil
}

// Reconcile forces the pointer back to desktop mode before the loop starts,
// so a crash mid-session never leaves the machine booting into a game-mode
// login screen. No restart is issued; the correction only matters the next
// time the login manager starts. A failure here is a startup error and fatal
// to the caller.
func (s *Service) Reconcile() error {
	if prev := s.switcher.OnDisk(); prev == ModeGame {
		s.logger.Info("previous run left game mode active, resetting")
	}
	if err := s.switcher.Force(ModeDesktop); err != nil {
		return fmt.Errorf("resetting to desktop mode: %w", err)
	}
	s.logger.Info("mode reconciled", "mode", s.switcher.Current().String())
	return nil
}

// Run polls for button events until the context is canceled. Device-level
// poll failures are logged and retried; they never stop the loop.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("waiting for gamepad input", "poll_interval", s.interval.String())
	for {
		if ctx.Err() != nil {
			return nil
		}

		events, gone, err := s.source.Poll()
		if err != nil {
			s.logger.Warn("device poll failed", "err", err)
			if !sleepCtx(ctx, s.interval) {
				return nil
			}
			continue
		}

		s.step(events, gone)

		if len(events) == 0 {
			if !sleepCtx(ctx, s.interval) {
				return nil
			}
		}
	}
}

// step processes one poll batch: disconnect cleanup, session guarding, edge
// detection, and toggle commits.
func (s *Service) step(events []ButtonEvent, gone []string) {
	for _, dev := range gone {
		s.detector.Forget(dev)
		s.logger.Info("gamepad disconnected", "device", dev)
	}
	if len(events) == 0 {
		return
	}

	if s.sessionActive() {
		s.logger.Debug("user session active on greeter tty, ignoring gamepad input")
		return
	}

	for _, ev := range events {
		s.logger.Debug("button event", "device", ev.Device, "code", ev.Code, "pressed", ev.Pressed)
		if s.detector.Observe(ev) {
			s.commitToggle()
		}
	}
}

// commitToggle performs the pointer swap and then the privileged restart. A
// failed swap rolls back in memory (nothing changed on disk); a failed
// restart keeps the swap, since the config itself is valid and takes effect
// on the next successful restart.
func (s *Service) commitToggle() {
	mode, err := s.switcher.Toggle()
	if err != nil {
		s.logger.Error("mode switch failed, staying in current mode", "mode", mode.String(), "err", err)
		return
	}
	s.logger.Info("mode switched", "mode", mode.String(), "target", s.switcher.Target(mode))

	if s.vt != nil && mode == ModeGame {
		if err := s.vt.SwitchVT(); err != nil {
			s.logger.Warn("vt switch failed", "err", err)
		}
	}

	if err := s.restart.Restart(); err != nil {
		s.logger.Error("login manager restart failed, config applies on next restart", "err", err)
	}
}

func (s *Service) sessionActive() bool {
	if s.guard == nil {
		return false
	}
	active, err := s.guard.SessionActive()
	if err != nil {
		s.logger.Warn("session check failed", "err", err)
		return false
	}
	return active
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
