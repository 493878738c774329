package gamemode

import (
	"fmt"
	"os"
	"path/filepath"
)

// Switcher owns the current mode and the active-config symlink. The symlink
// is the single source of truth the login manager reads; the in-memory mode
// only advances after the pointer on disk has been swapped, so a failed write
// leaves both in their previous, consistent state.
type Switcher struct {
	linkPath string
	targets  map[Mode]string
	mode     Mode
	logger   Logger
}

// NewSwitcher builds a switcher over the active-config pointer at linkPath.
// desktopConfig and gameConfig are the two static files the pointer may
// reference; they are never written, only linked to. The in-memory mode
// starts at desktop and is reconciled by Force.
func NewSwitcher(linkPath, desktopConfig, gameConfig string, logger Logger) *Switcher {
	return &Switcher{
		linkPath: linkPath,
		targets: map[Mode]string{
			ModeDesktop: desktopConfig,
			ModeGame:    gameConfig,
		},
		mode:   ModeDesktop,
		logger: logger,
	}
}

// Current returns the in-memory mode.
func (s *Switcher) Current() Mode {
	return s.mode
}

// Target returns the static config file backing the given mode.
func (s *Switcher) Target(m Mode) string {
	return s.targets[m]
}

// OnDisk reports which mode the live pointer references right now. A missing
// pointer, a plain file, or an unrecognized target all read as desktop, since
// that is what the login manager falls back to at install time.
func (s *Switcher) OnDisk() Mode {
	dest, err := os.Readlink(s.linkPath)
	if err != nil {
		return ModeDesktop
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(s.linkPath), dest)
	}
	if dest == s.targets[ModeGame] {
		return ModeGame
	}
	return ModeDesktop
}

// Force sets the mode unconditionally, repointing the symlink even when it
// already matches. Used by the startup reconciler; never restarts anything.
func (s *Switcher) Force(m Mode) error {
	if err := s.relink(m); err != nil {
		return err
	}
	s.mode = m
	return nil
}

// Toggle flips the mode and atomically repoints the active-config symlink at
// the counterpart static file. On failure the previous mode is returned and
// the in-memory state stays where the disk state is.
func (s *Switcher) Toggle() (Mode, error) {
	next := s.mode.Other()
	if err := s.relink(next); err != nil {
		return s.mode, err
	}
	s.mode = next
	return next, nil
}

// relink swaps the pointer with symlink-then-rename so the login manager
// never observes a missing or half-written pointer.
func (s *Switcher) relink(m Mode) error {
	target := s.targets[m]
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("%s config missing: %w", m, err)
	}

	tmp := s.linkPath + ".new"
	_ = os.Remove(tmp)
	if err := os.Symlink(target, tmp); err != nil {
		return fmt.Errorf("staging %s pointer: %w", m, err)
	}
	if err := os.Rename(tmp, s.linkPath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("activating %s pointer: %w", m, err)
	}
	s.logger.Debug("active config repointed", "mode", m.String(), "target", target)
	return nil
}
