// Package settings holds the player's display preferences: target frame
// rate and VSync. The game loop derives its tick rate from them.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// Unlimited is the frame rate value meaning "as fast as possible".
const Unlimited = -1

// Preference keys used when persisting settings.
const (
	KeyTargetFrameRate = "TargetFrameRate"
	KeyVSync           = "VSync"
)

const (
	// DefaultFrameRate is used when nothing is saved.
	DefaultFrameRate = 60
	// vsyncRate is the refresh rate a terminal is assumed to have.
	vsyncRate = 60
	// unlimitedCap bounds Unlimited so the ticker never spins.
	unlimitedCap = 240
	// defaultIndex is the FrameRates index shown for an unknown saved rate.
	defaultIndex = 1
)

// FrameRates are the choices offered in the settings screen.
var FrameRates = []int{30, 60, 120, 144, 240, Unlimited}

// ErrInvalidFrameRate is returned for rates that are neither positive nor
// Unlimited.
var ErrInvalidFrameRate = errors.New("invalid frame rate")

// Settings is the persisted display configuration.
type Settings struct {
	TargetFrameRate int  `yaml:"target_frame_rate"`
	VSync           bool `yaml:"vsync"`
}

// Default returns 60 FPS with VSync off.
func Default() Settings {
	return Settings{TargetFrameRate: DefaultFrameRate}
}

// SetFrameRate changes the target rate. VSync is left as is; while it is
// on the target has no effect.
func (s *Settings) SetFrameRate(rate int) error {
	if rate == 0 || rate < Unlimited {
		return fmt.Errorf("settings: %d: %w", rate, ErrInvalidFrameRate)
	}
	s.TargetFrameRate = rate
	return nil
}

// Preset selects a fixed rate and turns VSync off.
func (s *Settings) Preset(rate int) error {
	if err := s.SetFrameRate(rate); err != nil {
		return err
	}
	s.VSync = false
	return nil
}

// TickRate is the number of game updates per second these settings produce.
func (s Settings) TickRate() int {
	switch {
	case s.VSync:
		return vsyncRate
	case s.TargetFrameRate == Unlimited:
		return unlimitedCap
	case s.TargetFrameRate <= 0:
		return DefaultFrameRate
	case s.TargetFrameRate > unlimitedCap:
		return unlimitedCap
	default:
		return s.TargetFrameRate
	}
}

// TickInterval is the duration between game updates.
func (s Settings) TickInterval() time.Duration {
	return time.Second / time.Duration(s.TickRate())
}

// String describes the effective target, e.g. "VSync" or "120 FPS".
func (s Settings) String() string {
	if s.VSync {
		return "VSync"
	}
	return Label(s.TargetFrameRate)
}

// Label returns the display name of a frame rate choice.
func Label(rate int) string {
	if rate == Unlimited {
		return "Unlimited"
	}
	return strconv.Itoa(rate) + " FPS"
}

// IndexOf returns the position of rate in FrameRates, or the 60 FPS entry
// when rate is not one of the choices.
func IndexOf(rate int) int {
	for i, r := range FrameRates {
		if r == rate {
			return i
		}
	}
	return defaultIndex
}

// Store is a string key/value preference store.
type Store interface {
	GetPreference(ctx context.Context, key string) (value string, ok bool, err error)
	SetPreference(ctx context.Context, key, value string) error
}

// Load reads settings from store. Missing or malformed values fall back to
// the defaults and are logged; only store errors are returned.
func Load(ctx context.Context, store Store, logger *log.Logger) (Settings, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := Default()

	raw, ok, err := store.GetPreference(ctx, KeyTargetFrameRate)
	if err != nil {
		return s, fmt.Errorf("settings: load frame rate: %w", err)
	}
	if ok {
		rate, perr := strconv.Atoi(raw)
		if perr == nil {
			perr = s.SetFrameRate(rate)
		}
		if perr != nil {
			logger.Warn("ignoring saved frame rate", "value", raw, "err", perr)
		}
	}

	raw, ok, err = store.GetPreference(ctx, KeyVSync)
	if err != nil {
		return s, fmt.Errorf("settings: load vsync: %w", err)
	}
	if ok {
		s.VSync = raw == "1"
	}

	return s, nil
}

// Save writes s to store. VSync is stored as "1" or "0".
func Save(ctx context.Context, store Store, s Settings) error {
	if err := store.SetPreference(ctx, KeyTargetFrameRate, strconv.Itoa(s.TargetFrameRate)); err != nil {
		return fmt.Errorf("settings: save frame rate: %w", err)
	}
	vsync := "0"
	if s.VSync {
		vsync = "1"
	}
	if err := store.SetPreference(ctx, KeyVSync, vsync); err != nil {
		return fmt.Errorf("settings: save vsync: %w", err)
	}
	return nil
}
