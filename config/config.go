// Package config handles interpreter configuration and setup.
package config

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/interpreter"
	"github.com/retroenv/retrogolib/log"
)

// Default rates in Hz.
const (
	DefaultClockHz = 700
	DefaultTimerHz = 60
)

// MaxRateHz is the highest accepted clock or timer rate. The period of
// every accepted rate is at least one microsecond.
const MaxRateHz = 1_000_000

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("invalid config")

// Config contains the settings of an interpreter run. The runner package
// builds the logger and the interpreter quirks from it in NewFromConfig.
type Config struct {
	ClockHz int // instructions executed per second
	TimerHz int // delay and sound timer decrements per second

	Debug bool // enable debug logging including an instruction trace
	Quiet bool // only log errors

	Quirks interpreter.Quirks
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ClockHz: DefaultClockHz,
		TimerHz: DefaultTimerHz,
	}
}

// Validate checks that the configured rates can drive a run.
func (c Config) Validate() error {
	if c.ClockHz <= 0 || c.ClockHz > MaxRateHz {
		return fmt.Errorf("%w: clock rate %d Hz", ErrInvalidConfig, c.ClockHz)
	}
	if c.TimerHz <= 0 || c.TimerHz > MaxRateHz {
		return fmt.Errorf("%w: timer rate %d Hz", ErrInvalidConfig, c.TimerHz)
	}
	return nil
}

// Logger creates a logger with the configured level.
func (c Config) Logger() *log.Logger {
	cfg := log.DefaultConfig()
	if c.Debug {
		cfg.Level = log.DebugLevel
	} else if c.Quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
