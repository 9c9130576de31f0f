// Package runner implements a cooperative host loop that drives an
// interpreter over a hardware implementation. Instructions are executed at
// the configured clock rate while the timers are ticked at their own rate
// based on the elapsed wall time.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/config"
	"github.com/retroenv/retrochip8/hardware"
	"github.com/retroenv/retrochip8/interpreter"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// maxCatchUpTicks limits the timer ticks applied in a single iteration
// after the loop was paused. A timer can not count more than 255 ticks.
const maxCatchUpTicks = 256

var (
	// ErrShutdown is returned by Iterate when the hardware requested a shutdown.
	ErrShutdown = errors.New("shutdown requested")
	// ErrBreakpoint is returned by Iterate when execution reached a breakpoint.
	ErrBreakpoint = errors.New("breakpoint hit")
)

// Machine is the interpreter interface the runner drives.
type Machine interface {
	Step() error
	Tick()
	SetKeys(state [hardware.KeyCount]bool)
	PC() uint16
}

// Compile-time check to ensure the interpreter can be driven by the runner.
var _ Machine = (*interpreter.Interpreter)(nil)

// Runner is the host main loop. It is not safe for concurrent use.
type Runner struct {
	logger *log.Logger
	vm     Machine
	hw     hardware.Hardware
	cfg    config.Config

	breakpoints  set.Set[uint16]
	resume       bool // execute the next instruction even if it has a breakpoint
	tickInterval time.Duration
	lastTick     time.Time
	iterations   int
}

// New returns a runner for the given interpreter and hardware.
func New(logger *log.Logger, vm Machine, hw hardware.Hardware, cfg config.Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating runner: %w", err)
	}

	return &Runner{
		logger:       logger,
		vm:           vm,
		hw:           hw,
		cfg:          cfg,
		breakpoints:  set.New[uint16](),
		tickInterval: time.Second / time.Duration(cfg.TimerHz),
	}, nil
}

// NewFromConfig returns a runner driving a new interpreter that uses the
// logger and the quirks of the given configuration.
func NewFromConfig(cfg config.Config, hw hardware.Hardware) (*Runner, *interpreter.Interpreter, error) {
	logger := cfg.Logger()
	vm := interpreter.New(logger, hw, cfg.Quirks)

	r, err := New(logger, vm, hw, cfg)
	if err != nil {
		return nil, nil, err
	}
	return r, vm, nil
}

// AddBreakpoint stops execution before the instruction at the given address.
func (r *Runner) AddBreakpoint(address uint16) {
	r.breakpoints.Add(address)
}

// Iterations returns the number of completed loop iterations.
func (r *Runner) Iterations() int {
	return r.iterations
}

// Iterate runs one iteration of the main loop: yield to the hardware,
// update the keypad, execute one instruction and apply the timer ticks
// that are due at the given time.
// After a breakpoint was hit, the next call continues past it.
func (r *Runner) Iterate(now time.Time) error {
	if r.hw.Yield() {
		return ErrShutdown
	}

	r.vm.SetKeys(r.hw.KeyState())

	pc := r.vm.PC()
	if r.resume {
		r.resume = false
	} else if r.breakpoints.Contains(pc) {
		r.resume = true
		r.lastTick = time.Time{}
		return fmt.Errorf("%w at address 0x%03x", ErrBreakpoint, pc)
	}

	if err := r.vm.Step(); err != nil {
		return fmt.Errorf("stepping interpreter: %w", err)
	}

	r.tickTimers(now)
	r.iterations++
	return nil
}

// Run executes the main loop at the configured clock rate until the context
// is cancelled, the hardware requests a shutdown, a breakpoint is hit or the
// interpreter fails. A shutdown request returns nil.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.cfg.ClockHz))
	defer ticker.Stop()

	r.logger.Info("Starting execution",
		log.Stringer("system", arch.CHIP8System),
		log.Int("clock_hz", r.cfg.ClockHz),
		log.Int("timer_hz", r.cfg.TimerHz))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Execution cancelled", log.Int("iterations", r.iterations))
			return ctx.Err()

		case now := <-ticker.C:
			err := r.Iterate(now)
			switch {
			case err == nil:

			case errors.Is(err, ErrShutdown):
				r.logger.Info("Execution stopped", log.Int("iterations", r.iterations))
				return nil

			case errors.Is(err, ErrBreakpoint):
				r.logger.Info("Breakpoint hit", log.Hex("pc", r.vm.PC()))
				return err

			default:
				r.logger.Error("Execution failed",
					log.Hex("pc", r.vm.PC()),
					log.Err(err))
				return err
			}
		}
	}
}

// tickTimers applies one timer tick per elapsed tick interval since the
// last tick. The first call only sets the reference time.
func (r *Runner) tickTimers(now time.Time) {
	if r.lastTick.IsZero() {
		r.lastTick = now
		return
	}

	for ticks := 0; now.Sub(r.lastTick) >= r.tickInterval; ticks++ {
		if ticks == maxCatchUpTicks {
			r.lastTick = now
			return
		}
		r.vm.Tick()
		r.lastTick = r.lastTick.Add(r.tickInterval)
	}
}
