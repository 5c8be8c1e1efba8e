package oven

import (
	"context"
	"fmt"
	"time"

	"github.com/mkazantsev/ovenctl/internal/config"
	"github.com/mkazantsev/ovenctl/internal/display"
	"github.com/mkazantsev/ovenctl/internal/input"
	"github.com/mkazantsev/ovenctl/internal/logger"
	"github.com/mkazantsev/ovenctl/internal/telemetry"
)

// Options controls the ovenctl controller process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Broker overrides the MQTT broker address from config when specified.
	Broker string
	// PrintState reads the panel levels once, prints them and exits.
	PrintState bool
}

// Run starts the control loop and blocks until the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "ovenctl")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	// The controller owns exclusive GPIO lines; a second instance would
	// fight over them.
	if err := ensureSingleInstance(); err != nil {
		return err
	}

	source, err := input.NewGPIOSource(cfg.GPIOChip, inputPins(cfg.Pins))
	if err != nil {
		return fmt.Errorf("init input source: %w", err)
	}

	defer func() {
		if err := source.Close(); err != nil {
			logger.Errorf(ctx, "Failed to close input source: %v", err)
		}
	}()

	if opts.PrintState {
		return printState(ctx, source)
	}

	broker := cfg.Broker
	if opts.Broker != "" {
		broker = opts.Broker
	}

	var publisher telemetry.Publisher

	if broker != "" {
		publisher, err = telemetry.NewMQTTPublisher(broker)
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}

		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Errorf(ctx, "Failed to close telemetry publisher: %v", err)
			}
		}()
	}

	machine, err := NewMachine(cfg.ReferenceHz)
	if err != nil {
		return fmt.Errorf("initialise machine: %w", err)
	}

	logger.InfoKV(ctx, "Controller starting",
		"reference_hz", cfg.ReferenceHz, "gpio_chip", cfg.GPIOChip, "broker", broker)

	publishSystem(ctx, publisher, telemetry.SystemEvent{
		Timestamp: time.Now(),
		Event:     "STARTUP",
		Retained:  true,
	})

	ticker := time.NewTicker(time.Second / time.Duration(cfg.ReferenceHz))
	defer ticker.Stop()

	heartbeatCycles := uint64(0)
	if cfg.Heartbeat > 0 {
		heartbeatCycles = uint64(cfg.Heartbeat/time.Second) * uint64(cfg.ReferenceHz)
	}

	err = loop(ctx, machine, source, publisher, nopSink{}, ticker.C, heartbeatCycles)

	publishSystem(ctx, publisher, telemetry.SystemEvent{
		Timestamp: time.Now(),
		Event:     "SHUTDOWN",
		Reason:    "signal",
		Retained:  true,
	})

	logger.Info(ctx, "Controller stopped")

	return err
}

// loop is the synchronous control loop: one machine cycle per scheduler
// tick, display and telemetry fed from the cycle's status. Split out so
// tests can drive it with fakes and a hand-fed tick channel.
func loop(
	ctx context.Context,
	machine *Machine,
	source input.Source,
	publisher telemetry.Publisher,
	sink display.Sink,
	tick <-chan time.Time,
	heartbeatCycles uint64,
) error {
	started := time.Now()
	previousMode := machine.ctrl.Mode()

	var cycles uint64

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-tick:
			events, levels, err := source.Poll()
			if err != nil {
				logger.Errorf(ctx, "Input poll failed: %v", err)

				continue
			}

			status := machine.Cycle(events, levels)
			cycles++

			if err := sink.Show(status.Frame); err != nil {
				logger.Errorf(ctx, "Display update failed: %v", err)
			}

			if status.Mode != previousMode {
				logger.InfoKV(ctx, "Mode changed",
					"from", previousMode, "to", status.Mode,
					"remaining", fmt.Sprintf("%02d:%02d", status.Minutes, status.Seconds),
					"power", status.Power, "door_open", levels.DoorOpen)

				publishTransition(ctx, publisher, telemetry.Transition{
					Timestamp: time.Now(),
					From:      previousMode.String(),
					To:        status.Mode.String(),
					Minutes:   status.Minutes,
					Seconds:   status.Seconds,
					Power:     status.Power,
					DoorOpen:  levels.DoorOpen,
				})

				previousMode = status.Mode
			}

			if heartbeatCycles > 0 && cycles%heartbeatCycles == 0 {
				publishSystem(ctx, publisher, telemetry.SystemEvent{
					Timestamp: time.Now(),
					Event:     "HEARTBEAT",
					Uptime:    time.Since(started),
					Cycles:    cycles,
				})
			}
		}
	}
}

// publishTransition forwards a transition; failures are logged, never fatal.
func publishTransition(ctx context.Context, publisher telemetry.Publisher, t telemetry.Transition) {
	if publisher == nil {
		return
	}

	if err := publisher.PublishTransition(t); err != nil {
		logger.Errorf(ctx, "Failed to publish transition: %v", err)
	}
}

// publishSystem forwards a lifecycle event; failures are logged, never fatal.
func publishSystem(ctx context.Context, publisher telemetry.Publisher, e telemetry.SystemEvent) {
	if publisher == nil {
		return
	}

	if err := publisher.PublishSystem(e); err != nil {
		logger.Errorf(ctx, "Failed to publish system event: %v", err)
	}
}

// printState samples the panel once and reports the levels.
func printState(ctx context.Context, source input.Source) error {
	_, levels, err := source.Poll()
	if err != nil {
		return fmt.Errorf("poll input: %w", err)
	}

	logger.InfoKV(ctx, "Panel state",
		"door_open", levels.DoorOpen,
		"power_enable", levels.PowerEnable,
		"adjust", levels.Adjust)

	return nil
}

// inputPins converts configured wiring to the input package's pin map.
func inputPins(p config.Pins) input.Pins {
	return input.Pins{
		Start:       p.Start,
		Pause:       p.Pause,
		Stop:        p.Stop,
		Increment:   p.Increment,
		Decrement:   p.Decrement,
		Door:        p.Door,
		PowerEnable: p.PowerEnable,
		AdjustLow:   p.AdjustLow,
		AdjustHigh:  p.AdjustHigh,
	}
}

// nopSink stands in until the external display-multiplexing driver is
// attached; the composed frame is still produced every cycle.
type nopSink struct{}

// Show discards the frame.
func (nopSink) Show(display.Frame) error { return nil }
