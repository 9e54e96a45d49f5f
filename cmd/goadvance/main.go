package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/pxlsplat/goadvance/goadvance"
	"github.com/pxlsplat/goadvance/goadvance/backend"
	"github.com/pxlsplat/goadvance/goadvance/backend/headless"
	"github.com/pxlsplat/goadvance/goadvance/backend/sdl2"
	"github.com/pxlsplat/goadvance/goadvance/backend/terminal"
	"github.com/pxlsplat/goadvance/goadvance/input"
	"github.com/pxlsplat/goadvance/goadvance/input/action"
	"github.com/pxlsplat/goadvance/goadvance/input/event"
	"github.com/pxlsplat/goadvance/goadvance/timing"
)

func main() {
	app := cli.NewApp()
	app.Name = "goadvance"
	app.Description = "A Game Boy Advance emulator"
	app.Usage = "goadvance [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend to use: terminal or sdl2",
			Value: "terminal",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Show the debug register panel in interactive backends",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn or error",
			Value: "info",
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func configureLogging(level string) error {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
	return nil
}

func runEmulator(c *cli.Context) error {
	if err := configureLogging(c.String("log-level")); err != nil {
		return err
	}

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	emu, err := goadvance.NewWithFile(romPath)
	if err != nil {
		return err
	}

	var b backend.Backend
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames option with a positive value")
		}

		snapshotConfig, err := headless.CreateSnapshotConfig(
			c.Int("snapshot-interval"), c.String("snapshot-dir"), romPath)
		if err != nil {
			return err
		}

		b = headless.New(frames, snapshotConfig)
		emu.SetFrameLimiter(timing.NewNoOpLimiter())
	} else {
		switch c.String("backend") {
		case "terminal":
			b = terminal.New()
		case "sdl2":
			b = sdl2.New()
		default:
			return fmt.Errorf("unknown backend %q", c.String("backend"))
		}
		emu.SetFrameLimiter(timing.NewAdaptiveLimiter())
	}

	config := backend.BackendConfig{
		Title:         "goadvance",
		ShowDebug:     c.Bool("debug"),
		DebugProvider: emu,
		Audio:         emu.GetAPU(),
	}
	if err := b.Init(config); err != nil {
		return err
	}
	defer b.Cleanup()

	return runLoop(emu, b)
}

// actionHandler is the optional backend surface for backend-owned actions
// (snapshots, debug panel toggles).
type actionHandler interface {
	HandleAction(act action.Action)
}

// runLoop drives the board and backend in lockstep: one frame of emulation,
// one presentation update, then the returned input events are routed.
func runLoop(emu *goadvance.AGB, b backend.Backend) error {
	handler := input.NewHandler()

	for {
		if err := emu.RunUntilFrame(); err != nil {
			return err
		}

		events, err := b.Update(emu.GetCurrentFrame())
		if err != nil {
			return err
		}

		for _, evt := range events {
			if evt.Action == action.EmulatorQuit {
				slog.Info("Quit requested")
				return nil
			}

			info := action.GetInfo(evt.Action)
			if info.Debounce && !handler.ProcessEvent(evt) {
				continue
			}
			if info.Category == action.CategoryBackend || info.Category == action.CategoryDebug {
				if ah, ok := b.(actionHandler); ok && evt.Type == event.Press {
					ah.HandleAction(evt.Action)
				}
				continue
			}

			emu.HandleAction(evt.Action, evt.Type != event.Release)
		}
	}
}
