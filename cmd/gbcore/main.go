package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mwillard/gbcore/gbcore"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Description = "Sharp LR35902 instruction-fetch/decode/execute core"
	app.Usage = "gbcore --rom <file> [options]"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "path to the ROM image to load",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run headless",
			Value: 1,
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "slog level: debug, info, warn, error",
			Value: "info",
		},
	}
	app.Action = run

	defer func() {
		if r := recover(); r != nil {
			slog.Error("fatal core error", "panic", r)
			os.Exit(1)
		}
	}()

	if err := app.Run(os.Args); err != nil {
		slog.Error("gbcore failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := configureLogging(c.String("log-level")); err != nil {
		return err
	}

	romPath := c.String("rom")
	if romPath == "" {
		cli.ShowAppHelp(c)
		return errors.New("no ROM path provided, pass --rom")
	}

	frames := c.Int("frames")
	if frames <= 0 {
		return errors.New("--frames must be positive")
	}

	data, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM file: %w", err)
	}

	emu, err := gbcore.NewWithROM(data)
	if err != nil {
		return fmt.Errorf("constructing emulator: %w", err)
	}

	slog.Info("running headless", "rom", romPath, "frames", frames)

	for i := 0; i < frames; i++ {
		emu.RunFrame()
	}

	slog.Info("run complete",
		"pc", fmt.Sprintf("0x%04X", emu.CPU().GetPC()),
		"sp", fmt.Sprintf("0x%04X", emu.CPU().GetSP()),
		"instructions", emu.InstructionCount(),
		"frames", emu.FrameCount(),
	)

	return nil
}

func configureLogging(level string) error {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "info":
		l = slog.LevelInfo
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		return fmt.Errorf("unknown --log-level %q", level)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))
	return nil
}
