package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"galaxyview/app"
	"galaxyview/config"
	"galaxyview/hal"
	"galaxyview/internal/buildinfo"
)

type options struct {
	headless bool
	term     bool
	hz       int
	ticks    uint64
	config   string
	seed     uint64
	width    int
	height   int
	logLevel string
	logPath  string
	watch    bool
	hud      bool
}

func main() {
	var o options
	flag.BoolVar(&o.headless, "headless", false, "Run without a window.")
	flag.BoolVar(&o.term, "term", false, "Render into the terminal.")
	flag.IntVar(&o.hz, "hz", 60, "Tick rate in headless and terminal mode.")
	flag.Uint64Var(&o.ticks, "ticks", 0, "Stop after N ticks in headless and terminal mode (0 = run forever).")
	flag.StringVar(&o.config, "config", "", "Preset TOML file (default $"+config.EnvConfig+").")
	flag.Uint64Var(&o.seed, "seed", 0, "Random seed (0 = time based).")
	flag.IntVar(&o.width, "width", 0, "Surface width in logical pixels.")
	flag.IntVar(&o.height, "height", 0, "Surface height in logical pixels.")
	flag.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn or error.")
	flag.StringVar(&o.logPath, "log", "", "Append log lines to this file instead of stdout.")
	flag.BoolVar(&o.watch, "watch", true, "Reload the preset file when it changes.")
	flag.BoolVar(&o.hud, "hud", true, "Show the status line.")
	version := flag.Bool("version", false, "Print the build version and exit.")
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.String())
		return
	}

	if err := run(o); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(o options) error {
	settings, path, err := loadSettings(o)
	if err != nil {
		return err
	}

	var logOut io.Writer = os.Stdout
	if o.logPath != "" {
		f, err := os.OpenFile(o.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}

	session := &app.Session{Config: app.Config{
		Settings:   settings,
		PresetPath: path,
		Watch:      o.watch,
		HUD:        o.hud,
	}}
	defer session.Close()
	newApp := session.Start

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case o.headless:
		return hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Hz:     o.hz,
			Ticks:  o.ticks,
			Width:  settings.Window.Width,
			Height: settings.Window.Height,
			Log:    logOut,
		})
	case o.term:
		cfg := hal.TerminalConfig{Hz: o.hz, Ticks: o.ticks}
		// Stdout is the screen; only a log file can take lines while it is active.
		if o.logPath != "" {
			cfg.Log = logOut
		}
		return hal.RunTerminal(ctx, newApp, cfg)
	default:
		return hal.RunWindow(newApp, hal.WindowConfig{
			Title:  settings.Window.Title,
			Width:  settings.Window.Width,
			Height: settings.Window.Height,
			TPS:    o.hz,
			Log:    logOut,
		})
	}
}

// loadSettings layers defaults, the preset file, the environment (.env
// included) and finally any flags given on the command line.
func loadSettings(o options) (config.Config, string, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, "", err
	}
	path := o.config
	if path == "" {
		path = config.PathFromEnv()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, path, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, path, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = o.seed
		case "width":
			cfg.Window.Width = o.width
		case "height":
			cfg.Window.Height = o.height
		case "log-level":
			cfg.LogLevel = o.logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return cfg, path, fmt.Errorf("config: %w", err)
	}
	return cfg, path, nil
}
