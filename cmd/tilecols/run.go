package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/tilecols/internal/app"
	"github.com/Gaurav-Gosain/tilecols/internal/config"
	"github.com/Gaurav-Gosain/tilecols/internal/input"
	"github.com/Gaurav-Gosain/tilecols/internal/server"
)

// openLogger writes to the state log file, since stderr belongs to the TUI.
// The returned closer must be called on exit.
func openLogger() (*log.Logger, io.Closer, error) {
	path, err := config.GetLogPath()
	if err != nil {
		return nil, nil, fmt.Errorf("could not determine log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}
	level := log.WarnLevel
	if debugMode {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tilecols",
	})
	return logger, f, nil
}

// loadConfig reads the user configuration and applies command line
// overrides. A broken file falls back to the defaults; broken overrides are
// an error.
func loadConfig(logger *log.Logger, o config.Overrides) (*config.UserConfig, error) {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		logger.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}
	userConfig.ApplyOverrides(o)
	if err := userConfig.Validate(); err != nil {
		return nil, err
	}
	return userConfig, nil
}

func runLocal(ctx context.Context, o config.Overrides) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tilecols needs an interactive terminal")
	}

	logger, closer, err := openLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	userConfig, err := loadConfig(logger, o)
	if err != nil {
		return err
	}
	configPath, _ := config.GetConfigPath()
	logger.Info("starting", "version", version, "config", configPath)

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	app.SetInputHandler(input.HandleInput)
	a, err := app.New(app.Options{
		Config: userConfig,
		Width:  width,
		Height: height,
		Logger: logger,
		Debug:  debugMode,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		a,
		tea.WithContext(ctx),
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(input.FilterMouseMotion),
	)

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if w, err := config.NewWatcher(configPath, func(cfg *config.UserConfig, err error) {
		if cfg != nil {
			cfg.ApplyOverrides(o)
		}
		p.Send(app.ConfigReloadedMsg{Config: cfg, Err: err})
	}, logger); err != nil {
		logger.Warn("config hot reload disabled", "err", err)
	} else {
		go func() {
			if err := w.Run(watchCtx); err != nil {
				logger.Warn("config watcher stopped", "err", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runSSHServer(ctx context.Context, host, port, keyPath string, o config.Overrides) error {
	level := log.InfoLevel
	if debugMode {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "tilecols",
	})

	// Fail early on bad overrides instead of once per connection.
	if _, err := loadConfig(logger, o); err != nil {
		return err
	}

	return server.Start(ctx, server.Config{
		Host:      host,
		Port:      port,
		KeyPath:   keyPath,
		Overrides: o,
		Debug:     debugMode,
		Logger:    logger,
	})
}
