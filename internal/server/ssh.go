// Package server serves tilecols over SSH. Every connection gets its own
// App and layout.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/tilecols/internal/app"
	"github.com/Gaurav-Gosain/tilecols/internal/config"
	"github.com/Gaurav-Gosain/tilecols/internal/input"
)

const shutdownTimeout = 5 * time.Second

// Config holds configuration for the SSH server.
type Config struct {
	Host      string
	Port      string
	KeyPath   string // defaults to ~/.ssh/tilecols_host_key
	Overrides config.Overrides
	Debug     bool
	Logger    *log.Logger
}

// DefaultHostKeyPath returns where the host key lives when none is given.
func DefaultHostKeyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".ssh", "tilecols_host_key"), nil
}

// Start runs the SSH server until ctx is cancelled.
func Start(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	keyPath := cfg.KeyPath
	if keyPath == "" {
		p, err := DefaultHostKeyPath()
		if err != nil {
			return err
		}
		keyPath = p
	}

	app.SetInputHandler(input.HandleInput)

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(cfg, logger)),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting SSH server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, ok := <-errc:
		if ok {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// teaHandler builds a fresh App for each SSH session.
func teaHandler(cfg Config, logger *log.Logger) bubbletea.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, active := sess.Pty()
		if !active {
			wish.Fatalln(sess, "tilecols needs an interactive terminal (try ssh -t)")
			return nil, nil
		}

		userConfig, err := config.LoadUserConfig()
		if err != nil {
			logger.Warn("failed to load config for SSH session, using defaults", "err", err)
			userConfig = config.DefaultConfig()
		}
		userConfig.ApplyOverrides(cfg.Overrides)

		a, err := app.New(app.Options{
			Config:  userConfig,
			Width:   pty.Window.Width,
			Height:  pty.Window.Height,
			Logger:  logger.With("user", sess.User(), "remote", sess.RemoteAddr().String()),
			Debug:   cfg.Debug,
			Session: sess,
		})
		if err != nil {
			logger.Error("failed to create session", "err", err)
			wish.Fatalln(sess, "tilecols: "+err.Error())
			return nil, nil
		}

		return a, []tea.ProgramOption{
			tea.WithFPS(config.NormalFPS),
			tea.WithFilter(input.FilterMouseMotion),
		}
	}
}
