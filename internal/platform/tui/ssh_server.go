package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/ability"
	"github.com/vovakirdan/tui-platformer/internal/app"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/observe"
	"github.com/vovakirdan/tui-platformer/internal/progress"
	"github.com/vovakirdan/tui-platformer/internal/settings"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.platformer/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
	}
}

// Shared holds what every session reads. The catalog is immutable; the
// stores and metrics are safe for concurrent use.
type Shared struct {
	Config  *config.Config
	Catalog *ability.Catalog
	Levels  *level.Catalog
	Store   progress.Store // nil disables persistence
	Prefs   settings.Store // nil keeps settings in memory
	Metrics *observe.Metrics
	Logger  *log.Logger
}

// SSHServer serves one platformer session per SSH connection. Every
// session builds its own player; nothing mutable is shared between them.
type SSHServer struct {
	config SSHServerConfig
	shared Shared
	server *ssh.Server
	logger *log.Logger
}

type sessionKey struct{}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, shared Shared) (*SSHServer, error) {
	if shared.Config == nil || shared.Catalog == nil || shared.Levels == nil {
		return nil, errors.New("tui: ssh server needs config, catalog and levels")
	}
	logger := shared.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "platformer-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		shared: shared,
		logger: logger,
	}

	hostKeyPath := config.ExpandPath(cfg.HostKeyPath)
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".platformer", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.sessionMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// NewSessionModel builds the player for user and the model that runs it.
// The caller closes the model and its player when the session ends.
func (s *SSHServer) NewSessionModel(ctx context.Context, user string, runtime core.RuntimeConfig) (Model, error) {
	logger := s.logger.With("user", user)

	player, err := app.NewPlayer(ctx, app.Options{
		Config:  s.shared.Config,
		Catalog: s.shared.Catalog,
		Store:   s.shared.Store,
		Profile: user,
		Logger:  logger,
		Metrics: s.shared.Metrics,
	})
	if err != nil {
		return Model{}, err
	}

	current := s.shared.Config.Settings
	if s.shared.Prefs != nil {
		if current, err = settings.Load(ctx, s.shared.Prefs, logger); err != nil {
			logger.Warn("using default settings", "err", err)
			current = s.shared.Config.Settings
		}
	}

	env := &Env{
		Player:   player,
		Levels:   s.shared.Levels,
		Settings: &current,
		Prefs:    s.shared.Prefs,
		Logger:   logger,
		Metrics:  s.shared.Metrics,
	}
	return NewModel(env, runtime), nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	runtime := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
	}
	model, err := s.NewSessionModel(sess.Context(), sess.User(), runtime)
	if err != nil {
		s.logger.Error("cannot start session", "user", sess.User(), "err", err)
		wish.Fatalln(sess, "platformer: cannot load your progress")
		return nil, nil
	}
	sess.Context().SetValue(sessionKey{}, model)
	s.shared.Metrics.PlayerJoined(sess.Context())

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// sessionMiddleware logs SSH sessions and releases the session's player
// once its program has exited.
func (s *SSHServer) sessionMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)

		if m, ok := sess.Context().Value(sessionKey{}).(Model); ok {
			if err := m.Player().Err(); err != nil {
				s.logger.Error("progress not saved", "user", sess.User(), "err", err)
			}
			m.Close()
			m.Player().Close()
			s.shared.Metrics.PlayerLeft(context.Background())
		}
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("tui: ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
