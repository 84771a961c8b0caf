package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bobbyhwsong/voice-chat-app/internal/api"
	"github.com/bobbyhwsong/voice-chat-app/internal/config"
	"github.com/bobbyhwsong/voice-chat-app/internal/logging"
	"github.com/bobbyhwsong/voice-chat-app/internal/session"
	"github.com/bobbyhwsong/voice-chat-app/internal/store"
)

// newClient builds the backend client. Tests replace it.
var newClient = func(cfg *config.Config) api.Client {
	return api.New(cfg.APIBaseURL, api.WithTimeout(cfg.HTTPTimeout))
}

// isInteractive reports whether stdin is a terminal. Tests replace it.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// env is what every command runs on.
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *store.Store
	client   api.Client
	sessions *session.Store
	closers  []func() error
}

// openEnv resolves configuration, opens the log and the store and wraps the
// backend client with event logging. console tees warnings to stderr for
// commands that do not own the terminal.
func openEnv(cmd *cobra.Command, console bool) (*env, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fileLog, closeLog, err := logging.New(logging.Options{File: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log := fileLog
	if console {
		log = logging.NewConsole(fileLog, cfg.Debug)
	}

	st, err := store.Open(cfg.DB)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}

	e := &env{
		cfg:      cfg,
		log:      log,
		store:    st,
		client:   api.WithLogging(newClient(cfg), st.EventRepo(), fileLog),
		sessions: session.NewStore(st.UserDataRepo()),
		closers:  []func() error{st.Close, closeLog},
	}
	log.Debug("environment ready",
		zap.String("api", cfg.APIBaseURL),
		zap.String("db", cfg.DB),
		zap.String("command", cmd.Name()))
	return e, nil
}

func (e *env) Close() {
	for _, c := range e.closers {
		_ = c()
	}
}

// participant returns the stored participant or a hint to log in first.
func (e *env) participant(ctx context.Context) (session.UserSession, error) {
	u, err := e.sessions.Require(ctx)
	if err != nil {
		return session.UserSession{}, fmt.Errorf("로그인 정보가 없습니다. 먼저 `voicechat login`을 실행해주세요: %w", err)
	}
	return u, nil
}
