package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zamvr/vrcswitch/internal/adapters/api"
	"github.com/zamvr/vrcswitch/internal/adapters/credfile"
	"github.com/zamvr/vrcswitch/internal/adapters/launcher"
	presencerender "github.com/zamvr/vrcswitch/internal/adapters/render/presence"
	"github.com/zamvr/vrcswitch/internal/application"
	"github.com/zamvr/vrcswitch/internal/config"
	"github.com/zamvr/vrcswitch/internal/domain"
	"github.com/zamvr/vrcswitch/internal/ports"
)

type app struct {
	config   config.Config
	logger   *slog.Logger
	logLevel *slog.LevelVar

	client  ports.SessionClient
	store   ports.CredentialStore
	session *application.SessionService
	launch  *application.LaunchService

	presenceRenderer func(presencerender.Card, presencerender.RenderOptions) (string, error)
	now              func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logLevel := &slog.LevelVar{}
	logLevel.Set(parseLogLevel(cfg.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	client, err := api.NewClient(cfg.APIBaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("wire api client: %w", err)
	}

	store, err := credfile.NewStore(cfg.SessionPath, logger)
	if err != nil {
		return nil, fmt.Errorf("wire session store: %w", err)
	}

	return &app{
		config:           cfg,
		logger:           logger,
		logLevel:         logLevel,
		client:           client,
		store:            store,
		session:          application.NewSessionService(client, store, logger),
		launch:           application.NewLaunchService(launcher.NewLauncher(), logger),
		presenceRenderer: presencerender.Render,
		now:              time.Now,
	}, nil
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// describeRestoreError turns session restore failures into actionable
// messages for commands that need a live session.
func describeRestoreError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNoSession):
		return errors.New("no saved session; run `vrcswitch login` first")
	case errors.Is(err, domain.ErrSessionExpired):
		return errors.New("saved session expired; run `vrcswitch login` again")
	default:
		return err
	}
}
