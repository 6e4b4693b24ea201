package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zamvr/vrcswitch/internal/domain"
	"github.com/zamvr/vrcswitch/internal/ports"
)

// LaunchService turns launch specs into spawned companion processes. Spawns
// are fire-and-forget: the outcome channel reports whether the OS accepted
// the request, never whether the process ran to completion.
type LaunchService struct {
	launcher ports.ProcessLauncher
	logger   *slog.Logger
}

func NewLaunchService(launcher ports.ProcessLauncher, logger *slog.Logger) *LaunchService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &LaunchService{launcher: launcher, logger: logger}
}

// Build validates the spec and assembles the command vector. The executable
// must exist as a regular file at build time; a spec that fails the check
// produces no command.
func (s *LaunchService) Build(spec domain.LaunchSpec) ([]string, error) {
	info, err := os.Stat(spec.ExecutablePath)
	if err != nil {
		return nil, fmt.Errorf("%w: executable %q not found", domain.ErrInvalidSpec, spec.ExecutablePath)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", domain.ErrInvalidSpec, spec.ExecutablePath)
	}

	return spec.Args(), nil
}

// Launch builds and spawns. Exactly one outcome is delivered on the returned
// channel; the channel is buffered so the caller is never required to read
// it before the spawn proceeds.
func (s *LaunchService) Launch(ctx context.Context, spec domain.LaunchSpec) <-chan domain.LaunchOutcome {
	outcome := make(chan domain.LaunchOutcome, 1)

	argv, err := s.Build(spec)
	if err != nil {
		outcome <- domain.LaunchOutcome{Err: err}
		return outcome
	}

	go func() {
		err := s.launcher.Start(ctx, argv)
		if err != nil {
			s.logger.Warn("companion spawn rejected", "command", argv[0], "error", err)
		} else {
			s.logger.Debug("companion spawned", "command", argv)
		}
		outcome <- domain.LaunchOutcome{Command: argv, Err: err}
	}()

	return outcome
}

// LaunchVR starts the platform client through Steam, which owns the VR
// runtime handoff, instead of invoking the companion executable directly.
func (s *LaunchService) LaunchVR(ctx context.Context) <-chan domain.LaunchOutcome {
	outcome := make(chan domain.LaunchOutcome, 1)

	go func() {
		err := s.launcher.OpenURI(ctx, domain.SteamLaunchURI)
		if err != nil {
			s.logger.Warn("steam launch rejected", "uri", domain.SteamLaunchURI, "error", err)
		}
		outcome <- domain.LaunchOutcome{Command: []string{domain.SteamLaunchURI}, Err: err}
	}()

	return outcome
}
