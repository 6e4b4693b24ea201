package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/zamvr/vrcswitch/internal/domain"
	"github.com/zamvr/vrcswitch/internal/ports"
)

// SessionService owns the saved credential's lifecycle: restoring and
// revalidating it at startup, persisting a fresh one after login, and
// discarding it on logout.
type SessionService struct {
	client ports.SessionClient
	store  ports.CredentialStore
	logger *slog.Logger

	// OnCredentialReady fires after a credential is validated or persisted.
	// Optional; invoked on the caller's goroutine.
	OnCredentialReady func(domain.Credential)
}

func NewSessionService(client ports.SessionClient, store ports.CredentialStore, logger *slog.Logger) *SessionService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SessionService{client: client, store: store, logger: logger}
}

// Restore loads the persisted credential and probes it against the platform.
// domain.ErrNoSession means nothing usable was on disk; domain.ErrSessionExpired
// means the token no longer names a live session and a re-login is needed.
func (s *SessionService) Restore(ctx context.Context) (domain.Credential, error) {
	cred, ok := s.store.Load(ctx)
	if !ok {
		return domain.Credential{}, domain.ErrNoSession
	}

	if !s.client.Validate(ctx, cred.AuthToken) {
		s.logger.Debug("saved session rejected by platform")
		return domain.Credential{}, domain.ErrSessionExpired
	}

	if s.OnCredentialReady != nil {
		s.OnCredentialReady(cred)
	}

	return cred, nil
}

// Establish persists a freshly acquired credential, replacing whatever was
// saved before.
func (s *SessionService) Establish(ctx context.Context, cred domain.Credential) error {
	if err := cred.Validate(); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}

	if err := s.store.Save(ctx, cred); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	if s.OnCredentialReady != nil {
		s.OnCredentialReady(cred)
	}

	return nil
}

// Logout removes the persisted credential. Absence of one is not an error.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx); err != nil {
		return fmt.Errorf("discard session: %w", err)
	}

	return nil
}
