package ports

import (
	"context"

	"github.com/zamvr/vrcswitch/internal/domain"
)

// CredentialStore persists the session credential. Load deliberately has no
// error return: an absent, unreadable, or malformed file all mean "no saved
// session". Save overwrites the whole file atomically.
type CredentialStore interface {
	Load(ctx context.Context) (domain.Credential, bool)
	Save(ctx context.Context, cred domain.Credential) error
	Delete(ctx context.Context) error
}
