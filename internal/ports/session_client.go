package ports

import (
	"context"

	"github.com/zamvr/vrcswitch/internal/domain"
)

// SessionClient wraps the platform's web API behind typed operations.
// Validate, Login, VerifyTwoFactor, and FetchLocation never surface raw
// transport errors; they fold every failure into their result type.
// CurrentUser is the who-am-I lookup used to resolve the user identifier and
// does return wrapped errors.
type SessionClient interface {
	Validate(ctx context.Context, token string) bool
	Login(ctx context.Context, username, password string) domain.LoginResult
	VerifyTwoFactor(ctx context.Context, token, code string) bool
	FetchLocation(ctx context.Context, token, userID string) domain.LocationResult
	CurrentUser(ctx context.Context, token string) (domain.User, error)
}
