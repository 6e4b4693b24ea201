package domain

import (
	"fmt"
	"strings"
)

// Credential is the persisted proof of an authenticated platform session.
// AuthToken is an opaque bearer value issued by the remote API; UserID may be
// empty until resolved through a who-am-I lookup.
type Credential struct {
	AuthToken   string
	UserID      string
	DisplayName string
}

func (c Credential) Validate() error {
	if strings.TrimSpace(c.AuthToken) == "" {
		return fmt.Errorf("auth token is required")
	}

	return nil
}

// HasIdentity reports whether the credential carries the user identifier that
// presence lookups require.
func (c Credential) HasIdentity() bool {
	return strings.TrimSpace(c.UserID) != ""
}

type User struct {
	ID          string
	DisplayName string
}
