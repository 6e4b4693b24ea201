package application

import (
	"context"
	"sync"
	"time"

	"github.com/zamvr/vrcswitch/internal/domain"
)

// fakeSessionClient implements ports.SessionClient through function fields;
// unset fields answer with safe rejections.
type fakeSessionClient struct {
	validate        func(ctx context.Context, token string) bool
	login           func(ctx context.Context, username, password string) domain.LoginResult
	verifyTwoFactor func(ctx context.Context, token, code string) bool
	fetchLocation   func(ctx context.Context, token, userID string) domain.LocationResult
	currentUser     func(ctx context.Context, token string) (domain.User, error)
}

func (f *fakeSessionClient) Validate(ctx context.Context, token string) bool {
	if f.validate == nil {
		return false
	}
	return f.validate(ctx, token)
}

func (f *fakeSessionClient) Login(ctx context.Context, username, password string) domain.LoginResult {
	if f.login == nil {
		return domain.LoginResult{Outcome: domain.LoginFailed}
	}
	return f.login(ctx, username, password)
}

func (f *fakeSessionClient) VerifyTwoFactor(ctx context.Context, token, code string) bool {
	if f.verifyTwoFactor == nil {
		return false
	}
	return f.verifyTwoFactor(ctx, token, code)
}

func (f *fakeSessionClient) FetchLocation(ctx context.Context, token, userID string) domain.LocationResult {
	if f.fetchLocation == nil {
		return domain.LocationResult{Status: domain.LocationUnreachable}
	}
	return f.fetchLocation(ctx, token, userID)
}

func (f *fakeSessionClient) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	if f.currentUser == nil {
		return domain.User{}, domain.ErrAuthRejected
	}
	return f.currentUser(ctx, token)
}

// fakeCredentialStore records saves in memory.
type fakeCredentialStore struct {
	mu      sync.Mutex
	cred    domain.Credential
	present bool
	saves   int
	saveErr error
}

func (f *fakeCredentialStore) Load(_ context.Context) (domain.Credential, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cred, f.present
}

func (f *fakeCredentialStore) Save(_ context.Context, cred domain.Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.cred = cred
	f.present = true
	f.saves++
	return nil
}

func (f *fakeCredentialStore) Delete(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cred = domain.Credential{}
	f.present = false
	return nil
}

func (f *fakeCredentialStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

// fakeLauncher records spawn requests.
type fakeLauncher struct {
	mu       sync.Mutex
	started  [][]string
	opened   []string
	startErr error
	openErr  error
}

func (f *fakeLauncher) Start(_ context.Context, argv []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, argv)
	return nil
}

func (f *fakeLauncher) OpenURI(_ context.Context, uri string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, uri)
	return nil
}

// fixedClock always answers the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
