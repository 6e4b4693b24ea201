package application

import (
	"context"
	"strings"

	"github.com/zamvr/vrcswitch/internal/domain"
	"github.com/zamvr/vrcswitch/internal/ports"
)

// LoginFlow drives one authentication attempt from credentials through an
// optional two-factor challenge. Build one per attempt, submit until a
// terminal stage, read the credential on success. Raw transport errors never
// leave the flow; every failure lands in StageFailed with a single
// human-readable reason. Not safe for concurrent use; drive it from one
// goroutine.
type LoginFlow struct {
	client ports.SessionClient

	stage         domain.LoginStage
	failureReason string
	pendingToken  string
	credential    domain.Credential
}

func NewLoginFlow(client ports.SessionClient) *LoginFlow {
	return &LoginFlow{
		client: client,
		stage:  domain.StageAwaitingCredentials,
	}
}

func (f *LoginFlow) Stage() domain.LoginStage {
	return f.stage
}

func (f *LoginFlow) FailureReason() string {
	return f.failureReason
}

// Credential returns the completed credential. Valid only in StageSucceeded.
func (f *LoginFlow) Credential() (domain.Credential, bool) {
	if f.stage != domain.StageSucceeded {
		return domain.Credential{}, false
	}

	return f.credential, true
}

// SubmitCredentials runs the password leg. Empty fields keep the flow in
// AwaitingCredentials so the caller can re-prompt; submitting to a terminal
// flow is a no-op.
func (f *LoginFlow) SubmitCredentials(ctx context.Context, username, password string) domain.LoginStage {
	if f.stage != domain.StageAwaitingCredentials {
		return f.stage
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return f.stage
	}

	result := f.client.Login(ctx, username, password)
	switch result.Outcome {
	case domain.LoginTwoFactorRequired:
		if result.Token == "" {
			return f.fail("login response carried no session token")
		}
		f.pendingToken = result.Token
		f.stage = domain.StageAwaitingTwoFactor
		return f.stage
	case domain.LoginSucceeded:
		return f.complete(ctx, domain.Credential{
			AuthToken:   result.Token,
			UserID:      result.UserID,
			DisplayName: result.DisplayName,
		})
	default:
		return f.fail(result.FailureReason())
	}
}

// SubmitTwoFactorCode runs the challenge leg. An empty code counts as a
// cancelled challenge and fails the flow.
func (f *LoginFlow) SubmitTwoFactorCode(ctx context.Context, code string) domain.LoginStage {
	if f.stage != domain.StageAwaitingTwoFactor {
		return f.stage
	}
	if strings.TrimSpace(code) == "" {
		return f.fail(domain.ErrTwoFactorRequired.Error())
	}
	if !f.client.VerifyTwoFactor(ctx, f.pendingToken, code) {
		return f.fail(domain.ErrTwoFactorRejected.Error())
	}

	return f.complete(ctx, domain.Credential{AuthToken: f.pendingToken})
}

// complete finalizes a successful attempt. Downstream polling needs the user
// identifier, so the flow resolves it through the who-am-I lookup before
// declaring success.
func (f *LoginFlow) complete(ctx context.Context, cred domain.Credential) domain.LoginStage {
	if cred.Validate() != nil {
		return f.fail("login response carried no session token")
	}

	if !cred.HasIdentity() {
		user, err := f.client.CurrentUser(ctx, cred.AuthToken)
		if err != nil {
			return f.fail("could not resolve user identity")
		}
		cred.UserID = user.ID
		cred.DisplayName = user.DisplayName
	}

	f.credential = cred
	f.stage = domain.StageSucceeded
	return f.stage
}

func (f *LoginFlow) fail(reason string) domain.LoginStage {
	f.stage = domain.StageFailed
	f.failureReason = reason
	return f.stage
}
