package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zamvr/vrcswitch/internal/domain"
)

func TestLoginFlowSucceedsWithoutTwoFactor(t *testing.T) {
	t.Parallel()

	client := &fakeSessionClient{
		login: func(_ context.Context, username, password string) domain.LoginResult {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "hunter2", password)
			return domain.LoginResult{
				Outcome:     domain.LoginSucceeded,
				UserID:      "usr_42",
				DisplayName: "Alice",
				Token:       "authcookie-fresh",
				StatusCode:  http.StatusOK,
			}
		},
	}

	flow := NewLoginFlow(client)
	stage := flow.SubmitCredentials(context.Background(), "alice", "hunter2")
	require.Equal(t, domain.StageSucceeded, stage)

	cred, ok := flow.Credential()
	require.True(t, ok)
	assert.Equal(t, "authcookie-fresh", cred.AuthToken)
	assert.Equal(t, "usr_42", cred.UserID)
	assert.Equal(t, "Alice", cred.DisplayName)
}

func TestLoginFlowRecordsRejectionStatus(t *testing.T) {
	t.Parallel()

	client := &fakeSessionClient{
		login: func(_ context.Context, _, _ string) domain.LoginResult {
			return domain.LoginResult{Outcome: domain.LoginFailed, StatusCode: http.StatusUnauthorized}
		},
	}

	flow := NewLoginFlow(client)
	stage := flow.SubmitCredentials(context.Background(), "alice", "wrong")
	require.Equal(t, domain.StageFailed, stage)
	assert.Contains(t, flow.FailureReason(), "401")

	_, ok := flow.Credential()
	assert.False(t, ok)
}

func TestLoginFlowReportsTransportFailureDistinctly(t *testing.T) {
	t.Parallel()

	client := &fakeSessionClient{
		login: func(_ context.Context, _, _ string) domain.LoginResult {
			return domain.LoginResult{Outcome: domain.LoginFailed}
		},
	}

	flow := NewLoginFlow(client)
	require.Equal(t, domain.StageFailed, flow.SubmitCredentials(context.Background(), "alice", "hunter2"))
	assert.Contains(t, flow.FailureReason(), "in transit")
}

func TestLoginFlowEmptyFieldsKeepAwaitingCredentials(t *testing.T) {
	t.Parallel()

	called := false
	client := &fakeSessionClient{
		login: func(_ context.Context, _, _ string) domain.LoginResult {
			called = true
			return domain.LoginResult{Outcome: domain.LoginSucceeded, Token: "tok"}
		},
	}

	flow := NewLoginFlow(client)
	assert.Equal(t, domain.StageAwaitingCredentials, flow.SubmitCredentials(context.Background(), "", "hunter2"))
	assert.Equal(t, domain.StageAwaitingCredentials, flow.SubmitCredentials(context.Background(), "alice", ""))
	assert.False(t, called)
}

func TestLoginFlowTwoFactorPath(t *testing.T) {
	t.Parallel()

	client := &fakeSessionClient{
		login: func(_ context.Context, _, _ string) domain.LoginResult {
			return domain.LoginResult{
				Outcome:    domain.LoginTwoFactorRequired,
				Token:      "authcookie-pending",
				StatusCode: http.StatusOK,
			}
		},
		verifyTwoFactor: func(_ context.Context, token, code string) bool {
			assert.Equal(t, "authcookie-pending", token)
			return code == "123456"
		},
		currentUser: func(_ context.Context, token string) (domain.User, error) {
			assert.Equal(t, "authcookie-pending", token)
			return domain.User{ID: "usr_42", DisplayName: "Alice"}, nil
		},
	}

	flow := NewLoginFlow(client)
	require.Equal(t, domain.StageAwaitingTwoFactor, flow.SubmitCredentials(context.Background(), "alice", "hunter2"))

	stage := flow.SubmitTwoFactorCode(context.Background(), "123456")
	require.Equal(t, domain.StageSucceeded, stage)

	cred, ok := flow.Credential()
	require.True(t, ok)
	assert.Equal(t, "authcookie-pending", cred.AuthToken)
	assert.Equal(t, "usr_42", cred.UserID)
}

func TestLoginFlowTwoFactorRejectedCode(t *testing.T) {
	t.Parallel()

	client := &fakeSessionClient{
		login: func(_ context.Context, _, _ string) domain.LoginResult {
			return domain.LoginResult{Outcome: domain.LoginTwoFactorRequired, Token: "authcookie-pending"}
		},
		verifyTwoFactor: func(_ context.Context, _, _ string) bool {
			return false
		},
	}

	flow := NewLoginFlow(client)
	require.Equal(t, domain.StageAwaitingTwoFactor, flow.SubmitCredentials(context.Background(), "alice", "hunter2"))
	require.Equal(t, domain.StageFailed, flow.SubmitTwoFactorCode(context.Background(), "000000"))
	assert.Equal(t, domain.ErrTwoFactorRejected.Error(), flow.FailureReason())
}

func TestLoginFlowEmptyTwoFactorCodeFails(t *testing.T) {
	t.Parallel()

	client := &fakeSessionClient{
		login: func(_ context.Context, _, _ string) domain.LoginResult {
			return domain.LoginResult{Outcome: domain.LoginTwoFactorRequired, Token: "authcookie-pending"}
		},
	}

	flow := NewLoginFlow(client)
	require.Equal(t, domain.StageAwaitingTwoFactor, flow.SubmitCredentials(context.Background(), "alice", "hunter2"))
	require.Equal(t, domain.StageFailed, flow.SubmitTwoFactorCode(context.Background(), "  "))
	assert.Equal(t, domain.ErrTwoFactorRequired.Error(), flow.FailureReason())
}

func TestLoginFlowIdentityLookupFailureFailsTheFlow(t *testing.T) {
	t.Parallel()

	client := &fakeSessionClient{
		login: func(_ context.Context, _, _ string) domain.LoginResult {
			return domain.LoginResult{Outcome: domain.LoginTwoFactorRequired, Token: "authcookie-pending"}
		},
		verifyTwoFactor: func(_ context.Context, _, _ string) bool {
			return true
		},
		currentUser: func(_ context.Context, _ string) (domain.User, error) {
			return domain.User{}, domain.ErrTransport
		},
	}

	flow := NewLoginFlow(client)
	require.Equal(t, domain.StageAwaitingTwoFactor, flow.SubmitCredentials(context.Background(), "alice", "hunter2"))
	require.Equal(t, domain.StageFailed, flow.SubmitTwoFactorCode(context.Background(), "123456"))
	assert.Equal(t, "could not resolve user identity", flow.FailureReason())
}

func TestLoginFlowTerminalStagesIgnoreFurtherSubmissions(t *testing.T) {
	t.Parallel()

	calls := 0
	client := &fakeSessionClient{
		login: func(_ context.Context, _, _ string) domain.LoginResult {
			calls++
			return domain.LoginResult{Outcome: domain.LoginFailed, StatusCode: http.StatusUnauthorized}
		},
	}

	flow := NewLoginFlow(client)
	require.Equal(t, domain.StageFailed, flow.SubmitCredentials(context.Background(), "alice", "wrong"))
	assert.Equal(t, domain.StageFailed, flow.SubmitCredentials(context.Background(), "alice", "right"))
	assert.Equal(t, domain.StageFailed, flow.SubmitTwoFactorCode(context.Background(), "123456"))
	assert.Equal(t, 1, calls)
}
