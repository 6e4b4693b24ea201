package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialValidateRequiresToken(t *testing.T) {
	require.Error(t, Credential{}.Validate())
	require.Error(t, Credential{AuthToken: "   "}.Validate())
	require.NoError(t, Credential{AuthToken: "authcookie-123"}.Validate())
}

func TestCredentialHasIdentity(t *testing.T) {
	assert.False(t, Credential{AuthToken: "tok"}.HasIdentity())
	assert.False(t, Credential{AuthToken: "tok", UserID: "  "}.HasIdentity())
	assert.True(t, Credential{AuthToken: "tok", UserID: "usr_1"}.HasIdentity())
}

func TestLaunchSpecArgs(t *testing.T) {
	tests := []struct {
		name string
		spec LaunchSpec
		want []string
	}{
		{
			name: "desktop mode without location",
			spec: LaunchSpec{ExecutablePath: "/opt/vrchat/launch", DesktopMode: true},
			want: []string{"/opt/vrchat/launch", "--no-vr"},
		},
		{
			name: "location without desktop mode",
			spec: LaunchSpec{ExecutablePath: "/opt/vrchat/launch", TargetLocation: "wrld_123"},
			want: []string{"/opt/vrchat/launch", "vrchat://launch?id=wrld_123"},
		},
		{
			name: "desktop mode with location",
			spec: LaunchSpec{ExecutablePath: "launch.exe", DesktopMode: true, TargetLocation: "wrld_a:42"},
			want: []string{"launch.exe", "--no-vr", "vrchat://launch?id=wrld_a:42"},
		},
		{
			name: "none sentinel is skipped",
			spec: LaunchSpec{ExecutablePath: "launch.exe", TargetLocation: "none"},
			want: []string{"launch.exe"},
		},
		{
			name: "empty location is skipped",
			spec: LaunchSpec{ExecutablePath: "launch.exe"},
			want: []string{"launch.exe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Args())
		})
	}
}

func TestLoginResultFailureReason(t *testing.T) {
	assert.Empty(t, LoginResult{Outcome: LoginSucceeded}.FailureReason())
	assert.Empty(t, LoginResult{Outcome: LoginTwoFactorRequired}.FailureReason())

	rejected := LoginResult{Outcome: LoginFailed, StatusCode: 401}
	assert.Equal(t, "login rejected with status 401", rejected.FailureReason())

	transit := LoginResult{Outcome: LoginFailed}
	assert.Equal(t, "login request failed in transit", transit.FailureReason())
}

func TestLoginStageTerminal(t *testing.T) {
	assert.False(t, StageAwaitingCredentials.Terminal())
	assert.False(t, StageAwaitingTwoFactor.Terminal())
	assert.True(t, StageSucceeded.Terminal())
	assert.True(t, StageFailed.Terminal())
}

func TestPresenceStateReadiness(t *testing.T) {
	pending := PresenceState{Status: FetchPending}
	assert.False(t, pending.Ready())
	assert.False(t, pending.InInstance())

	inWorld := PresenceState{
		Status:    FetchReady,
		Location:  "wrld_123:1234",
		CheckedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	assert.True(t, inWorld.Ready())
	assert.True(t, inWorld.InInstance())

	noInstance := PresenceState{Status: FetchReady, Location: LocationNone}
	assert.True(t, noInstance.Ready())
	assert.False(t, noInstance.InInstance())

	unreachable := PresenceState{Status: FetchUnreachable, Location: "wrld_123:1234"}
	assert.False(t, unreachable.Ready())
	assert.False(t, unreachable.InInstance())
}
