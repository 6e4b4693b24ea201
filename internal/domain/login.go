package domain

import "fmt"

type LoginStage string

const (
	StageAwaitingCredentials LoginStage = "awaiting_credentials"
	StageAwaitingTwoFactor   LoginStage = "awaiting_two_factor"
	StageSucceeded           LoginStage = "succeeded"
	StageFailed              LoginStage = "failed"
)

func (s LoginStage) Terminal() bool {
	return s == StageSucceeded || s == StageFailed
}

type LoginOutcome string

const (
	LoginSucceeded         LoginOutcome = "succeeded"
	LoginTwoFactorRequired LoginOutcome = "two_factor_required"
	LoginFailed            LoginOutcome = "failed"
)

// LoginResult classifies one password submission against the platform. Token
// is set for Succeeded and for TwoFactorRequired, where it is the pending
// session the verification code must be submitted against. StatusCode is the
// HTTP status of the login response; zero means the request never completed.
type LoginResult struct {
	Outcome     LoginOutcome
	UserID      string
	DisplayName string
	Token       string
	StatusCode  int
}

func (r LoginResult) FailureReason() string {
	if r.Outcome != LoginFailed {
		return ""
	}
	if r.StatusCode == 0 {
		return "login request failed in transit"
	}

	return fmt.Sprintf("login rejected with status %d", r.StatusCode)
}
