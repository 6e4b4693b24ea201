package domain

import "time"

type FetchStatus string

const (
	FetchPending     FetchStatus = "pending"
	FetchReady       FetchStatus = "ready"
	FetchUnreachable FetchStatus = "unreachable"
)

// PresenceState is the poller-owned view of where the user currently is.
// Location is empty when the platform reports no instance; Status says whether
// that emptiness is a real answer or the result of an unreachable API.
type PresenceState struct {
	Location                string
	Status                  FetchStatus
	ConsecutiveEmptyFetches int
	CheckedAt               time.Time
}

func (p PresenceState) Ready() bool {
	return p.Status == FetchReady
}

// InInstance reports whether the user is in a joinable instance, excluding the
// platform's literal "none" marker.
func (p PresenceState) InInstance() bool {
	return p.Ready() && p.Location != "" && p.Location != LocationNone
}

type LocationStatus string

const (
	LocationKnown       LocationStatus = "known"
	LocationUnknown     LocationStatus = "unknown"
	LocationUnreachable LocationStatus = "unreachable"
)

// LocationResult classifies one presence fetch. Unknown means the API answered
// with no location (a valid steady state); Unreachable means the answer never
// arrived and the fetch should be retried.
type LocationResult struct {
	Status   LocationStatus
	Location string
}
