/*
Package gate implements the access gate that runs on every page load.

The gate decides whether the current page may be shown to the caller by
comparing the caller's onboarding status against the page's location: a pending
user is confined to the onboarding flow, a completed user is kept out of it.
The status check is intentionally fail-open — an unknown status must never
redirect, because a false redirect would trap a legitimate user in a loop.
*/
package gate

import (
	"context"

	"learnloop/internal/app/session"
	"learnloop/internal/pkg/logx"
)

// Status is the tri-state onboarding status the gate reasons about. Unknown is
// a first-class state (status query failed) and is handled exhaustively, never
// as an implicit fallthrough.
type Status int

const (
	// StatusUnknown means the status query failed; the gate takes no action.
	StatusUnknown Status = iota

	// StatusPending means the account exists but onboarding is not finished.
	StatusPending

	// StatusCompleted means onboarding finished; the status never reverts.
	StatusCompleted
)

// String returns the wire spelling of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Onboarding flow pages. The allow-list is fixed and known to the gate; pages
// outside it belong to the main application.
const (
	PathProfileStep = "/onboarding/profile"
	PathDomainsStep = "/onboarding/domains"
	PathSkillsStep  = "/onboarding/skills"

	// PathDashboard is where completed users are sent when they stray into
	// the onboarding flow.
	PathDashboard = "/dashboard"
)

// onboardingPaths is the set of pages a signed-in but not-yet-onboarded user
// is allowed to see.
var onboardingPaths = map[string]struct{}{
	PathProfileStep: {},
	PathDomainsStep: {},
	PathSkillsStep:  {},
}

// IsOnboardingPath reports whether the given page belongs to the onboarding flow.
func IsOnboardingPath(path string) bool {
	_, ok := onboardingPaths[path]
	return ok
}

// Decision is the gate's verdict for a page load: either a single redirect or
// a no-op. The gate never produces more than one side effect per load.
type Decision struct {
	Redirect bool   `json:"redirect"`
	Location string `json:"location,omitempty"`
}

// StatusSource answers the onboarding-status query for a bearer credential.
// The platform backend client implements it.
type StatusSource interface {
	OnboardingStatus(ctx context.Context, token string) (Status, error)
}

// Enforce runs the gate for one page load and returns its Decision.
//
// With no signed-in user the gate makes no decision at all: unauthenticated
// access is each page's own concern (a protected page redirects to login when
// its data fetch fails authorization). With a user present, exactly one status
// query is issued; a failed query yields StatusUnknown, which is logged and
// never redirects.
func Enforce(ctx context.Context, oracle session.Oracle, source StatusSource, currentPath string) Decision {
	user := oracle.CurrentUser()
	if user == nil {
		return Decision{}
	}

	token, err := oracle.BearerToken()
	if err != nil {
		logx.Warn("Gate: signed-in user without bearer credential, taking no action", "user_id", user.ID)
		return Decision{}
	}

	status, err := source.OnboardingStatus(ctx, token)
	if err != nil {
		// Fail open: an ambiguous status must never redirect.
		logx.Error(err, "Gate: onboarding status check failed, taking no action",
			"user_id", user.ID,
			"path", currentPath,
		)
		return Decision{}
	}

	switch status {
	case StatusPending:
		if !IsOnboardingPath(currentPath) {
			return Decision{Redirect: true, Location: PathProfileStep}
		}
	case StatusCompleted:
		if IsOnboardingPath(currentPath) {
			return Decision{Redirect: true, Location: PathDashboard}
		}
	case StatusUnknown:
		logx.Warn("Gate: status unknown, taking no action", "user_id", user.ID, "path", currentPath)
	}

	return Decision{}
}
