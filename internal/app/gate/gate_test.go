package gate_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/app/gate"
	"learnloop/internal/app/session"
)

type stubOracle struct {
	user  *session.User
	token string
}

func (o *stubOracle) CurrentUser() *session.User { return o.user }

func (o *stubOracle) BearerToken() (string, error) {
	if o.user == nil || o.token == "" {
		return "", session.ErrNoSession
	}
	return o.token, nil
}

func (o *stubOracle) Subscribe(func(*session.User)) func() { return func() {} }

type stubSource struct {
	status gate.Status
	err    error
	calls  int
}

func (s *stubSource) OnboardingStatus(ctx context.Context, token string) (gate.Status, error) {
	s.calls++
	return s.status, s.err
}

func signedIn() *stubOracle {
	return &stubOracle{
		user:  &session.User{ID: "user_1", Username: "ann"},
		token: "token-1",
	}
}

func TestEnforceRedirectTable(t *testing.T) {
	tests := []struct {
		name         string
		status       gate.Status
		path         string
		wantRedirect bool
		wantLocation string
	}{
		{"pending on app page", gate.StatusPending, "/dashboard", true, gate.PathProfileStep},
		{"pending on profile page", gate.StatusPending, "/profile", true, gate.PathProfileStep},
		{"pending on onboarding step 1", gate.StatusPending, gate.PathProfileStep, false, ""},
		{"pending on onboarding step 2", gate.StatusPending, gate.PathDomainsStep, false, ""},
		{"pending on onboarding step 3", gate.StatusPending, gate.PathSkillsStep, false, ""},
		{"completed on onboarding step 1", gate.StatusCompleted, gate.PathProfileStep, true, gate.PathDashboard},
		{"completed on onboarding step 3", gate.StatusCompleted, gate.PathSkillsStep, true, gate.PathDashboard},
		{"completed on app page", gate.StatusCompleted, "/dashboard", false, ""},
		{"completed on profile page", gate.StatusCompleted, "/profile", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &stubSource{status: tt.status}

			decision := gate.Enforce(context.Background(), signedIn(), source, tt.path)

			assert.Equal(t, tt.wantRedirect, decision.Redirect)
			assert.Equal(t, tt.wantLocation, decision.Location)
			assert.Equal(t, 1, source.calls, "exactly one status query per page load")
		})
	}
}

func TestEnforceFailsOpenOnStatusError(t *testing.T) {
	source := &stubSource{err: errors.New("upstream timeout")}

	for _, path := range []string{"/dashboard", "/profile", gate.PathProfileStep, gate.PathSkillsStep} {
		decision := gate.Enforce(context.Background(), signedIn(), source, path)
		assert.False(t, decision.Redirect, "a failed status query must never redirect (path %s)", path)
	}
}

func TestEnforceUnknownStatusNeverRedirects(t *testing.T) {
	source := &stubSource{status: gate.StatusUnknown}

	decision := gate.Enforce(context.Background(), signedIn(), source, "/dashboard")
	assert.False(t, decision.Redirect)
}

func TestEnforceAnonymousMakesNoDecision(t *testing.T) {
	source := &stubSource{status: gate.StatusPending}

	decision := gate.Enforce(context.Background(), &stubOracle{}, source, "/dashboard")

	require.False(t, decision.Redirect)
	assert.Zero(t, source.calls, "no status query without a signed-in user")
}

func TestEnforceMissingTokenMakesNoDecision(t *testing.T) {
	oracle := &stubOracle{user: &session.User{ID: "user_1"}}
	source := &stubSource{status: gate.StatusPending}

	decision := gate.Enforce(context.Background(), oracle, source, "/dashboard")

	assert.False(t, decision.Redirect)
	assert.Zero(t, source.calls)
}

func TestIsOnboardingPath(t *testing.T) {
	assert.True(t, gate.IsOnboardingPath(gate.PathProfileStep))
	assert.True(t, gate.IsOnboardingPath(gate.PathDomainsStep))
	assert.True(t, gate.IsOnboardingPath(gate.PathSkillsStep))
	assert.False(t, gate.IsOnboardingPath("/dashboard"))
	assert.False(t, gate.IsOnboardingPath("/onboarding/unknown"))
}
