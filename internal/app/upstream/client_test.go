package upstream_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/app/gate"
	"learnloop/internal/app/upstream"
	"learnloop/internal/app/wizard"
	"learnloop/internal/pkg/errs"
)

func TestOnboardingStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		httpCode int
		want     gate.Status
		wantErr  bool
	}{
		{"pending", `{"status":"pending"}`, http.StatusOK, gate.StatusPending, false},
		{"completed", `{"status":"completed"}`, http.StatusOK, gate.StatusCompleted, false},
		{"unrecognized", `{"status":"archived"}`, http.StatusOK, gate.StatusUnknown, true},
		{"server error", `{"detail":"boom"}`, http.StatusInternalServerError, gate.StatusUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/users/onboarding-status", r.URL.Path)
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				w.WriteHeader(tt.httpCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			status, err := upstream.NewClient(srv.URL).OnboardingStatus(context.Background(), "tok")

			assert.Equal(t, tt.want, status)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmitOnboardingSendsFullDraft(t *testing.T) {
	var received wizard.Draft
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/onboard", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	draft := wizard.Draft{
		Username:           "ann",
		PreferredLanguages: []string{"en"},
		Stream:             "BTech",
		Branch:             "CSE",
		SelectedDomains:    []string{"Web Dev"},
		SkillsToLearn:      []string{"React"},
	}

	cerr := upstream.NewClient(srv.URL).SubmitOnboarding(context.Background(), "tok", draft)

	require.Nil(t, cerr)
	assert.Equal(t, draft, received)
}

func TestSubmitOnboardingCarriesBackendReason(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"username taken"}`, "username taken"},
		{"detail field", `{"detail":"username taken"}`, "username taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			cerr := upstream.NewClient(srv.URL).SubmitOnboarding(context.Background(), "tok", wizard.Draft{})

			require.NotNil(t, cerr)
			assert.Equal(t, errs.ErrBackendRejected, cerr.Code)
			assert.Equal(t, tt.want, cerr.Message)
		})
	}
}

func TestAuthFailuresMapToUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, cerr := upstream.NewClient(srv.URL).Dashboard(context.Background(), "expired")

	require.NotNil(t, cerr)
	assert.Equal(t, errs.ErrUnauthorized, cerr.Code)
}

func TestTransportFailureMapsToBackendUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	cerr := upstream.NewClient(srv.URL).RequestRoadmap(context.Background(), "tok", "Python")

	require.NotNil(t, cerr)
	assert.Equal(t, errs.ErrBackendUnavailable, cerr.Code)
}

func TestDashboardDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/dashboard", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"name": "Ann",
			"points": 120,
			"isTutor": true,
			"learningTracks": [
				{"skill": "Python", "skill_slug": "python", "progress_summary": "Week 2 of 8", "progress_percent": 25, "generated": true},
				{"skill": "React", "skill_slug": "react", "progress_summary": "", "progress_percent": 0, "generated": false}
			]
		}`))
	}))
	defer srv.Close()

	dashboard, cerr := upstream.NewClient(srv.URL).Dashboard(context.Background(), "tok")

	require.Nil(t, cerr)
	assert.Equal(t, "Ann", dashboard.Name)
	assert.Equal(t, 120, dashboard.Points)
	assert.True(t, dashboard.IsTutor)
	require.Len(t, dashboard.LearningTracks, 2)
	assert.True(t, dashboard.LearningTracks[0].Generated)
	assert.False(t, dashboard.LearningTracks[1].Generated, "generated only flips on backend confirmation")
}

func TestRoadmapNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/roadmaps/python", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Roadmap not found."}`))
	}))
	defer srv.Close()

	_, cerr := upstream.NewClient(srv.URL).Roadmap(context.Background(), "tok", "python")

	require.NotNil(t, cerr)
	assert.Equal(t, errs.ErrRoadmapNotFound, cerr.Code)
}

func TestRoadmapDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"skill": "Python",
			"skill_slug": "python",
			"weeklyPlan": [
				{"week": 1, "topic": "Basics", "description": "Syntax and types"},
				{"week": 2, "topic": "Collections", "description": "Lists and dicts"}
			]
		}`))
	}))
	defer srv.Close()

	roadmap, cerr := upstream.NewClient(srv.URL).Roadmap(context.Background(), "tok", "python")

	require.Nil(t, cerr)
	assert.Equal(t, "Python", roadmap.Skill)
	require.Len(t, roadmap.WeeklyPlan, 2)
	assert.Equal(t, 1, roadmap.WeeklyPlan[0].Week)
	assert.Equal(t, "Collections", roadmap.WeeklyPlan[1].Topic)
}

func TestProfileNotFoundBeforeOnboarding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/profile", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"User profile not found in our database."}`))
	}))
	defer srv.Close()

	_, cerr := upstream.NewClient(srv.URL).Profile(context.Background(), "tok")

	require.NotNil(t, cerr)
	assert.Equal(t, errs.ErrProfileNotFound, cerr.Code)
}
