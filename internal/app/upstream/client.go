/*
Package upstream is the typed client for the platform backend.

Every call takes the caller's bearer token as an argument — the token comes
from the session oracle per call and is never held by the client. Failures are
mapped onto the shared error-code taxonomy: transport problems become
ErrBackendUnavailable, auth problems ErrUnauthorized, and structured backend
refusals ErrBackendRejected carrying the backend's own reason so pages can show
it verbatim.
*/
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"learnloop/internal/app/gate"
	"learnloop/internal/app/wizard"
	"learnloop/internal/pkg/errs"
	"learnloop/internal/pkg/logx"
)

const requestTimeout = 15 * time.Second

// Client talks to the platform backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// LearningTrack is one roadmap card on the dashboard. Generated flips to true
// only when the backend says so; the frontend never sets it optimistically.
type LearningTrack struct {
	Skill           string `json:"skill"`
	SkillSlug       string `json:"skill_slug"`
	ProgressSummary string `json:"progress_summary"`
	ProgressPercent int    `json:"progress_percent"`
	Generated       bool   `json:"generated"`
}

// Dashboard is the payload of the backend's dashboard endpoint.
type Dashboard struct {
	Name           string          `json:"name"`
	Points         int             `json:"points"`
	LearningTracks []LearningTrack `json:"learningTracks"`
	IsTutor        bool            `json:"isTutor"`
}

// RoadmapWeek is one entry of a generated roadmap's weekly plan.
type RoadmapWeek struct {
	Week        int    `json:"week"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// Roadmap is a generated learning roadmap for one skill.
type Roadmap struct {
	Skill      string        `json:"skill"`
	SkillSlug  string        `json:"skill_slug"`
	WeeklyPlan []RoadmapWeek `json:"weeklyPlan"`
}

// LearningProfile carries the stream/branch/domain tags chosen at onboarding.
type LearningProfile struct {
	Stream          string   `json:"stream,omitempty"`
	Branch          string   `json:"branch,omitempty"`
	SelectedDomains []string `json:"selectedDomains,omitempty"`
}

// Profile is the full account profile the backend stores after onboarding.
type Profile struct {
	Name               string          `json:"name"`
	Username           string          `json:"username"`
	Headline           string          `json:"headline,omitempty"`
	PrimaryGoal        string          `json:"primaryGoal,omitempty"`
	Email              string          `json:"email,omitempty"`
	PreferredLanguages []string        `json:"preferredLanguages,omitempty"`
	Points             int             `json:"points"`
	Badges             []string        `json:"badges,omitempty"`
	ProfilePictureURL  string          `json:"profilePictureUrl,omitempty"`
	LearningProfile    LearningProfile `json:"learningProfile"`
}

// onboardingStatusResponse matches the gatekeeper endpoint's payload.
type onboardingStatusResponse struct {
	Status string `json:"status"`
}

// OnboardingStatus implements gate.StatusSource against the backend's
// gatekeeper endpoint. Any failure yields StatusUnknown with the cause; the
// gate decides what to do with it (nothing).
func (c *Client) OnboardingStatus(ctx context.Context, token string) (gate.Status, error) {
	var payload onboardingStatusResponse
	if cerr := c.getJSON(ctx, "/api/users/onboarding-status", token, &payload); cerr != nil {
		return gate.StatusUnknown, cerr
	}

	switch payload.Status {
	case "pending":
		return gate.StatusPending, nil
	case "completed":
		return gate.StatusCompleted, nil
	default:
		return gate.StatusUnknown, fmt.Errorf("unrecognized onboarding status %q", payload.Status)
	}
}

// SubmitOnboarding implements wizard.Submitter: it posts the completed draft
// to the backend's onboard endpoint.
func (c *Client) SubmitOnboarding(ctx context.Context, token string, d wizard.Draft) *errs.CustomError {
	return c.postJSON(ctx, "/api/users/onboard", token, d)
}

// RequestRoadmap implements jobs.Requester: it fires one generation request
// and treats any 2xx as acceptance. The backend answers 202 when queued.
func (c *Client) RequestRoadmap(ctx context.Context, token string, skill string) *errs.CustomError {
	return c.postJSON(ctx, "/api/roadmaps", token, map[string]string{"skill": skill})
}

// Dashboard fetches the signed-in user's dashboard data.
func (c *Client) Dashboard(ctx context.Context, token string) (Dashboard, *errs.CustomError) {
	var d Dashboard
	if cerr := c.getTypedJSON(ctx, "/api/dashboard", token, &d); cerr != nil {
		return Dashboard{}, cerr
	}
	return d, nil
}

// Roadmap fetches one generated roadmap by its skill slug. A 404 means the
// roadmap has not been generated yet (or never will be) and maps to its own
// error code so the page can say so instead of showing a generic failure.
func (c *Client) Roadmap(ctx context.Context, token string, slug string) (Roadmap, *errs.CustomError) {
	var r Roadmap
	if cerr := c.getTypedJSON(ctx, "/api/roadmaps/"+slug, token, &r); cerr != nil {
		if cerr.Code == errs.ErrBackendRejected && cerr.Status == http.StatusNotFound {
			return Roadmap{}, errs.NewError(errs.ErrRoadmapNotFound)
		}
		return Roadmap{}, cerr
	}
	return r, nil
}

// Profile fetches the signed-in user's full profile. A 404 means the account
// has not completed onboarding yet.
func (c *Client) Profile(ctx context.Context, token string) (Profile, *errs.CustomError) {
	var p Profile
	if cerr := c.getTypedJSON(ctx, "/api/profile", token, &p); cerr != nil {
		if cerr.Code == errs.ErrBackendRejected && cerr.Status == http.StatusNotFound {
			return Profile{}, errs.NewError(errs.ErrProfileNotFound)
		}
		return Profile{}, cerr
	}
	return p, nil
}

func (c *Client) getJSON(ctx context.Context, path string, token string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("backend answered %d for %s", res.StatusCode, path)
	}
	return json.NewDecoder(res.Body).Decode(dst)
}

// getTypedJSON is getJSON with the response mapped onto the error-code
// taxonomy instead of a bare error.
func (c *Client) getTypedJSON(ctx context.Context, path string, token string, dst any) *errs.CustomError {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errs.NewError(errs.ErrUnknown)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.httpClient.Do(req)
	if err != nil {
		logx.Error(err, "Backend request failed", "path", path)
		return errs.NewError(errs.ErrBackendUnavailable)
	}
	defer res.Body.Close()

	if cerr := mapStatus(res, path); cerr != nil {
		return cerr
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		logx.Error(err, "Backend response unreadable", "path", path)
		return errs.NewError(errs.ErrBackendUnavailable)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, token string, body any) *errs.CustomError {
	raw, err := json.Marshal(body)
	if err != nil {
		return errs.NewError(errs.ErrUnknown)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return errs.NewError(errs.ErrUnknown)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		logx.Error(err, "Backend request failed", "path", path)
		return errs.NewError(errs.ErrBackendUnavailable)
	}
	defer res.Body.Close()

	return mapStatus(res, path)
}

// mapStatus converts a non-2xx backend response into a typed error. The
// backend's own reason ({error} or {detail}, the field varies by endpoint) is
// carried through so pages show what the backend actually said.
func mapStatus(res *http.Response, path string) *errs.CustomError {
	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}
	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return errs.NewError(errs.ErrUnauthorized)
	}

	reason := backendReason(res.Body)
	if reason == "" {
		reason = fmt.Sprintf("backend answered %d for %s", res.StatusCode, path)
	}

	cerr := errs.NewError(errs.ErrBackendRejected, reason)
	cerr.Status = res.StatusCode
	return cerr
}

type backendError struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func backendReason(body io.Reader) string {
	var be backendError
	if err := json.NewDecoder(body).Decode(&be); err != nil {
		return ""
	}
	if be.Error != "" {
		return be.Error
	}
	return be.Detail
}
