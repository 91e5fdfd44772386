/*
Package jobs implements the roadmap job tracker.

Roadmap generation runs asynchronously on the platform backend; this side only
fires the request and confirms acceptance. There is no push channel and no
polling loop — a queued job's eventual completion shows up on the next
dashboard load, where a finished roadmap renders as a link and an unfinished
one as a static "generating" badge. The tracker's job is the submission
lifecycle: one in-flight request per skill per caller, with duplicates refused
locally before they ever reach the backend.
*/
package jobs

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"learnloop/internal/pkg/errs"
)

// Outcome is the backend's verdict on a generation request.
type Outcome int

const (
	// OutcomeQueued means the backend accepted the job. Acceptance is not
	// completion; the roadmap materializes later.
	OutcomeQueued Outcome = iota + 1

	// OutcomeRejected means the backend refused the job (duplicate roadmap,
	// quota, bad skill). The refusal reason comes back as the error.
	OutcomeRejected
)

// String returns the wire spelling of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeQueued:
		return "queued"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Requester fires the generation request at the platform backend. The backend
// client implements it.
type Requester interface {
	RequestRoadmap(ctx context.Context, token string, skill string) *errs.CustomError
}

// Tracker serializes roadmap generation requests per caller and skill. While
// a request is in flight, an identical one is refused without touching the
// backend; distinct skills submit independently.
type Tracker struct {
	requester Requester

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewTracker builds a Tracker around the given Requester.
func NewTracker(requester Requester) *Tracker {
	return &Tracker{
		requester: requester,
		inflight:  make(map[string]struct{}),
	}
}

// SlugForSkill converts a display skill name into the URL slug the backend
// keys roadmaps by: lowercased, spaces to dashes, then path-escaped.
func SlugForSkill(skill string) string {
	return url.PathEscape(strings.ReplaceAll(strings.ToLower(skill), " ", "-"))
}

// Request fires one generation request for the caller and skill. It blocks
// until the backend answers and returns the queued/rejected outcome; the
// in-flight guard is held for exactly that window, so the submit control
// stays disabled while the answer is pending and re-enables either way.
func (t *Tracker) Request(ctx context.Context, token string, callerID string, skill string) (Outcome, *errs.CustomError) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return OutcomeRejected, errs.NewError(errs.ErrRoadmapSkillRequired)
	}
	if callerID == "" {
		return OutcomeRejected, errs.NewError(errs.ErrUnauthorized)
	}

	key := callerID + "|" + SlugForSkill(skill)
	if !t.acquire(key) {
		return OutcomeRejected, errs.NewError(errs.ErrRoadmapInFlight)
	}
	defer t.release(key)

	if cerr := t.requester.RequestRoadmap(ctx, token, skill); cerr != nil {
		return OutcomeRejected, cerr
	}
	return OutcomeQueued, nil
}

// InFlight reports whether a request for the caller and skill is currently
// pending. Pages use it to render the submit control in its disabled state
// after a reload mid-request.
func (t *Tracker) InFlight(callerID string, skill string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inflight[callerID+"|"+SlugForSkill(skill)]
	return ok
}

func (t *Tracker) acquire(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.inflight[key]; busy {
		return false
	}
	t.inflight[key] = struct{}{}
	return true
}

func (t *Tracker) release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inflight, key)
}
