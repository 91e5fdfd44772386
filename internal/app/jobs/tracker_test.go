package jobs_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/app/jobs"
	"learnloop/internal/pkg/errs"
)

type blockingRequester struct {
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func newBlockingRequester() *blockingRequester {
	return &blockingRequester{
		started: make(chan struct{}, 8),
		release: make(chan struct{}),
	}
}

func (r *blockingRequester) RequestRoadmap(ctx context.Context, token string, skill string) *errs.CustomError {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	r.started <- struct{}{}
	<-r.release
	return nil
}

func (r *blockingRequester) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestSlugForSkill(t *testing.T) {
	assert.Equal(t, "python", jobs.SlugForSkill("Python"))
	assert.Equal(t, "logical-reasoning", jobs.SlugForSkill("Logical Reasoning"))
	assert.Equal(t, "c%2B%2B", jobs.SlugForSkill("C++"))
}

func TestRequestRejectsDuplicateWhileInFlight(t *testing.T) {
	requester := newBlockingRequester()
	tracker := jobs.NewTracker(requester)

	done := make(chan struct{})
	go func() {
		defer close(done)
		outcome, cerr := tracker.Request(context.Background(), "tok", "user_1", "Python")
		assert.Nil(t, cerr)
		assert.Equal(t, jobs.OutcomeQueued, outcome)
	}()
	<-requester.started

	require.True(t, tracker.InFlight("user_1", "Python"))

	// The duplicate is refused locally, before reaching the backend.
	outcome, cerr := tracker.Request(context.Background(), "tok", "user_1", "Python")
	require.NotNil(t, cerr)
	assert.Equal(t, errs.ErrRoadmapInFlight, cerr.Code)
	assert.Equal(t, jobs.OutcomeRejected, outcome)
	assert.Equal(t, 1, requester.callCount())

	close(requester.release)
	<-done

	assert.False(t, tracker.InFlight("user_1", "Python"))
}

func TestRequestAllowsRetryAfterCompletion(t *testing.T) {
	requester := newBlockingRequester()
	tracker := jobs.NewTracker(requester)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = tracker.Request(context.Background(), "tok", "user_1", "Python")
	}()
	<-requester.started
	close(requester.release)
	<-done

	requester.release = make(chan struct{})
	go func() {
		_, _ = tracker.Request(context.Background(), "tok", "user_1", "Python")
	}()
	<-requester.started
	assert.Equal(t, 2, requester.callCount(), "once the first completes, the skill may be requested again")
	close(requester.release)
}

func TestRequestDistinctSkillsRunIndependently(t *testing.T) {
	requester := newBlockingRequester()
	tracker := jobs.NewTracker(requester)

	for _, skill := range []string{"Python", "React"} {
		go func(s string) {
			_, _ = tracker.Request(context.Background(), "tok", "user_1", s)
		}(skill)
	}
	<-requester.started
	<-requester.started

	assert.Equal(t, 2, requester.callCount())
	close(requester.release)
}

func TestRequestValidation(t *testing.T) {
	tracker := jobs.NewTracker(newBlockingRequester())

	_, cerr := tracker.Request(context.Background(), "tok", "user_1", "   ")
	require.NotNil(t, cerr)
	assert.Equal(t, errs.ErrRoadmapSkillRequired, cerr.Code)

	_, cerr = tracker.Request(context.Background(), "tok", "", "Python")
	require.NotNil(t, cerr)
	assert.Equal(t, errs.ErrUnauthorized, cerr.Code)
}

type rejectingRequester struct{}

func (rejectingRequester) RequestRoadmap(ctx context.Context, token string, skill string) *errs.CustomError {
	return errs.NewError(errs.ErrBackendRejected, "roadmap already exists")
}

func TestRequestSurfacesBackendRejection(t *testing.T) {
	tracker := jobs.NewTracker(rejectingRequester{})

	outcome, cerr := tracker.Request(context.Background(), "tok", "user_1", "Python")

	require.NotNil(t, cerr)
	assert.Equal(t, jobs.OutcomeRejected, outcome)
	assert.Equal(t, "roadmap already exists", cerr.Message)

	// The rejection released the in-flight guard; the control re-enables.
	assert.False(t, tracker.InFlight("user_1", "Python"))
}
