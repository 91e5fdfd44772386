package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnloop/internal/app/catalog"
	"learnloop/internal/app/gate"
	"learnloop/internal/app/jobs"
	"learnloop/internal/app/upstream"
	"learnloop/internal/app/wizard"
	"learnloop/internal/configs"
	"learnloop/internal/handler"
	"learnloop/internal/pkg/auth/jwt"
	"learnloop/internal/pkg/errs"
)

const testSecret = "test-secret"

// fakeBackend stands in for the platform backend: pending until it receives a
// valid onboarding submission, completed afterwards.
type fakeBackend struct {
	mu        sync.Mutex
	onboarded bool
	received  wizard.Draft
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/users/onboarding-status", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		status := "pending"
		if f.onboarded {
			status = "completed"
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	})

	mux.HandleFunc("POST /api/users/onboard", func(w http.ResponseWriter, r *http.Request) {
		var d wizard.Draft
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "malformed payload"})
			return
		}

		f.mu.Lock()
		defer f.mu.Unlock()
		f.onboarded = true
		f.received = d
		w.WriteHeader(http.StatusCreated)
	})

	mux.HandleFunc("POST /api/roadmaps", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "scheduled"})
	})

	return mux
}

type staticCatalog struct {
	cat catalog.Catalog
}

func (s staticCatalog) Fetch(ctx context.Context) (catalog.Catalog, error) {
	return s.cat, nil
}

func onboardingCatalog() catalog.Catalog {
	return catalog.Catalog{
		"BTech": {
			"CSE": {Domains: map[string]catalog.Domain{
				"Web Dev": {Skills: []string{"React", "Node.js"}},
			}},
		},
	}
}

type testEnv struct {
	router  http.Handler
	backend *fakeBackend
	store   *wizard.MemoryStore
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := &fakeBackend{}
	backendSrv := httptest.NewServer(backend.handler())
	t.Cleanup(backendSrv.Close)

	client := upstream.NewClient(backendSrv.URL)
	store := wizard.NewMemoryStore()
	source := staticCatalog{cat: onboardingCatalog()}

	deps := &handler.AppDeps{
		Config: &configs.AppConfig{
			Environment: "development",
			JWTSecret:   testSecret,
		},
		Backend: client,
		Machine: wizard.NewMachine(store, source, client),
		Tracker: jobs.NewTracker(client),
		Catalog: source,
	}

	payload := &jwt.Payload{Name: "Ann", Username: "ann"}
	payload.Subject = "user_1"
	token, err := jwt.GenerateToken(payload, testSecret, time.Hour)
	require.NoError(t, err)

	return &testEnv{
		router:  handler.Router(deps),
		backend: backend,
		store:   store,
		token:   token,
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestOnboardingEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	// A pending user straying onto the dashboard is sent to step one.
	rec, body := env.do(t, http.MethodGet, "/api/gate?path=/dashboard", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decision := decodeData[gate.Decision](t, body)
	assert.True(t, decision.Redirect)
	assert.Equal(t, gate.PathProfileStep, decision.Location)

	// Step 1: profile.
	rec, body = env.do(t, http.MethodPost, "/api/onboarding/profile", env.token, map[string]any{
		"username":           "ann",
		"preferredLanguages": []string{"en"},
	})
	require.Equal(t, http.StatusOK, rec.Code, body.Message)
	next := decodeData[map[string]string](t, body)
	assert.Equal(t, gate.PathDomainsStep, next["next"])

	// Step 2: domains.
	rec, body = env.do(t, http.MethodPost, "/api/onboarding/domains", env.token, map[string]any{
		"stream":          "BTech",
		"selectedDomains": []string{"Web Dev"},
	})
	require.Equal(t, http.StatusOK, rec.Code, body.Message)
	next = decodeData[map[string]string](t, body)
	assert.Equal(t, gate.PathSkillsStep, next["next"])

	// Step 3 renders ready with the accumulated draft.
	rec, body = env.do(t, http.MethodGet, "/api/onboarding/state?step=skills", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeData[wizard.State](t, body)
	assert.True(t, state.Ready)
	assert.Equal(t, "ann", state.Draft.Username)
	assert.Equal(t, "CSE", state.Draft.Branch, "the lone branch was auto-selected")

	// Final submission.
	rec, body = env.do(t, http.MethodPost, "/api/onboarding/skills", env.token, map[string]any{
		"skillsToLearn": []string{"React"},
		"skillsToTeach": []string{},
	})
	require.Equal(t, http.StatusOK, rec.Code, body.Message)
	next = decodeData[map[string]string](t, body)
	assert.Equal(t, gate.PathDashboard, next["next"])

	// The backend got the whole draft and the account is now onboarded.
	assert.Equal(t, "ann", env.backend.received.Username)
	assert.Equal(t, []string{"React"}, env.backend.received.SkillsToLearn)

	// The draft is gone from scratch storage.
	_, found, err := env.store.Load(context.Background(), "user:user_1")
	require.NoError(t, err)
	assert.False(t, found)

	// The gate now keeps the user out of the wizard.
	rec, body = env.do(t, http.MethodGet, "/api/gate?path=/onboarding/profile", env.token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decision = decodeData[gate.Decision](t, body)
	assert.True(t, decision.Redirect)
	assert.Equal(t, gate.PathDashboard, decision.Location)
}

func TestSkillsStepRefusedWithoutEarlierSteps(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/onboarding/skills", env.token, map[string]any{
		"skillsToLearn": []string{"React"},
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errs.ErrDraftNotReady, body.Code)
	assert.False(t, env.backend.onboarded)
}

func TestAnonymousDraftKeyedByScratchCookie(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/onboarding/profile", "", map[string]any{
		"username":           "ann",
		"preferredLanguages": []string{"en"},
	})
	require.Equal(t, http.StatusOK, rec.Code, body.Message)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "first anonymous contact mints the scratch cookie")
	scratch := cookies[0]
	assert.Equal(t, "onboarding_scratch", scratch.Name)

	// A later load carrying the cookie sees the same draft.
	req := httptest.NewRequest(http.MethodGet, "/api/onboarding/state?step=domains", nil)
	req.AddCookie(scratch)
	rec2 := httptest.NewRecorder()
	env.router.ServeHTTP(rec2, req)

	var env2 envelope
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &env2))
	state := decodeData[wizard.State](t, env2)
	assert.True(t, state.Ready)
	assert.Equal(t, "ann", state.Draft.Username)
}

func TestGateRequiresPathParam(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/gate", env.token, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.ErrInvalidParams, body.Code)
}

func TestNavViewForAnonymousAndSignedIn(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.do(t, http.MethodGet, "/api/nav", "", nil)
	anon := decodeData[map[string]any](t, body)
	assert.Equal(t, false, anon["signedIn"])

	_, body = env.do(t, http.MethodGet, "/api/nav", env.token, nil)
	signed := decodeData[map[string]any](t, body)
	assert.Equal(t, true, signed["signedIn"])
	assert.Equal(t, "Ann", signed["greeting"])
}

func TestRequestRoadmapQueuedAck(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/roadmaps", env.token, map[string]string{
		"skill": "Logical Reasoning",
	})

	require.Equal(t, http.StatusOK, rec.Code, body.Message)
	ack := decodeData[map[string]any](t, body)
	assert.Equal(t, "queued", ack["outcome"])
	assert.Equal(t, "logical-reasoning", ack["slug"])
}

func TestRequestRoadmapRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/roadmaps", "", map[string]string{
		"skill": "Python",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, errs.ErrUnauthorized, body.Code)
}

func TestOnboardingCatalogServed(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/onboarding/catalog", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	cat := decodeData[catalog.Catalog](t, body)
	_, ok := cat.Branches("BTech")
	assert.True(t, ok)
}
