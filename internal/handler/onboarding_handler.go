/*
Package handler: onboarding wizard endpoints.

The wizard accumulates its draft under a scratch key before any account record
exists server-side. Signed-in callers key the draft by their account ID; a
visitor who reaches the wizard before the identity provider has attached a
token gets a scratch cookie instead, so the draft still survives reloads.
*/
package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"learnloop/internal/app/wizard"
	"learnloop/internal/pkg/errs"
	"learnloop/internal/pkg/req"
	"learnloop/internal/pkg/resp"
)

const scratchCookieName = "onboarding_scratch"

// scratchKey resolves the caller's draft key, minting the scratch cookie on
// first contact when the caller is anonymous.
func scratchKey(w http.ResponseWriter, r *http.Request) string {
	if user := oracleFor(r).CurrentUser(); user != nil {
		return "user:" + user.ID
	}

	if cookie, err := r.Cookie(scratchCookieName); err == nil && cookie.Value != "" {
		return "scratch:" + cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     scratchCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return "scratch:" + id
}

// stepTransition is what a successful step submission answers with: where the
// page should navigate next.
type stepTransition struct {
	Next string `json:"next"`
}

// HandleOnboardingState reports what a wizard page load should render. The
// page names the step it wants (?step=profile|domains|skills); when Ready is
// false the page must follow RecoveryPath instead of rendering.
func HandleOnboardingState(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := scratchKey(w, r)

		requested, ok := wizard.StepFromName(r.URL.Query().Get("step"))
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		state := deps.Machine.StepState(r.Context(), key, requested)
		resp.RespondSuccess(w, r, state)
	}
}

// HandleOnboardingCatalog serves the skill catalog the domains and skills
// pages render their choices from.
func HandleOnboardingCatalog(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := deps.Catalog.Fetch(r.Context())
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrCatalogUnavailable))
			return
		}
		resp.RespondSuccess(w, r, cat)
	}
}

// HandleProfileStep runs the first wizard step.
func HandleProfileStep(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := scratchKey(w, r)

		var input wizard.ProfileInput
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		next, cerr := deps.Machine.SubmitProfile(r.Context(), key, input)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}
		resp.RespondSuccess(w, r, stepTransition{Next: next})
	}
}

// HandleDomainsStep runs the second wizard step.
func HandleDomainsStep(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := scratchKey(w, r)

		var input wizard.DomainsInput
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		next, cerr := deps.Machine.SubmitDomains(r.Context(), key, input)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}
		resp.RespondSuccess(w, r, stepTransition{Next: next})
	}
}

// HandleSkillsStep runs the final wizard step and, on success, the one-shot
// submission to the platform backend. The session is required here — the
// backend will not accept an anonymous onboarding.
func HandleSkillsStep(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := scratchKey(w, r)
		oracle := oracleFor(r)

		var input wizard.SkillsInput
		if cerr := req.BindJSON(w, r, &input); cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}

		next, cerr := deps.Machine.SubmitSkills(r.Context(), key, oracle, input)
		if cerr != nil {
			resp.RespondError(w, r, cerr)
			return
		}
		resp.RespondSuccess(w, r, stepTransition{Next: next})
	}
}
