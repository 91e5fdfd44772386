package wizard

import (
	"context"

	"learnloop/internal/app/catalog"
	"learnloop/internal/app/gate"
	"learnloop/internal/app/session"
	"learnloop/internal/pkg/errs"
	"learnloop/internal/pkg/logx"
)

// Submitter performs the single onboarding submission against the platform
// backend. The backend client implements it.
type Submitter interface {
	SubmitOnboarding(ctx context.Context, token string, d Draft) *errs.CustomError
}

// Machine coordinates the wizard: it loads and persists the draft through the
// Store, validates selections against the catalog, and hands the completed
// draft to the Submitter exactly once.
type Machine struct {
	store     Store
	source    catalog.Source
	submitter Submitter
}

// NewMachine wires the wizard's collaborators together.
func NewMachine(store Store, source catalog.Source, submitter Submitter) *Machine {
	return &Machine{
		store:     store,
		source:    source,
		submitter: submitter,
	}
}

// State describes what a wizard page load should render: the requested step,
// the current draft to pre-fill form fields from, and whether the step may
// run at all. When Ready is false the page must immediately redirect to
// RecoveryPath instead of rendering — that is how a stale bookmark or a
// cleared draft is recovered from.
type State struct {
	Step         Step   `json:"step"`
	Draft        Draft  `json:"draft"`
	Ready        bool   `json:"ready"`
	RecoveryPath string `json:"recoveryPath,omitempty"`
}

// StepState loads the draft and evaluates whether the requested step may
// render. A storage failure is not fatal to rendering: the wizard degrades to
// an empty draft, which at worst sends the visitor back to the first step.
func (m *Machine) StepState(ctx context.Context, key string, requested Step) State {
	draft, _, err := m.store.Load(ctx, key)
	if err != nil {
		logx.Error(err, "Draft load failed, rendering from an empty draft", "key", key)
		draft = Draft{}
	}

	state := State{
		Step:  requested,
		Draft: draft,
		Ready: Ready(requested, draft),
	}
	if !state.Ready {
		state.RecoveryPath = StepForDraft(draft).Path()
	}
	return state
}

// SubmitProfile runs the profile step: validate, merge, persist. It returns
// the path of the next step.
func (m *Machine) SubmitProfile(ctx context.Context, key string, in ProfileInput) (string, *errs.CustomError) {
	draft, _, err := m.store.Load(ctx, key)
	if err != nil {
		return "", errs.NewError(errs.ErrDraftStorage)
	}

	merged, cerr := ApplyProfile(draft, in)
	if cerr != nil {
		return "", cerr
	}
	if err := m.store.Save(ctx, key, merged); err != nil {
		return "", errs.NewError(errs.ErrDraftStorage)
	}
	return StepDomains.Path(), nil
}

// SubmitDomains runs the domains step: validate against the catalog, merge,
// persist. The profile step must already have run for this draft.
func (m *Machine) SubmitDomains(ctx context.Context, key string, in DomainsInput) (string, *errs.CustomError) {
	draft, _, err := m.store.Load(ctx, key)
	if err != nil {
		return "", errs.NewError(errs.ErrDraftStorage)
	}
	if !Ready(StepDomains, draft) {
		return "", errs.NewError(errs.ErrDraftNotReady)
	}

	cat, err := m.source.Fetch(ctx)
	if err != nil {
		logx.Error(err, "Skill catalog fetch failed")
		return "", errs.NewError(errs.ErrCatalogUnavailable)
	}

	merged, cerr := ApplyDomains(cat, draft, in)
	if cerr != nil {
		return "", cerr
	}
	if err := m.store.Save(ctx, key, merged); err != nil {
		return "", errs.NewError(errs.ErrDraftStorage)
	}
	return StepSkills.Path(), nil
}

// SubmitSkills runs the final step: validate, merge, persist, then submit the
// completed draft to the backend and clear it on success.
//
// Ordering here is the point. The merged draft is persisted before the
// network call, so a failed submission loses nothing — the visitor lands back
// on the skills step with every selection intact and may retry. The draft is
// cleared only after a confirmed success, and the clear happens exactly once
// because a cleared draft can never reach this step again (Ready fails and
// the page recovers to the first step instead).
func (m *Machine) SubmitSkills(ctx context.Context, key string, oracle session.Oracle, in SkillsInput) (string, *errs.CustomError) {
	draft, _, err := m.store.Load(ctx, key)
	if err != nil {
		return "", errs.NewError(errs.ErrDraftStorage)
	}
	if !Ready(StepSkills, draft) {
		return "", errs.NewError(errs.ErrDraftNotReady)
	}

	cat, err := m.source.Fetch(ctx)
	if err != nil {
		logx.Error(err, "Skill catalog fetch failed")
		return "", errs.NewError(errs.ErrCatalogUnavailable)
	}

	merged, cerr := ApplySkills(cat, draft, in)
	if cerr != nil {
		return "", cerr
	}
	if err := m.store.Save(ctx, key, merged); err != nil {
		return "", errs.NewError(errs.ErrDraftStorage)
	}

	token, err := oracle.BearerToken()
	if err != nil {
		return "", errs.NewError(errs.ErrUnauthorized)
	}

	if cerr := m.submitter.SubmitOnboarding(ctx, token, merged); cerr != nil {
		return "", cerr
	}

	// The caller navigated away mid-flight; the response is stale. The
	// submission itself succeeded server-side, so the draft still goes — the
	// next gate check will route the account correctly.
	if ctx.Err() != nil {
		logx.Warn("Skills submission outlived its page load", "key", key)
	}

	if err := m.store.Clear(ctx, key); err != nil {
		// Success already happened; a lingering draft is harmless because the
		// completed account never reaches the wizard again.
		logx.Error(err, "Draft clear failed after successful submission", "key", key)
	}
	return gate.PathDashboard, nil
}
