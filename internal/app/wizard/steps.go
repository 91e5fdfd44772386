package wizard

import (
	"regexp"

	"learnloop/internal/app/catalog"
	"learnloop/internal/app/gate"
	"learnloop/internal/pkg/errs"
)

// usernameRegex mirrors the backend's username rules so a doomed submission is
// caught on the first step instead of the last.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// Step identifies a wizard state. Transitions are strictly linear; the only
// way "back" is the browser itself, which simply re-renders an earlier step
// from the persisted draft.
type Step int

const (
	StepProfile Step = iota + 1
	StepDomains
	StepSkills
	StepSubmitted
)

// String returns the step's wire name.
func (s Step) String() string {
	switch s {
	case StepProfile:
		return "profile"
	case StepDomains:
		return "domains"
	case StepSkills:
		return "skills"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Path returns the page path that renders this step. The submitted state has
// no page of its own — it redirects to the dashboard.
func (s Step) Path() string {
	switch s {
	case StepProfile:
		return gate.PathProfileStep
	case StepDomains:
		return gate.PathDomainsStep
	case StepSkills:
		return gate.PathSkillsStep
	default:
		return gate.PathDashboard
	}
}

// StepFromName parses a wire step name. Unknown names report false.
func StepFromName(name string) (Step, bool) {
	switch name {
	case "profile":
		return StepProfile, true
	case "domains":
		return StepDomains, true
	case "skills":
		return StepSkills, true
	default:
		return 0, false
	}
}

// StepForDraft derives the furthest step the draft has legitimately reached.
func StepForDraft(d Draft) Step {
	if !d.HasProfile() {
		return StepProfile
	}
	if !d.HasDomains() {
		return StepDomains
	}
	return StepSkills
}

// Ready reports whether the given step may render and accept input for this
// draft: every field owned by an earlier step must already be present. This is
// what stops a bookmarked skills page from running on partial data.
func Ready(s Step, d Draft) bool {
	switch s {
	case StepProfile:
		return true
	case StepDomains:
		return d.HasProfile()
	case StepSkills:
		return d.HasProfile() && d.HasDomains()
	default:
		return false
	}
}

// ProfileInput carries the profile step's form fields.
type ProfileInput struct {
	Username           string   `json:"username"`
	Headline           string   `json:"headline"`
	PrimaryGoal        string   `json:"primaryGoal"`
	PreferredLanguages []string `json:"preferredLanguages"`
}

// ApplyProfile validates the profile input and merges it into the draft.
// The returned draft is a copy; the caller persists it.
func ApplyProfile(d Draft, in ProfileInput) (Draft, *errs.CustomError) {
	if !usernameRegex.MatchString(in.Username) {
		return d, errs.NewError(errs.ErrUsernameInvalid)
	}

	languages := normalizeSet(in.PreferredLanguages)
	if len(languages) == 0 {
		return d, errs.NewError(errs.ErrLanguagesRequired)
	}

	d.Username = in.Username
	d.Headline = in.Headline
	d.PrimaryGoal = in.PrimaryGoal
	d.PreferredLanguages = languages
	return d, nil
}

// DomainsInput carries the domains step's selections.
type DomainsInput struct {
	Stream          string   `json:"stream"`
	Branch          string   `json:"branch"`
	SelectedDomains []string `json:"selectedDomains"`
}

// ApplyDomains validates the domain selections against the catalog and merges
// them into the draft. A stream with exactly one branch auto-selects that
// branch when the input leaves it empty — single-option lists never require an
// explicit click.
func ApplyDomains(c catalog.Catalog, d Draft, in DomainsInput) (Draft, *errs.CustomError) {
	if in.Stream == "" {
		return d, errs.NewError(errs.ErrStreamRequired)
	}
	if _, ok := c.Branches(in.Stream); !ok {
		return d, errs.NewError(errs.ErrCatalogMismatch, in.Stream)
	}

	branch := in.Branch
	if branch == "" {
		if only, ok := c.SingleBranch(in.Stream); ok {
			branch = only
		}
	}
	if branch == "" {
		return d, errs.NewError(errs.ErrBranchRequired)
	}
	if _, ok := c.Domains(in.Stream, branch); !ok {
		return d, errs.NewError(errs.ErrCatalogMismatch, branch)
	}

	domains := normalizeSet(in.SelectedDomains)
	if len(domains) == 0 {
		return d, errs.NewError(errs.ErrDomainsRequired)
	}
	for _, domain := range domains {
		if !c.HasDomain(in.Stream, branch, domain) {
			return d, errs.NewError(errs.ErrCatalogMismatch, domain)
		}
	}

	d.Stream = in.Stream
	d.Branch = branch
	d.SelectedDomains = domains
	return d, nil
}

// SkillsInput carries the skills step's selections. Both lists may be empty:
// a user is allowed to defer choosing anything.
type SkillsInput struct {
	SkillsToLearn []string `json:"skillsToLearn"`
	SkillsToTeach []string `json:"skillsToTeach"`
}

// ApplySkills validates the selections against the catalog (well-formedness
// only — zero selections are fine) and merges them into the draft.
func ApplySkills(c catalog.Catalog, d Draft, in SkillsInput) (Draft, *errs.CustomError) {
	learn := normalizeSet(in.SkillsToLearn)
	teach := normalizeSet(in.SkillsToTeach)

	for _, skill := range learn {
		if !c.HasSkill(d.Stream, d.Branch, d.SelectedDomains, skill) {
			return d, errs.NewError(errs.ErrCatalogMismatch, skill)
		}
	}
	for _, skill := range teach {
		if !c.HasSkill(d.Stream, d.Branch, d.SelectedDomains, skill) {
			return d, errs.NewError(errs.ErrCatalogMismatch, skill)
		}
	}

	d.SkillsToLearn = learn
	d.SkillsToTeach = teach
	return d, nil
}
