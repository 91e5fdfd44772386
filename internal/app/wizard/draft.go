/*
Package wizard implements the three-step onboarding wizard.

The wizard is a strictly linear state machine (Profile → Domains → Skills →
Submitted) that accumulates a single mutable draft across independent page
loads. Each step validates its own input, merges its own fields into the
persisted draft, and only then advances; the completed draft is submitted to
the platform backend exactly once. No account record exists server-side until
that submission succeeds.
*/
package wizard

// Draft is the onboarding draft record. It lives in the scratch store under a
// per-visitor key, survives reloads, and is cleared exactly once — on
// successful submission. Every field is optional until the step that owns it
// has run; steps own disjoint fields, so merges never race per field.
//
// The JSON shape doubles as the submission payload the backend expects.
type Draft struct {
	// Owned by the profile step.
	Username           string   `json:"username,omitempty"`
	Headline           string   `json:"headline,omitempty"`
	PrimaryGoal        string   `json:"primaryGoal,omitempty"`
	PreferredLanguages []string `json:"preferredLanguages,omitempty"`

	// Owned by the domains step.
	Stream          string   `json:"stream,omitempty"`
	Branch          string   `json:"branch,omitempty"`
	SelectedDomains []string `json:"selectedDomains,omitempty"`

	// Owned by the skills step. Learn and teach are independent choices; a
	// user may pick both for the same skill, or nothing at all.
	SkillsToLearn []string `json:"skillsToLearn,omitempty"`
	SkillsToTeach []string `json:"skillsToTeach,omitempty"`
}

// HasProfile reports whether the profile step has completed its merge.
func (d Draft) HasProfile() bool {
	return d.Username != "" && len(d.PreferredLanguages) > 0
}

// HasDomains reports whether the domains step has completed its merge.
func (d Draft) HasDomains() bool {
	return d.Stream != "" && d.Branch != "" && len(d.SelectedDomains) > 0
}

// normalizeSet applies set semantics to a selection list: empties dropped,
// duplicates removed, first-seen order preserved.
func normalizeSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
