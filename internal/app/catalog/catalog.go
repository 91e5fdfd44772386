/*
Package catalog provides the skill catalog: the read-only reference table the
onboarding wizard is built from.

The catalog is a three-level mapping Stream → Branch → Domain, each domain
carrying its list of skills. It is versionless, owned elsewhere, fetched once
per wizard session, and never mutated by the core.
*/
package catalog

import "sort"

// Domain holds the skills offered under one domain.
type Domain struct {
	Skills []string `json:"skills"`
}

// Branch maps domain names to their skill lists.
type Branch struct {
	Domains map[string]Domain `json:"domains"`
}

// Catalog is the full Stream → Branch → Domain reference table.
type Catalog map[string]map[string]Branch

// Streams returns the stream names in stable (sorted) order.
func (c Catalog) Streams() []string {
	streams := make([]string, 0, len(c))
	for name := range c {
		streams = append(streams, name)
	}
	sort.Strings(streams)
	return streams
}

// Branches returns the branch names under the given stream in stable order,
// and whether the stream exists.
func (c Catalog) Branches(stream string) ([]string, bool) {
	branches, ok := c[stream]
	if !ok {
		return nil, false
	}

	names := make([]string, 0, len(branches))
	for name := range branches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

// SingleBranch reports the lone branch of a stream, if the stream has exactly
// one. Single-option lists never require an explicit user click: the wizard
// auto-selects such a branch and advances.
func (c Catalog) SingleBranch(stream string) (string, bool) {
	branches, ok := c[stream]
	if !ok || len(branches) != 1 {
		return "", false
	}
	for name := range branches {
		return name, true
	}
	return "", false
}

// Domains returns the domain names under stream/branch in stable order, and
// whether that branch exists.
func (c Catalog) Domains(stream, branch string) ([]string, bool) {
	branches, ok := c[stream]
	if !ok {
		return nil, false
	}
	b, ok := branches[branch]
	if !ok {
		return nil, false
	}

	names := make([]string, 0, len(b.Domains))
	for name := range b.Domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

// HasDomain reports whether the named domain exists under stream/branch.
func (c Catalog) HasDomain(stream, branch, domain string) bool {
	branches, ok := c[stream]
	if !ok {
		return false
	}
	b, ok := branches[branch]
	if !ok {
		return false
	}
	_, ok = b.Domains[domain]
	return ok
}

// Skills returns the skills of each requested domain under stream/branch,
// keyed by domain name. Domains missing from the catalog are skipped, matching
// the tolerant rendering of the skills step.
func (c Catalog) Skills(stream, branch string, domains []string) map[string][]string {
	out := make(map[string][]string, len(domains))

	branches, ok := c[stream]
	if !ok {
		return out
	}
	b, ok := branches[branch]
	if !ok {
		return out
	}

	for _, name := range domains {
		if d, ok := b.Domains[name]; ok {
			out[name] = d.Skills
		}
	}
	return out
}

// HasSkill reports whether the skill appears in any of the given domains under
// stream/branch.
func (c Catalog) HasSkill(stream, branch string, domains []string, skill string) bool {
	for _, skills := range c.Skills(stream, branch, domains) {
		for _, s := range skills {
			if s == skill {
				return true
			}
		}
	}
	return false
}
