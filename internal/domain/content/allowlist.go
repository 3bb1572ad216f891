package content

import "sort"

const (
	PagesDir      = "content/01_pages"
	NarrativesDir = "content/03_domain_narratives"
)

// allowed is the complete set of documents the reader may open. Paths are
// relative to the content root and use forward slashes.
var allowed = map[string]struct{}{
	PagesDir + "/homepage.md":             {},
	PagesDir + "/product_overview.md":     {},
	PagesDir + "/maturity_roadmap.md":     {},
	PagesDir + "/team_vision.md":          {},
	PagesDir + "/how_to_trial.md":         {},
	PagesDir + "/how_to_adopt_and_buy.md": {},

	NarrativesDir + "/protect_margins_without_cfo.md": {},
	NarrativesDir + "/narrative_financials.md":        {},
	NarrativesDir + "/narrative_people.md":            {},
	NarrativesDir + "/narrative_pipeline.md":          {},
	NarrativesDir + "/narrative_projects.md":          {},
	NarrativesDir + "/persona_ceo_founder.md":         {},
	NarrativesDir + "/persona_ops_delivery.md":        {},
}

// IsAllowed is an exact match; no cleaning or case folding is applied.
func IsAllowed(p string) bool {
	_, ok := allowed[p]
	return ok
}

// AllowedPaths returns the allowlist in lexical order.
func AllowedPaths() []string {
	out := make([]string, 0, len(allowed))
	for p := range allowed {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
