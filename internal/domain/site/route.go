package site

import (
	"fmt"
	"pdsite/internal/domain/content"
	"strings"
	"time"
)

// RouteKey names one of the static marketing pages independently of its URL
// or backing file.
type RouteKey string

const (
	RouteHome        RouteKey = "home"
	RouteProduct     RouteKey = "product"
	RouteHowItWorks  RouteKey = "how-it-works"
	RouteRoadmap     RouteKey = "roadmap"
	RouteEarlyAccess RouteKey = "early-access"
	RouteAbout       RouteKey = "about"
)

var routeKeys = []RouteKey{
	RouteHome,
	RouteProduct,
	RouteHowItWorks,
	RouteRoadmap,
	RouteEarlyAccess,
	RouteAbout,
}

var routeFiles = map[RouteKey]string{
	RouteHome:        content.PagesDir + "/homepage.md",
	RouteProduct:     content.PagesDir + "/product_overview.md",
	RouteHowItWorks:  content.PagesDir + "/maturity_roadmap.md",
	RouteRoadmap:     content.PagesDir + "/maturity_roadmap.md",
	RouteEarlyAccess: content.PagesDir + "/how_to_trial.md",
	RouteAbout:       content.PagesDir + "/team_vision.md",
}

// RouteKeys returns every route key in navigation order.
func RouteKeys() []RouteKey {
	out := make([]RouteKey, len(routeKeys))
	copy(out, routeKeys)
	return out
}

func ParseRouteKey(s string) (RouteKey, bool) {
	k := RouteKey(strings.TrimSpace(s))
	_, ok := routeFiles[k]
	return k, ok
}

// FilePath is the content file backing k, or "" for an unknown key.
func (k RouteKey) FilePath() string {
	return routeFiles[k]
}

// KeysForFile returns every route key served by file, in navigation order.
func KeysForFile(file string) []RouteKey {
	var out []RouteKey
	for _, k := range routeKeys {
		if routeFiles[k] == file {
			out = append(out, k)
		}
	}
	return out
}

// Path is the URL path of k under locale, e.g. "/en/product".
func (k RouteKey) Path(locale string) string {
	if k == RouteHome {
		return "/" + locale
	}
	return "/" + locale + "/" + string(k)
}

type RouteKind string

const (
	RoutePage          RouteKind = "page"
	RoutePlaybookIndex RouteKind = "playbook-index"
	RoutePlaybook      RouteKind = "playbook"
)

// Route is one public URL of the site, as listed in the sitemap.
type Route struct {
	Kind    RouteKind
	Key     RouteKey
	Slug    string
	Path    string
	Updated time.Time
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Key != "" {
		parts = append(parts, "key="+string(r.Key))
	}
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.Path != "" {
		parts = append(parts, "path="+r.Path)
	}
	if !r.Updated.IsZero() {
		parts = append(parts, fmt.Sprintf("updated=%s", r.Updated.Format(time.DateOnly)))
	}
	return strings.Join(parts, " ")
}

// PlaybookPath is the URL path of a playbook entry under locale.
func PlaybookPath(locale, slug string) string {
	if slug == "" {
		return "/" + locale + "/playbook"
	}
	return "/" + locale + "/playbook/" + slug
}
