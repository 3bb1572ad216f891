package app

import (
	"pdsite/internal/domain/content"
	"pdsite/internal/domain/site"
	"pdsite/internal/index"
	"pdsite/internal/ingest"
	"pdsite/internal/locale"
	"time"
)

// RouteBuilder lists the public URLs backed by an index, in sitemap order.
type RouteBuilder struct {
	Index  *index.Index
	Locale string
}

func (rb *RouteBuilder) locale() string {
	return locale.Valid(rb.Locale)
}

// PageRoutes returns one route per route key. Keys without an indexed entry
// are still listed, since they are served as placeholders.
func (rb *RouteBuilder) PageRoutes() []site.Route {
	loc := rb.locale()
	var routes []site.Route
	for _, key := range site.RouteKeys() {
		r := site.Route{
			Kind: site.RoutePage,
			Key:  key,
			Path: key.Path(loc),
		}
		if e, ok := rb.Index.Page(key); ok {
			r.Updated = updated(e)
		}
		routes = append(routes, r)
	}
	return routes
}

// PlaybookRoutes returns the playbook index followed by every entry under
// its canonical slug.
func (rb *RouteBuilder) PlaybookRoutes() []site.Route {
	loc := rb.locale()
	routes := []site.Route{{
		Kind: site.RoutePlaybookIndex,
		Path: site.PlaybookPath(loc, ""),
	}}
	for _, e := range rb.Index.ListPlaybook() {
		slug, ok := rb.Index.CanonicalSlug(e.FilePath)
		if !ok {
			continue
		}
		routes = append(routes, site.Route{
			Kind:    site.RoutePlaybook,
			Slug:    slug,
			Path:    site.PlaybookPath(loc, slug),
			Updated: updated(e),
		})
	}
	return routes
}

// All returns the playbook index, the pages, then the playbook entries.
func (rb *RouteBuilder) All() []site.Route {
	playbook := rb.PlaybookRoutes()
	routes := make([]site.Route, 0, len(playbook)+len(site.RouteKeys()))
	routes = append(routes, playbook[0])
	routes = append(routes, rb.PageRoutes()...)
	routes = append(routes, playbook[1:]...)
	return routes
}

// updated is the zero time when the entry has no parseable updated date.
func updated(e content.Entry) time.Time {
	return ingest.ParseTime(e.Meta.Updated)
}
