// Package index holds the in-memory content index: static pages by route key
// and playbook narratives by canonical slug.
package index

import (
	"io/fs"
	"pdsite/internal/domain/content"
	"pdsite/internal/domain/site"
	"pdsite/internal/ingest"
	"pdsite/internal/logging"
	"sync"
)

// Index is built once, on Warm or on first use, and is read-only afterwards.
// Separate instances share nothing.
type Index struct {
	reader *ingest.Reader
	log    logging.Logger

	once    sync.Once
	warmErr error

	pages    map[site.RouteKey]content.Entry
	playbook map[string]content.Entry // canonical slug -> entry
	legacy   map[string]string        // legacy slug -> canonical slug
	slugs    map[string]string        // file path -> canonical slug
	sorted   []content.Entry
	warnings []ingest.Warning
}

func New(fsys fs.FS, log logging.Logger) *Index {
	return &Index{
		reader: ingest.NewReader(fsys),
		log:    logging.OrNoOp(log),
	}
}

// Warm scans both content directories. It runs at most once per Index; later
// calls return the first result. A non-nil error means a directory could not
// be listed; whatever was indexed is still served.
func (x *Index) Warm() error {
	x.once.Do(x.build)
	return x.warmErr
}

func (x *Index) ensure() {
	_ = x.Warm()
}

// Page returns the entry for key. ok is false when the backing file was
// missing or failed to read.
func (x *Index) Page(key site.RouteKey) (content.Entry, bool) {
	x.ensure()
	e, ok := x.pages[key]
	return e, ok
}

// ListPlaybook returns every narrative: entries with an explicit order first,
// ascending, then the rest by title.
func (x *Index) ListPlaybook() []content.Entry {
	x.ensure()
	out := make([]content.Entry, len(x.sorted))
	copy(out, x.sorted)
	return out
}

// ResolveBySlug accepts a canonical slug or a legacy hyphen-free slug.
func (x *Index) ResolveBySlug(slug string) (content.Entry, bool) {
	x.ensure()
	if e, ok := x.playbook[slug]; ok {
		return e, true
	}
	if canonical, ok := x.legacy[slug]; ok {
		e, ok := x.playbook[canonical]
		return e, ok
	}
	return content.Entry{}, false
}

// CanonicalSlug returns the slug under which the narrative at filePath is
// indexed.
func (x *Index) CanonicalSlug(filePath string) (string, bool) {
	x.ensure()
	s, ok := x.slugs[filePath]
	return s, ok
}

// SlugMapping pairs an indexed narrative's legacy slug with its canonical one.
type SlugMapping struct {
	Legacy    string
	Canonical string
}

// SlugMappings lists the legacy to canonical mapping of every narrative in
// playbook order.
func (x *Index) SlugMappings() []SlugMapping {
	x.ensure()
	out := make([]SlugMapping, 0, len(x.sorted))
	for _, e := range x.sorted {
		out = append(out, SlugMapping{
			Legacy:    ingest.LegacySlug(e.FilePath),
			Canonical: x.slugs[e.FilePath],
		})
	}
	return out
}

// Warnings returns the non-fatal problems found while indexing.
func (x *Index) Warnings() []ingest.Warning {
	x.ensure()
	out := make([]ingest.Warning, len(x.warnings))
	copy(out, x.warnings)
	return out
}
