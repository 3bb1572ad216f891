package index

import (
	"errors"
	"fmt"
	"pdsite/internal/domain/content"
	domainerr "pdsite/internal/domain/errors"
	"pdsite/internal/domain/site"
	"pdsite/internal/ingest"
)

func (x *Index) build() {
	x.pages = make(map[site.RouteKey]content.Entry)
	x.playbook = make(map[string]content.Entry)
	x.legacy = make(map[string]string)
	x.slugs = make(map[string]string)

	var errs []error
	if err := x.indexPages(); err != nil {
		errs = append(errs, err)
	}
	if err := x.indexPlaybook(); err != nil {
		errs = append(errs, err)
	}
	x.warmErr = errors.Join(errs...)

	x.log.Info("content index built",
		"pages", len(x.pages),
		"playbook", len(x.playbook),
		"warnings", len(x.warnings),
	)
}

func (x *Index) warn(path, msg string, args ...any) {
	x.warnings = append(x.warnings, ingest.Warning{Path: path, Msg: msg})
	x.log.Warn(msg, append([]any{"path", path}, args...)...)
}

// scan reads dir and returns the entries that read cleanly. Failed files are
// recorded as warnings and skipped.
func (x *Index) scan(dir string) ([]content.Entry, error) {
	results, err := x.reader.Scan(dir)
	if err != nil {
		x.warn(dir, "failed to scan directory: "+err.Error())
		return nil, fmt.Errorf("index: scan %s: %w", dir, err)
	}

	entries := make([]content.Entry, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			x.warn(r.Path, "skipped unreadable document: "+r.Err.Error(),
				"code", string(domainerr.GetCode(r.Err)))
			continue
		}
		entries = append(entries, r.Entry)
	}
	return entries, nil
}

func (x *Index) indexPages() error {
	entries, err := x.scan(content.PagesDir)
	for _, e := range entries {
		for _, key := range site.KeysForFile(e.FilePath) {
			x.pages[key] = e
		}
	}
	return err
}

func (x *Index) indexPlaybook() error {
	entries, err := x.scan(content.NarrativesDir)

	owner := make(map[string]string) // canonical slug -> file path
	for _, e := range entries {
		slug, w := ingest.CanonicalSlug(e.FileName(), e.Meta.Slug)
		if w != nil {
			x.warn(e.FilePath, w.Msg)
		}
		if prev, dup := owner[slug]; dup {
			x.warn(e.FilePath, fmt.Sprintf("canonical slug %q already used by %s, replacing it", slug, prev))
			delete(x.slugs, prev)
		}
		owner[slug] = e.FilePath
		x.playbook[slug] = e
		x.slugs[e.FilePath] = slug
	}

	x.sorted = make([]content.Entry, 0, len(x.playbook))
	for _, e := range entries {
		if x.slugs[e.FilePath] == "" {
			continue
		}
		x.sorted = append(x.sorted, e)
		if legacy := ingest.LegacySlug(e.FilePath); legacy != "" {
			if _, taken := x.legacy[legacy]; !taken {
				x.legacy[legacy] = x.slugs[e.FilePath]
			}
		}
	}
	sortPlaybook(x.sorted)
	return err
}
