package content

import (
	"path"
	"strings"
)

// Meta is the resolved metadata of one document. Empty strings mean the
// field was absent from front matter and had no fallback.
type Meta struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	Order       *int   `json:"order,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Category    string `json:"category,omitempty"`
	Updated     string `json:"updated,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
}

func (m Meta) HasOrder() bool {
	return m.Order != nil
}

// TocItem is one H2/H3 heading. ID matches the id attribute emitted in the
// rendered HTML.
type TocItem struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Entry is a fully read document. Entries are shared between requests and
// must not be modified after construction.
type Entry struct {
	Meta        Meta      `json:"meta"`
	FilePath    string    `json:"filePath"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	WordCount   int       `json:"wordCount"`
	ReadTimeMin int       `json:"readTimeMin"`
	TOC         []TocItem `json:"toc,omitempty"`
}

// FileName is the base name of FilePath, extension included.
func (e Entry) FileName() string {
	return path.Base(e.FilePath)
}

// Stem is the base name of FilePath without its extension.
func (e Entry) Stem() string {
	base := path.Base(e.FilePath)
	return strings.TrimSuffix(base, path.Ext(base))
}
