package ingest

import (
	"errors"
	"io/fs"
	"pdsite/internal/domain/content"
	domainerr "pdsite/internal/domain/errors"
	"pdsite/internal/render"
)

// minTOCHeadings is the smallest number of H2/H3 headings for which a table
// of contents is attached.
const minTOCHeadings = 3

// Reader turns allowlisted markdown files into content entries. It holds no
// per-document state and is safe for concurrent use.
type Reader struct {
	fsys fs.FS
	md   *render.MarkdownRenderer
}

// NewReader reads documents from fsys, whose root is the content root.
func NewReader(fsys fs.FS) *Reader {
	return &Reader{
		fsys: fsys,
		md:   render.NewMarkdownRenderer(),
	}
}

// ReadDocument reads and renders the document at p, a content-root-relative
// path such as "content/01_pages/homepage.md". Failures are
// *errors.ContentError values.
func (r *Reader) ReadDocument(p string) (content.Entry, error) {
	if !content.IsAllowed(p) {
		return content.Entry{}, domainerr.NewAccessDenied(p)
	}

	raw, err := fs.ReadFile(r.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return content.Entry{}, domainerr.NewNotFound(p, err)
		}
		return content.Entry{}, domainerr.NewIOError(p, err)
	}
	return r.build(p, raw)
}

func (r *Reader) build(p string, raw []byte) (content.Entry, error) {
	fm, body, err := ParseFrontMatter(normalizeText(raw))
	if err != nil {
		return content.Entry{}, domainerr.NewInvalidContent(p, err)
	}

	res, err := r.md.Render(body)
	if err != nil {
		return content.Entry{}, domainerr.NewInvalidContent(p, err)
	}

	text := string(body)
	words := countWords(text)

	entry := content.Entry{
		Meta:        deriveMeta(fm, text, p),
		FilePath:    p,
		Content:     text,
		ContentHTML: string(res.HTML),
		WordCount:   words,
		ReadTimeMin: readTime(words),
	}
	if len(res.Headings) >= minTOCHeadings {
		entry.TOC = res.Headings
	}
	return entry, nil
}
