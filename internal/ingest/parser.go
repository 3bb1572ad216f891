package ingest

import (
	"bytes"
	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
	"strings"
	"time"
)

// FrontMatter is the YAML block at the top of a content file. Every field is
// optional.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Excerpt     string `yaml:"excerpt"`
	Order       *int   `yaml:"order"`
	Slug        string `yaml:"slug"`
	Category    string `yaml:"category"`
	Updated     string `yaml:"updated"`
	Canonical   string `yaml:"canonical"`
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// normalizeText makes raw file bytes safe to treat as UTF-8 text with LF line
// endings.
func normalizeText(raw []byte) []byte {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	raw = bytes.ToValidUTF8(raw, []byte("\uFFFD"))
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(raw, []byte("\r"), []byte("\n"))
}

// ParseFrontMatter splits raw into its front matter and body. A document
// without a front matter block yields an empty FrontMatter and the whole
// text as body.
func ParseFrontMatter(raw []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	if len(bytes.TrimSpace(raw)) == 0 {
		return fm, raw, nil
	}
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm, yamlFormat)
	if err != nil {
		return FrontMatter{}, raw, err
	}
	fm.Title = strings.TrimSpace(fm.Title)
	fm.Description = strings.TrimSpace(fm.Description)
	fm.Excerpt = strings.TrimSpace(fm.Excerpt)
	fm.Slug = strings.TrimSpace(fm.Slug)
	fm.Category = strings.TrimSpace(fm.Category)
	fm.Updated = strings.TrimSpace(fm.Updated)
	fm.Canonical = strings.TrimSpace(fm.Canonical)
	return fm, body, nil
}

// ParseTime accepts the date formats authors use in front matter. It returns
// the zero time when s matches none of them.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
