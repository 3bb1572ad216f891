package ingest

import (
	"math"
	"pdsite/internal/domain/content"
	"regexp"
	"strings"
)

const (
	excerptMax  = 220
	excerptSoft = 160

	wordsPerMinute = 225
)

var firstH1 = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// source is what metadata providers may look at.
type source struct {
	fm   FrontMatter
	body string
	stem string
}

// provider yields a candidate value, or "" to defer to the next provider.
type provider func(src source) string

// firstNonEmpty evaluates providers in order and stops at the first
// non-empty result.
func firstNonEmpty(src source, providers ...provider) string {
	for _, p := range providers {
		if v := p(src); v != "" {
			return v
		}
	}
	return ""
}

var (
	titleProviders = []provider{
		func(s source) string { return s.fm.Title },
		titleFromH1,
		titleFromStem,
	}
	excerptProviders = []provider{
		func(s source) string { return s.fm.Excerpt },
		excerptFromBody,
	}
)

func deriveMeta(fm FrontMatter, body, filePath string) content.Meta {
	src := source{fm: fm, body: body, stem: stem(filePath)}

	excerpt := firstNonEmpty(src, excerptProviders...)
	description := firstNonEmpty(src,
		func(s source) string { return s.fm.Description },
		func(source) string { return excerpt },
	)

	return content.Meta{
		Title:       firstNonEmpty(src, titleProviders...),
		Description: description,
		Excerpt:     excerpt,
		Order:       fm.Order,
		Slug:        fm.Slug,
		Category:    fm.Category,
		Updated:     fm.Updated,
		Canonical:   fm.Canonical,
	}
}

func titleFromH1(s source) string {
	m := firstH1.FindStringSubmatch(s.body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func titleFromStem(s source) string {
	return strings.NewReplacer("_", " ", "-", " ").Replace(s.stem)
}

func excerptFromBody(s source) string {
	for _, block := range strings.Split(s.body, "\n\n") {
		p := strings.TrimSpace(block)
		if p == "" || strings.HasPrefix(p, "#") {
			continue
		}
		return truncateExcerpt(p)
	}
	return ""
}

// truncateExcerpt shortens p to at most excerptMax runes. It prefers to end
// after the last period past excerptSoft, then at the last space past
// excerptSoft, and otherwise cuts hard.
func truncateExcerpt(p string) string {
	r := []rune(p)
	if len(r) <= excerptMax {
		return p
	}
	head := r[:excerptMax]
	cut := excerptMax
	if i := lastRune(head, '.'); i > excerptSoft {
		cut = i + 1
	} else if i := lastRune(head, ' '); i > excerptSoft {
		cut = i
	}
	return strings.TrimSpace(string(r[:cut]))
}

func lastRune(rs []rune, target rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == target {
			return i
		}
	}
	return -1
}

func countWords(body string) int {
	return len(strings.Fields(body))
}

// readTime rounds to the nearest minute and never reports less than one.
func readTime(words int) int {
	m := int(math.Round(float64(words) / wordsPerMinute))
	if m < 1 {
		return 1
	}
	return m
}
