package render

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	anchorInvalid = regexp.MustCompile(`[^A-Za-z0-9_\s-]`)
	anchorSpace   = regexp.MustCompile(`\s+`)
	anchorDashes  = regexp.MustCompile(`-+`)
)

// fallbackAnchor is used for headings whose text has no ASCII word
// characters, e.g. "## ¿Qué?" or "## 🚀".
const fallbackAnchor = "section"

// AnchorSlug turns heading text into an id fragment: lowercase, keep ASCII
// word characters, whitespace and hyphens, whitespace runs become "-",
// repeated "-" collapse and are trimmed from both ends.
func AnchorSlug(text string) string {
	s := strings.ToLower(text)
	s = anchorInvalid.ReplaceAllString(s, "")
	s = anchorSpace.ReplaceAllString(s, "-")
	s = anchorDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// anchorSet hands out ids that are unique within one document. The second
// use of a base gets "-2", the third "-3", and so on; a suffixed candidate
// that is already taken is skipped.
type anchorSet struct {
	counts map[string]int
	used   map[string]struct{}
}

func newAnchorSet() *anchorSet {
	return &anchorSet{
		counts: make(map[string]int),
		used:   make(map[string]struct{}),
	}
}

func (a *anchorSet) next(base string) string {
	if base == "" {
		base = fallbackAnchor
	}
	n := a.counts[base]
	for {
		n++
		id := base
		if n > 1 {
			id = base + "-" + strconv.Itoa(n)
		}
		if _, taken := a.used[id]; taken {
			continue
		}
		a.counts[base] = n
		a.used[id] = struct{}{}
		return id
	}
}
