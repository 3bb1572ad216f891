package ingest

import (
	"path"
	"regexp"
	"strings"
)

var (
	kebabSeparators = regexp.MustCompile(`[_\s]+`)
	kebabCamel      = regexp.MustCompile(`([a-z])([A-Z])`)
	kebabInvalid    = regexp.MustCompile(`[^a-zA-Z0-9-]`)
	multiDash       = regexp.MustCompile(`-+`)

	legacySeparators = regexp.MustCompile(`[_\s-]+`)
	legacyInvalid    = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// KebabCase normalizes s to lowercase words joined by single hyphens.
// "protect_margins_without_cfo" and "ProtectMargins" both come out hyphenated.
func KebabCase(s string) string {
	s = kebabSeparators.ReplaceAllString(s, "-")
	s = kebabCamel.ReplaceAllString(s, "$1-$2")
	s = kebabInvalid.ReplaceAllString(s, "")
	s = multiDash.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return strings.ToLower(s)
}

// CanonicalSlug derives the public URL slug of a document. A declared front
// matter slug wins over the filename but is always kebab-cased; when that
// changes it, a warning is returned alongside the normalized value.
func CanonicalSlug(filename, declared string) (string, *Warning) {
	if declared != "" {
		slug := KebabCase(declared)
		if slug != declared {
			return slug, &Warning{
				Path: filename,
				Msg:  "front matter slug " + quote(declared) + " is not kebab-case, using " + quote(slug),
			}
		}
		return slug, nil
	}
	return KebabCase(stem(filename)), nil
}

// LegacySlug is the hyphen-free identifier older playbook URLs used, e.g.
// "protectmarginswithoutcfo".
func LegacySlug(filename string) string {
	s := legacySeparators.ReplaceAllString(stem(filename), "")
	s = legacyInvalid.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

// stem drops any directory and a trailing ".md".
func stem(filename string) string {
	return strings.TrimSuffix(path.Base(filename), ".md")
}

func quote(s string) string {
	return `"` + s + `"`
}
