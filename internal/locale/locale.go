// Package locale decides which URL paths carry a supported locale prefix and
// where to send the ones that do not.
package locale

import (
	"path"
	"regexp"
	"strings"
)

const Default = "en"

var Supported = []string{"en"}

var assetExt = regexp.MustCompile(`\.(ico|png|jpg|jpeg|svg|css|js|woff|woff2|ttf|eot)$`)

func IsSupported(l string) bool {
	for _, s := range Supported {
		if s == l {
			return true
		}
	}
	return false
}

// Valid returns l when supported and Default otherwise.
func Valid(l string) string {
	if IsSupported(l) {
		return l
	}
	return Default
}

// Bypass reports whether p is served without locale handling: API routes,
// static files, SEO files and asset extensions.
func Bypass(p string) bool {
	switch {
	case strings.HasPrefix(p, "/api"),
		strings.HasPrefix(p, "/static"),
		p == "/favicon.ico",
		p == "/sitemap.xml",
		p == "/robots.txt":
		return true
	}
	return assetExt.MatchString(p)
}

// Redirect returns where a request for p should go when p lacks a supported
// locale. A two-letter first segment is taken as a locale and replaced;
// anything else gets the default locale prefixed.
func Redirect(p string) (string, bool) {
	if Bypass(p) {
		return "", false
	}
	if p == "" || p == "/" {
		return "/" + Default, true
	}

	segs := splitPath(p)
	if len(segs) == 0 {
		return "/" + Default, true
	}

	first := segs[0]
	if len(first) == 2 {
		if IsSupported(first) {
			return "", false
		}
		return path.Join(append([]string{"/", Default}, segs[1:]...)...), true
	}
	return "/" + Default + p, true
}

func splitPath(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
