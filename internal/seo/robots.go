package seo

import "fmt"

// Robots allows every crawler and points at the sitemap.
func Robots(siteURL string) []byte {
	return []byte(fmt.Sprintf("User-Agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", siteURL))
}
