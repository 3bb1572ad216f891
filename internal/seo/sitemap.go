package seo

import (
	"encoding/xml"
	"pdsite/internal/domain/site"
	"strconv"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders routes as a sitemap.xml document. The playbook index is
// always stamped with now; other routes carry lastmod only when their
// content declares an updated date.
func Sitemap(siteURL string, routes []site.Route, now time.Time) ([]byte, error) {
	set := urlset{Xmlns: sitemapNS}
	for _, r := range routes {
		u := sitemapURL{Loc: siteURL + r.Path}
		switch r.Kind {
		case site.RoutePlaybookIndex:
			u.LastMod = now.UTC().Format(time.RFC3339)
			u.ChangeFreq = "weekly"
			u.Priority = priority(0.8)
		case site.RoutePage:
			u.ChangeFreq = "monthly"
			u.Priority = priority(0.9)
			if r.Key == site.RouteHome {
				u.Priority = priority(1.0)
			}
		default:
			u.ChangeFreq = "monthly"
			u.Priority = priority(0.7)
		}
		if r.Kind != site.RoutePlaybookIndex && !r.Updated.IsZero() {
			u.LastMod = r.Updated.UTC().Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, u)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func priority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
