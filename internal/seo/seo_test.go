package seo

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"pdsite/internal/domain/config"
	"pdsite/internal/domain/content"
	"pdsite/internal/domain/site"
)

var testSite = config.SiteConfig{
	Name:               "Profit Discipline",
	SiteURL:            "https://example.com",
	DefaultTitle:       "Site title",
	DefaultDescription: "Site description",
}

func TestBuildFallbacks(t *testing.T) {
	m := Build(Options{Site: testSite, Path: "/en/about"})
	require.Equal(t, "Site title", m.Title)
	require.Equal(t, "Site description", m.Description)
	require.Equal(t, "https://example.com/en/about", m.Canonical)

	m = Build(Options{
		Site:               testSite,
		Path:               "/en/about",
		Meta:               &content.Meta{Excerpt: "From the excerpt."},
		DefaultTitle:       "About",
		DefaultDescription: "unused",
	})
	require.Equal(t, "About", m.Title)
	require.Equal(t, "From the excerpt.", m.Description)

	m = Build(Options{Path: "/en"})
	require.Equal(t, fallbackTitle, m.Title)
	require.Equal(t, fallbackDescription, m.Description)
}

func TestBuildCanonicalOverride(t *testing.T) {
	m := Build(Options{
		Site: testSite,
		Path: "/en/playbook/protectmarginswithoutcfo",
		Meta: &content.Meta{Title: "Protect", Description: "Desc", Canonical: "/en/playbook/protect-margins-without-cfo"},
	})

	want := Metadata{
		Title:       "Protect",
		Description: "Desc",
		Canonical:   "https://example.com/en/playbook/protect-margins-without-cfo",
		OpenGraph: OpenGraph{
			Title:       "Protect",
			Description: "Desc",
			URL:         "https://example.com/en/playbook/protectmarginswithoutcfo",
			SiteName:    "Profit Discipline",
			Type:        "website",
		},
		Twitter: Twitter{Card: "summary", Title: "Protect", Description: "Desc"},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
}

func TestSitemap(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	routes := []site.Route{
		{Kind: site.RoutePlaybookIndex, Path: "/en/playbook"},
		{Kind: site.RoutePage, Key: site.RouteHome, Path: "/en", Updated: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{Kind: site.RoutePage, Key: site.RouteAbout, Path: "/en/about"},
		{Kind: site.RoutePlaybook, Slug: "narrative-people", Path: "/en/playbook/narrative-people"},
	}
	out, err := Sitemap("https://example.com", routes, now)
	require.NoError(t, err)
	require.Contains(t, string(out), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)

	var got urlset
	require.NoError(t, xml.Unmarshal(out, &got))

	want := []sitemapURL{
		{Loc: "https://example.com/en/playbook", LastMod: "2025-03-01T09:00:00Z", ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: "https://example.com/en", LastMod: "2025-02-01T00:00:00Z", ChangeFreq: "monthly", Priority: "1.0"},
		{Loc: "https://example.com/en/about", ChangeFreq: "monthly", Priority: "0.9"},
		{Loc: "https://example.com/en/playbook/narrative-people", ChangeFreq: "monthly", Priority: "0.7"},
	}
	if diff := cmp.Diff(want, got.URLs); diff != "" {
		t.Fatalf("sitemap mismatch (-want +got):\n%s", diff)
	}
}

func TestRobots(t *testing.T) {
	require.Equal(t,
		"User-Agent: *\nAllow: /\n\nSitemap: https://example.com/sitemap.xml\n",
		string(Robots("https://example.com")),
	)
}
