// Package seo derives page metadata, the sitemap and robots.txt.
package seo

import (
	"pdsite/internal/domain/config"
	"pdsite/internal/domain/content"
)

const (
	fallbackTitle       = "Profitdrive"
	fallbackDescription = "Commercial decision system for IT & professional services firms"
)

type Options struct {
	Site config.SiteConfig
	// Path is the request path, e.g. "/en/playbook/protect-margins-without-cfo".
	Path               string
	Meta               *content.Meta
	DefaultTitle       string
	DefaultDescription string
}

type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Type        string
}

type Twitter struct {
	Card        string
	Title       string
	Description string
}

// Metadata is what a page puts in its <head>.
type Metadata struct {
	Title       string
	Description string
	Canonical   string
	OpenGraph   OpenGraph
	Twitter     Twitter
}

func Build(opt Options) Metadata {
	var m content.Meta
	if opt.Meta != nil {
		m = *opt.Meta
	}
	siteURL := opt.Site.SiteURL
	pageURL := siteURL + opt.Path

	title := firstNonEmpty(m.Title, opt.DefaultTitle, opt.Site.DefaultTitle, fallbackTitle)
	description := firstNonEmpty(m.Description, m.Excerpt, opt.DefaultDescription, opt.Site.DefaultDescription, fallbackDescription)

	canonical := pageURL
	if m.Canonical != "" {
		canonical = siteURL + m.Canonical
	}

	return Metadata{
		Title:       title,
		Description: description,
		Canonical:   canonical,
		OpenGraph: OpenGraph{
			Title:       title,
			Description: description,
			URL:         pageURL,
			SiteName:    opt.Site.Name,
			Type:        "website",
		},
		Twitter: Twitter{
			Card:        "summary",
			Title:       title,
			Description: description,
		},
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
