package render

import (
	"html/template"
	"pdsite/internal/domain/config"
	"pdsite/internal/domain/content"
	"pdsite/internal/domain/site"
	"pdsite/internal/seo"
)

type NavLink struct {
	Label  string
	Path   string
	Active bool
}

// Layout carries what every page template needs around its content block.
type Layout struct {
	Site       config.SiteConfig
	Head       seo.Metadata
	Locale     string
	Nav        []NavLink
	ShowBanner bool
	Analytics  bool
}

type PageView struct {
	Layout
	Key   site.RouteKey
	Entry content.Entry
	HTML  template.HTML
}

// PlaceholderView is served for a route whose content file is missing.
type PlaceholderView struct {
	Layout
	Key site.RouteKey
}

type PlaybookItem struct {
	Title       string
	Excerpt     string
	Category    string
	Path        string
	ReadTimeMin int
}

type PlaybookListView struct {
	Layout
	Items []PlaybookItem
}

type PlaybookView struct {
	Layout
	Entry content.Entry
	HTML  template.HTML
	Back  string
}

type NotFoundView struct {
	Layout
	Path string
}
