package serve

import (
	"html/template"
	"net/http"
	"pdsite/internal/app"
	"pdsite/internal/consent"
	"pdsite/internal/domain/site"
	"pdsite/internal/locale"
	"pdsite/internal/render"
	"pdsite/internal/seo"
)

var pageLabels = map[site.RouteKey]string{
	site.RouteHome:        "Home",
	site.RouteProduct:     "Product",
	site.RouteHowItWorks:  "How it works",
	site.RouteRoadmap:     "Roadmap",
	site.RouteEarlyAccess: "Early access",
	site.RouteAbout:       "About",
}

const playbookLabel = "Playbook"

// requestLocale returns the {locale} path value, or "" when unsupported.
func requestLocale(r *http.Request) string {
	l := r.PathValue("locale")
	if !locale.IsSupported(l) {
		return ""
	}
	return l
}

func (s *Server) layout(r *http.Request, loc string, head seo.Metadata) render.Layout {
	nav := make([]render.NavLink, 0, len(pageLabels))
	for _, key := range site.RouteKeys() {
		if key == site.RouteHome || key == site.RouteHowItWorks {
			continue
		}
		p := key.Path(loc)
		nav = append(nav, render.NavLink{Label: pageLabels[key], Path: p, Active: r.URL.Path == p})
	}
	pb := site.PlaybookPath(loc, "")
	nav = append(nav, render.NavLink{Label: playbookLabel, Path: pb, Active: r.URL.Path == pb})

	return render.Layout{
		Site:       s.cfg.Site,
		Head:       head,
		Locale:     loc,
		Nav:        nav,
		ShowBanner: consent.ShouldShowBanner(r),
		Analytics:  consent.HasAnalyticsConsent(r),
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)
	if loc == "" {
		s.handleNotFound(w, r)
		return
	}
	s.servePage(w, r, loc, site.RouteHome)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)
	key, ok := site.ParseRouteKey(r.PathValue("page"))
	if loc == "" || !ok || key == site.RouteHome {
		s.handleNotFound(w, r)
		return
	}
	s.servePage(w, r, loc, key)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, loc string, key site.RouteKey) {
	defaultTitle := pageLabels[key]
	if key == site.RouteHome {
		defaultTitle = s.cfg.Site.DefaultTitle
	}
	opt := seo.Options{Site: s.cfg.Site, Path: key.Path(loc), DefaultTitle: defaultTitle}

	entry, ok := s.Index().Page(key)
	if !ok {
		out, err := s.tpl.RenderPlaceholder(r.Context(), render.PlaceholderView{
			Layout: s.layout(r, loc, seo.Build(opt)),
			Key:    key,
		})
		s.writePage(w, r, http.StatusOK, out, err)
		return
	}

	opt.Meta = &entry.Meta
	out, err := s.tpl.RenderPage(r.Context(), render.PageView{
		Layout: s.layout(r, loc, seo.Build(opt)),
		Key:    key,
		Entry:  entry,
		HTML:   template.HTML(entry.ContentHTML),
	})
	s.writePage(w, r, http.StatusOK, out, err)
}

func (s *Server) handlePlaybookList(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)
	if loc == "" {
		s.handleNotFound(w, r)
		return
	}
	idx := s.Index()

	var items []render.PlaybookItem
	for _, e := range idx.ListPlaybook() {
		slug, ok := idx.CanonicalSlug(e.FilePath)
		if !ok {
			continue
		}
		items = append(items, render.PlaybookItem{
			Title:       e.Meta.Title,
			Excerpt:     e.Meta.Excerpt,
			Category:    e.Meta.Category,
			Path:        site.PlaybookPath(loc, slug),
			ReadTimeMin: e.ReadTimeMin,
		})
	}

	head := seo.Build(seo.Options{Site: s.cfg.Site, Path: site.PlaybookPath(loc, ""), DefaultTitle: playbookLabel})
	out, err := s.tpl.RenderPlaybookList(r.Context(), render.PlaybookListView{
		Layout: s.layout(r, loc, head),
		Items:  items,
	})
	s.writePage(w, r, http.StatusOK, out, err)
}

func (s *Server) handlePlaybook(w http.ResponseWriter, r *http.Request) {
	loc := requestLocale(r)
	if loc == "" {
		s.handleNotFound(w, r)
		return
	}
	idx := s.Index()
	slug := r.PathValue("slug")

	entry, ok := idx.ResolveBySlug(slug)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	canonical, ok := idx.CanonicalSlug(entry.FilePath)
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	if slug != canonical {
		http.Redirect(w, r, site.PlaybookPath(loc, canonical), http.StatusPermanentRedirect)
		return
	}

	head := seo.Build(seo.Options{
		Site:         s.cfg.Site,
		Path:         site.PlaybookPath(loc, canonical),
		Meta:         &entry.Meta,
		DefaultTitle: playbookLabel,
	})
	out, err := s.tpl.RenderPlaybook(r.Context(), render.PlaybookView{
		Layout: s.layout(r, loc, head),
		Entry:  entry,
		HTML:   template.HTML(entry.ContentHTML),
		Back:   site.PlaybookPath(loc, ""),
	})
	s.writePage(w, r, http.StatusOK, out, err)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	loc := locale.Default
	head := seo.Build(seo.Options{Site: s.cfg.Site, Path: r.URL.Path, DefaultTitle: "Page not found"})
	out, err := s.tpl.RenderNotFound(r.Context(), render.NotFoundView{
		Layout: s.layout(r, loc, head),
		Path:   r.URL.Path,
	})
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.writePage(w, r, http.StatusNotFound, out, nil)
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	rb := &app.RouteBuilder{Index: s.Index(), Locale: locale.Default}
	out, err := seo.Sitemap(s.cfg.Site.SiteURL, rb.All(), s.now())
	if err != nil {
		s.log.Error("sitemap failed", "err", err)
		http.Error(w, "sitemap error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(seo.Robots(s.cfg.Site.SiteURL))
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, out []byte, err error) {
	if err != nil {
		s.log.Error("render failed", "path", r.URL.Path, "err", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, out)
}

func writeHTML(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
