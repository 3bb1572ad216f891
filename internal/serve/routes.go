package serve

import (
	"net/http"
	"pdsite/internal/locale"
	"strings"
)

// Handler returns the full routing tree wrapped in the site middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{locale}", s.handleHome)
	mux.HandleFunc("GET /{locale}/{$}", s.handleHome)
	mux.HandleFunc("GET /{locale}/{page}", s.handlePage)
	mux.HandleFunc("GET /{locale}/playbook", s.handlePlaybookList)
	mux.HandleFunc("GET /{locale}/playbook/{slug}", s.handlePlaybook)

	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /robots.txt", s.handleRobots)

	mux.HandleFunc("POST /api/early-access", s.handleEarlyAccess)
	mux.HandleFunc("POST /api/consent", s.handleConsent)

	mux.HandleFunc("/", s.handleNotFound)

	var h http.Handler = mux
	if dir := strings.TrimSpace(s.cfg.Server.StaticDir); dir != "" {
		h = withStatic(h, http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}
	return securityHeaders(s.localeRedirect(h))
}

// withStatic routes /static/ ahead of the mux, where a "/static/" pattern
// would overlap the locale wildcards.
func withStatic(next, static http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
			static.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// localeRedirect sends paths without a supported locale to the default one.
func (s *Server) localeRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target, ok := locale.Redirect(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
