package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"
	"time"
)

//go:embed templates/*.tmpl
var embedded embed.FS

const layoutTemplate = "layout.tmpl"

var pageTemplates = []string{
	"page.tmpl",
	"placeholder.tmpl",
	"playbook_list.tmpl",
	"playbook.tmpl",
	"404.tmpl",
}

// TemplateRenderer executes one template set per page, each a clone of the
// shared layout with the page's "content" block parsed into it.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

// NewTemplateRenderer loads the built-in templates, or those in themeDir when
// it is set.
func NewTemplateRenderer(themeDir string) (*TemplateRenderer, error) {
	var fsys fs.FS
	if strings.TrimSpace(themeDir) != "" {
		fsys = os.DirFS(themeDir)
		if err := CheckThemeTemplates(fsys); err != nil {
			return nil, err
		}
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}
	return newTemplateRenderer(fsys)
}

func newTemplateRenderer(fsys fs.FS) (*TemplateRenderer, error) {
	layout, err := template.New("layout").Funcs(templateFuncs()).ParseFS(fsys, layoutTemplate)
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(fsys, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return &TemplateRenderer{pages: pages}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"nowYear": func() int {
			return time.Now().Year()
		},
		"minutes": func(n int) string {
			if n == 1 {
				return "1 min read"
			}
			return fmt.Sprintf("%d min read", n)
		},
		"indent": func(level int) int { return (level - 2) * 16 },
	}
}

func (r *TemplateRenderer) RenderPage(ctx context.Context, view PageView) ([]byte, error) {
	return r.exec("page.tmpl", view)
}

func (r *TemplateRenderer) RenderPlaceholder(ctx context.Context, view PlaceholderView) ([]byte, error) {
	return r.exec("placeholder.tmpl", view)
}

func (r *TemplateRenderer) RenderPlaybookList(ctx context.Context, view PlaybookListView) ([]byte, error) {
	return r.exec("playbook_list.tmpl", view)
}

func (r *TemplateRenderer) RenderPlaybook(ctx context.Context, view PlaybookView) ([]byte, error) {
	return r.exec("playbook.tmpl", view)
}

func (r *TemplateRenderer) RenderNotFound(ctx context.Context, view NotFoundView) ([]byte, error) {
	return r.exec("404.tmpl", view)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.pages[name]
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CheckThemeTemplates reports the first template a theme directory lacks.
func CheckThemeTemplates(fsys fs.FS) error {
	required := append([]string{layoutTemplate}, pageTemplates...)
	for _, name := range required {
		if _, err := fs.Stat(fsys, name); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
