package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

// Template names accepted by c.HTML.
const (
	tmplIndex     = "index"
	tmplAbout     = "about"
	tmplContact   = "contact"
	tmplPost      = "post"
	tmplSearch    = "search"
	tmplNotFound  = "not-found"
	tmplError     = "error"
	tmplLogin     = "admin/login"
	tmplDashboard = "admin/dashboard"
	tmplAddPost   = "admin/add-post"
	tmplEditPost  = "admin/edit-post"
)

const layoutName = "layout"

var (
	mainPages  = []string{tmplIndex, tmplAbout, tmplContact, tmplPost, tmplSearch, tmplNotFound, tmplError}
	adminPages = []string{tmplLogin, tmplDashboard, tmplAddPost, tmplEditPost}
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// pageTemplates holds one template set per page, each parsed together with
// its layout. It implements gin's render.HTMLRender.
type pageTemplates map[string]*template.Template

func loadTemplates() (pageTemplates, error) {
	funcs := template.FuncMap{
		"date": formatDate,
	}

	out := make(pageTemplates)
	parse := func(layout string, pages []string) error {
		for _, page := range pages {
			t, err := template.New("").Funcs(funcs).ParseFS(templateFS,
				"templates/layouts/"+layout+".html",
				"templates/"+page+".html",
			)
			if err != nil {
				return fmt.Errorf("parse template %s: %w", page, err)
			}
			out[page] = t
		}
		return nil
	}

	if err := parse("main", mainPages); err != nil {
		return nil, err
	}
	if err := parse("admin", adminPages); err != nil {
		return nil, err
	}
	return out, nil
}

func mustLoadTemplates() pageTemplates {
	t, err := loadTemplates()
	if err != nil {
		panic(err)
	}
	return t
}

func (p pageTemplates) Instance(name string, data any) render.Render {
	t, ok := p[name]
	if !ok {
		t = p[tmplError]
	}
	return render.HTML{Template: t, Name: layoutName, Data: data}
}
