package echoweb

import (
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/gradebook"
	"github.com/trezcool/escuela/core/notas"
	appfs "github.com/trezcool/escuela/fs"
)

const webTemplatesDir = "templates/web"

// renderer executes one template set per page: the shared `_*.gohtml` files plus the page file.
type renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*renderer)(nil)

type modal interface {
	IsModal() bool
}

func newRenderer(conf *core.Config) (*renderer, error) {
	funcs := template.FuncMap{
		"appName":        func() string { return conf.AppName },
		"build":          func() string { return conf.Build },
		"add":            func(a, b int) int { return a + b },
		"valueField":     gradebook.ValueField,
		"committedField": gradebook.CommittedField,
		"tipoField":      gradebook.TipoField,
		"tipoAction":     gradebook.TipoAction,
		"otherTipo": func(t notas.Tipo) notas.Tipo {
			if t == notas.TipoLiteral {
				return notas.TipoNumerico
			}
			return notas.TipoLiteral
		},
	}

	fsys := appfs.FS
	shared, err := fs.Glob(fsys, path.Join(webTemplatesDir, "_*.gohtml"))
	if err != nil {
		return nil, errors.Wrap(err, "listing shared templates")
	}
	files, err := fs.Glob(fsys, path.Join(webTemplatesDir, "*.gohtml"))
	if err != nil {
		return nil, errors.Wrap(err, "listing page templates")
	}

	r := &renderer{pages: make(map[string]*template.Template, len(files))}
	for _, fp := range files {
		fname := path.Base(fp)
		if strings.HasPrefix(fname, "_") {
			continue
		}
		name := strings.TrimSuffix(fname, path.Ext(fname))
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, append(append([]string{}, shared...), fp)...)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", fp)
		}
		r.pages[name] = tmpl.Option("missingkey=error")
	}
	return r, nil
}

// Render executes `layout`, or only `content` for modal fragments.
func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return errors.Errorf("template %q not found", name)
	}
	entry := "layout"
	if m, ok := data.(modal); ok && m.IsModal() {
		entry = "content"
	}
	return errors.Wrapf(tmpl.ExecuteTemplate(w, entry, data), "rendering %s", name)
}
