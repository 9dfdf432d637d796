package echoweb

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core/catalog"
)

// Toast kinds, as CSS classes
const (
	toastSuccess = "success"
	toastWarning = "warning"
	toastDanger  = "danger"
)

type toast struct {
	Kind    string
	Message string
}

// page is embedded by every view model.
type page struct {
	Title     string
	Path      string
	Modal     bool // render the fragment only
	RequestID string
	Toasts    []toast
}

func newPage(ctx echo.Context, title string) page {
	p := page{
		Title:     title,
		Path:      ctx.Request().URL.Path,
		Modal:     isChecked(ctx.QueryParam("modal")),
		RequestID: ctx.Response().Header().Get(echo.HeaderXRequestID),
	}
	if msg, ok := notices[ctx.QueryParam("aviso")]; ok {
		p.Toasts = append(p.Toasts, toast{Kind: toastSuccess, Message: msg})
	}
	return p
}

func (p page) IsModal() bool { return p.Modal }

func (p *page) addToast(kind, msg string) {
	p.Toasts = append(p.Toasts, toast{Kind: kind, Message: msg})
}

// addLoadErrors adds one toast per collection that failed to load.
func (p *page) addLoadErrors(st *catalog.State) {
	for _, c := range loadOrder {
		if err := st.Err(c); err != nil {
			p.addToast(toastDanger, "No se pudo cargar "+collectionLabels[c]+": "+errors.Cause(err).Error())
		}
	}
}

// notices are the success messages shown after a redirect (?aviso=...).
var notices = map[string]string{
	"padre_registrado": "Padre registrado correctamente.",
	"notas_guardadas":  "Notas guardadas correctamente.",
}

var loadOrder = []catalog.Collection{
	catalog.Alumnos, catalog.Cursos, catalog.Grados, catalog.Secciones, catalog.Periodos,
	catalog.Clases, catalog.Matriculas, catalog.TiposEvaluacion, catalog.Escalas,
}

var collectionLabels = map[catalog.Collection]string{
	catalog.Alumnos:         "alumnos",
	catalog.Cursos:          "cursos",
	catalog.Grados:          "grados",
	catalog.Secciones:       "secciones",
	catalog.Periodos:        "periodos",
	catalog.Clases:          "clases",
	catalog.Matriculas:      "matrículas",
	catalog.TiposEvaluacion: "tipos de evaluación",
	catalog.Escalas:         "escalas",
}

// table is a generic listing.
type table struct {
	Headers []string
	Rows    []tableRow
	Err     error
}

type tableRow struct {
	Cells []string
	Links []link
}

type link struct {
	Label string
	Href  string
	Modal bool
}

func pathID(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

func queryInt(ctx echo.Context, name string) int {
	n, _ := strconv.Atoi(ctx.QueryParam(name))
	return n
}

func isChecked(v string) bool {
	switch v {
	case "1", "on", "true", "si":
		return true
	}
	return false
}
