package echoweb

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/core/gradebook"
	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

// FieldTipoEvaluacion selects the evaluation type the saved notas are created with.
const FieldTipoEvaluacion = "tipo_evaluacion"

type notasPages struct {
	loader catalog.Loader
	saver  gradebook.Saver
}

func registerNotasPages(app *echo.Echo, loader catalog.Loader, deps Deps) {
	pg := notasPages{
		loader: loader,
		saver:  gradebook.Saver{Svc: deps.Services.Notas, Validate: deps.Validate},
	}

	g := app.Group("/notas/alumnos/:id")
	g.GET("", pg.multicurso)
	g.POST("", pg.multicurso)
	g.GET("/clases/:clase", pg.individual)
	g.POST("/clases/:clase", pg.individual)
}

type notasPage struct {
	page
	Alumno          personas.Alumno
	Grid            gradebook.Grid
	Action          string // form action
	ReadOnly        bool   // saved notas could not be loaded
	TiposEvaluacion catalog.Selector
	Periodos        catalog.Selector
	PeriodoID       int
}

// Compact and Extended expose the view toggles to templates.
func (p notasPage) Compact() bool  { return p.Grid.View.Compact }
func (p notasPage) Extended() bool { return p.Grid.View.Extended }

func (pg notasPages) multicurso(ctx echo.Context) error {
	return pg.gradebook(ctx, gradebook.ModeMulticurso)
}

func (pg notasPages) individual(ctx echo.Context) error {
	return pg.gradebook(ctx, gradebook.ModeIndividual)
}

// gridRequest is what a gradebook page is about, resolved from the path and the loaded catalog.
type gridRequest struct {
	alumno    personas.Alumno
	claseID   int
	periodoID int
	rows      []gradebook.RowSpec
}

func (pg notasPages) resolve(ctx echo.Context, st *catalog.State, mode gradebook.Mode, form url.Values) (gridRequest, error) {
	var req gridRequest
	alumnoID, err := pathID(ctx, "id")
	if err != nil {
		return req, err
	}
	if mode == gradebook.ModeIndividual {
		if req.claseID, err = pathID(ctx, "clase"); err != nil {
			return req, err
		}
	}

	if err = st.Err(catalog.Alumnos); err != nil {
		return req, echo.NewHTTPError(http.StatusBadGateway, "no se pudo cargar alumnos").SetInternal(err)
	}
	var ok bool
	if req.alumno, ok = st.Alumno(alumnoID); !ok {
		return req, errAlumnoUnknown
	}

	if mode == gradebook.ModeIndividual {
		if _, ok = req.alumno.Curso(req.claseID); !ok {
			return req, errClaseUnknown
		}
		req.rows = gradebook.RowsForAlumno(req.alumno, req.claseID)
	} else {
		req.periodoID, _ = strconv.Atoi(form.Get("periodo"))
		req.periodoID, req.rows = multicursoRows(st, req.alumno, req.periodoID)
	}
	for i := range req.rows {
		if req.rows[i].Label == "" {
			if c, ok := st.Curso(req.rows[i].CursoID); ok {
				req.rows[i].Label = c.Nombre
			} else {
				req.rows[i].Label = "Curso #" + strconv.Itoa(req.rows[i].CursoID)
			}
		}
	}
	return req, nil
}

// multicursoRows returns the rows of the Alumno's courses in periodoID, defaulting to the active
// Periodo. With no Periodo at all every course is kept.
func multicursoRows(st *catalog.State, a personas.Alumno, periodoID int) (int, []gradebook.RowSpec) {
	if periodoID == 0 {
		if p, ok := st.PeriodoActivo(); ok {
			periodoID = p.ID
		}
	}
	var rows []gradebook.RowSpec
	for _, spec := range gradebook.RowsForAlumno(a, 0) {
		if c, _ := a.Curso(spec.ClaseID); periodoID == 0 || c.PeriodoID == periodoID {
			rows = append(rows, spec)
		}
	}
	return periodoID, rows
}

func (pg notasPages) loadNotas(ctx echo.Context, req gridRequest) ([]notas.Nota, error) {
	rctx := ctx.Request().Context()
	if req.claseID != 0 {
		return pg.loader.Notas.ListNotas(rctx, notas.Filter{AlumnoID: req.alumno.ID, ClaseID: req.claseID})
	}
	return pg.loader.Notas.GetNotasAlumno(rctx, req.alumno.ID)
}

func (pg notasPages) gradebook(ctx echo.Context, mode gradebook.Mode) error {
	form := ctx.QueryParams()
	if ctx.Request().Method == http.MethodPost {
		var err error
		if form, err = ctx.FormParams(); err != nil {
			return errors.Wrap(err, "parsing gradebook form")
		}
	}

	st := pg.loader.Load(ctx.Request().Context(),
		catalog.Alumnos, catalog.Cursos, catalog.Periodos, catalog.TiposEvaluacion, catalog.Escalas)
	req, err := pg.resolve(ctx, st, mode, form)
	if err != nil {
		return err
	}

	p := notasPage{
		page:      newPage(ctx, "Notas de "+req.alumno.NombreCompleto()),
		Alumno:    req.alumno,
		Action:    ctx.Request().URL.Path,
		PeriodoID: req.periodoID,
		Periodos:  st.PeriodoOptions(req.periodoID),
	}
	if isChecked(form.Get("modal")) {
		p.Modal = true
	}
	if mode == gradebook.ModeIndividual && len(req.rows) > 0 {
		p.Title = req.rows[0].Label + ": " + req.alumno.NombreCompleto()
	}
	p.addLoadErrors(st)

	loaded, err := pg.loadNotas(ctx, req)
	if err != nil {
		err = errors.Wrap(err, "loading notas")
		pg.loader.Logger.Warn(err.Error(), err, requestInfo(ctx))
		p.ReadOnly = true
		p.addToast(toastDanger, "No se pudieron cargar las notas registradas; no es posible guardar.")
	}

	in := gradebook.Input{
		AlumnoID: req.alumno.ID,
		Mode:     mode,
		Rows:     req.rows,
		Loaded:   loaded,
		Escalas:  st.Escalas,
	}

	buf := gradebook.Buffer{}
	var ch gradebook.Change
	var save bool
	if ctx.Request().Method == http.MethodPost {
		buf = gradebook.BufferFromForm(form)
		ch, save = gradebook.ChangeFromForm(form)
	}
	grid := gradebook.Reduce(in, buf, ch)

	teID, _ := strconv.Atoi(form.Get(FieldTipoEvaluacion))
	te := notas.PickTipoEvaluacion(st.TiposEvaluacion, teID)
	p.TiposEvaluacion = st.TipoEvaluacionOptions(te.ID)

	code := http.StatusOK
	if save && p.ReadOnly {
		code = http.StatusServiceUnavailable
	} else if save {
		res, err := pg.saver.Save(ctx.Request().Context(), grid, te)
		var verr *core.ValidationError
		switch {
		case errors.As(err, &verr):
			code = http.StatusBadRequest
			p.addToast(toastDanger, verr.Error())
		case err != nil:
			return errors.Wrap(err, "saving notas")
		case len(res.Failures) == 0:
			return ctx.Redirect(http.StatusSeeOther, savedLocation(ctx, p))
		default:
			for _, f := range res.Failures {
				pg.loader.Logger.Warn("creating nota", f, requestInfo(ctx))
				p.addToast(toastDanger, "No se guardó "+rowLabel(grid, f.RowKey)+" (columna "+strconv.Itoa(f.Column+1)+"): "+errors.Cause(f.Err).Error())
			}
			if len(res.Created) > 0 {
				p.addToast(toastSuccess, "Se guardaron "+strconv.Itoa(len(res.Created))+" notas.")
			}
			if in.Loaded, err = pg.loadNotas(ctx, req); err != nil {
				return errors.Wrap(err, "reloading notas")
			}
			grid = gradebook.Reduce(in, res.Retry(grid), gradebook.Change{})
			code = http.StatusMultiStatus
		}
	}

	for _, n := range grid.Notices {
		p.addToast(toastWarning, n)
	}
	p.Grid = grid
	return ctx.Render(code, "notas", p)
}

func savedLocation(ctx echo.Context, p notasPage) string {
	q := url.Values{"aviso": {"notas_guardadas"}}
	if p.Modal {
		q.Set("modal", "1")
	}
	if p.PeriodoID != 0 && p.Grid.Mode == gradebook.ModeMulticurso {
		q.Set("periodo", strconv.Itoa(p.PeriodoID))
	}
	return ctx.Request().URL.Path + "?" + q.Encode()
}

func rowLabel(g gradebook.Grid, key string) string {
	for _, r := range g.Rows {
		if r.Key == key {
			return r.Label
		}
	}
	return key
}
