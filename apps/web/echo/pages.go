package echoweb

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/academico"
	"github.com/trezcool/escuela/core/catalog"
)

type dashboardPage struct {
	page
	Counts []count
}

type count struct {
	Label string
	Href  string
	N     int
	Err   error
}

func (s *server) dashboard(ctx echo.Context) error {
	st := s.loader.Load(ctx.Request().Context(),
		catalog.Alumnos, catalog.Cursos, catalog.Grados, catalog.Secciones, catalog.Periodos, catalog.Clases)

	p := dashboardPage{page: newPage(ctx, "Inicio")}
	p.Counts = []count{
		{Label: "Alumnos", Href: "/alumnos", N: len(st.Alumnos), Err: st.Err(catalog.Alumnos)},
		{Label: "Cursos", Href: "/cursos", N: len(st.Cursos), Err: st.Err(catalog.Cursos)},
		{Label: "Grados", Href: "/grados", N: len(st.Grados), Err: st.Err(catalog.Grados)},
		{Label: "Secciones", Href: "/secciones", N: len(st.Secciones), Err: st.Err(catalog.Secciones)},
		{Label: "Periodos", Href: "/periodos", N: len(st.Periodos), Err: st.Err(catalog.Periodos)},
		{Label: "Clases", Href: "/clases", N: len(st.Clases), Err: st.Err(catalog.Clases)},
	}
	p.addLoadErrors(st)
	return ctx.Render(http.StatusOK, "dashboard", p)
}

type tablePage struct {
	page
	Table table
}

type catalogPages struct {
	loader catalog.Loader
}

func registerCatalogPages(app *echo.Echo, loader catalog.Loader) {
	pg := catalogPages{loader: loader}

	app.GET("/cursos", pg.cursos)
	app.GET("/grados", pg.grados)
	app.GET("/secciones", pg.secciones)
	app.GET("/periodos", pg.periodos)
	app.GET("/clases", pg.clases)
	app.GET("/matriculas", pg.matriculas)
	app.GET("/docentes/:id/clases", pg.clasesDocente)
	app.GET("/clases/:id/alumnos", pg.alumnosClase)
}

func (pg catalogPages) render(ctx echo.Context, title string, st *catalog.State, t table) error {
	p := tablePage{page: newPage(ctx, title), Table: t}
	p.addLoadErrors(st)
	return ctx.Render(http.StatusOK, "tabla", p)
}

func (pg catalogPages) cursos(ctx echo.Context) error {
	st := pg.loader.Load(ctx.Request().Context(), catalog.Cursos)
	t := table{Headers: []string{"ID", "Curso"}, Err: st.Err(catalog.Cursos)}
	for _, c := range st.Cursos {
		t.Rows = append(t.Rows, tableRow{Cells: []string{strconv.Itoa(c.ID), c.Nombre}})
	}
	return pg.render(ctx, "Cursos", st, t)
}

func (pg catalogPages) grados(ctx echo.Context) error {
	st := pg.loader.Load(ctx.Request().Context(), catalog.Grados)
	t := table{Headers: []string{"ID", "Grado"}, Err: st.Err(catalog.Grados)}
	for _, g := range st.Grados {
		t.Rows = append(t.Rows, tableRow{
			Cells: []string{strconv.Itoa(g.ID), g.Nombre},
			Links: []link{{Label: "Alumnos", Href: "/alumnos?grado=" + strconv.Itoa(g.ID)}},
		})
	}
	return pg.render(ctx, "Grados", st, t)
}

func (pg catalogPages) secciones(ctx echo.Context) error {
	st := pg.loader.Load(ctx.Request().Context(), catalog.Secciones, catalog.Grados)
	t := table{Headers: []string{"ID", "Sección", "Grado"}, Err: st.Err(catalog.Secciones)}
	for _, sec := range st.Secciones {
		grado := "-"
		if g, ok := st.Grado(sec.GradoID); ok {
			grado = g.Nombre
		}
		t.Rows = append(t.Rows, tableRow{
			Cells: []string{strconv.Itoa(sec.ID), sec.Nombre, grado},
			Links: []link{{Label: "Alumnos", Href: "/alumnos?seccion=" + strconv.Itoa(sec.ID)}},
		})
	}
	return pg.render(ctx, "Secciones", st, t)
}

func (pg catalogPages) periodos(ctx echo.Context) error {
	st := pg.loader.Load(ctx.Request().Context(), catalog.Periodos)
	t := table{Headers: []string{"ID", "Periodo", "Estado"}, Err: st.Err(catalog.Periodos)}
	for _, p := range st.Periodos {
		estado := "cerrado"
		if p.Activo {
			estado = "activo"
		}
		t.Rows = append(t.Rows, tableRow{Cells: []string{strconv.Itoa(p.ID), p.Nombre, estado}})
	}
	return pg.render(ctx, "Periodos", st, t)
}

func (pg catalogPages) clases(ctx echo.Context) error {
	st := pg.loader.Load(ctx.Request().Context(), catalog.Academic...)
	return pg.render(ctx, "Clases", st, clasesTable(st, st.Clases, st.Err(catalog.Clases)))
}

func clasesTable(st *catalog.State, clases []academico.Clase, err error) table {
	t := table{Headers: []string{"ID", "Clase", "Docente"}, Err: err}
	for _, c := range clases {
		docente := "-"
		row := tableRow{Links: []link{{Label: "Alumnos", Href: "/clases/" + strconv.Itoa(c.ID) + "/alumnos"}}}
		if c.DocenteID != 0 {
			docente = "#" + strconv.Itoa(c.DocenteID)
			row.Links = append(row.Links, link{
				Label: "Clases del docente",
				Href:  "/docentes/" + strconv.Itoa(c.DocenteID) + "/clases",
			})
		}
		row.Cells = []string{strconv.Itoa(c.ID), st.ClaseLabel(c), docente}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (pg catalogPages) matriculas(ctx echo.Context) error {
	st := pg.loader.Load(ctx.Request().Context(),
		catalog.Matriculas, catalog.Alumnos, catalog.Secciones, catalog.Grados, catalog.Periodos)
	t := table{Headers: []string{"ID", "Alumno", "Sección", "Periodo", "Estado"}, Err: st.Err(catalog.Matriculas)}
	for _, m := range st.Matriculas {
		alumno, seccion, periodo := "#"+strconv.Itoa(m.AlumnoID), "#"+strconv.Itoa(m.SeccionID), "#"+strconv.Itoa(m.PeriodoID)
		if a, ok := st.Alumno(m.AlumnoID); ok {
			alumno = a.NombreCompleto()
		}
		if sec, ok := st.Seccion(m.SeccionID); ok {
			seccion = st.SeccionLabel(sec)
		}
		if p, ok := st.Periodo(m.PeriodoID); ok {
			periodo = p.Nombre
		}
		t.Rows = append(t.Rows, tableRow{
			Cells: []string{strconv.Itoa(m.ID), alumno, seccion, periodo, m.Estado},
			Links: []link{{Label: "Notas", Href: "/notas/alumnos/" + strconv.Itoa(m.AlumnoID) + "?periodo=" + strconv.Itoa(m.PeriodoID)}},
		})
	}
	return pg.render(ctx, "Matrículas", st, t)
}

func (pg catalogPages) clasesDocente(ctx echo.Context) error {
	docenteID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	rctx := ctx.Request().Context()
	st := pg.loader.Load(rctx, catalog.Academic...)

	clases, err := pg.loader.Academico.GetClasesDocente(rctx, docenteID)
	if err != nil {
		err = errors.Wrap(err, "listing clases of docente")
		pg.loader.Logger.Warn(err.Error(), err, requestInfo(ctx))
	}
	return pg.render(ctx, "Clases del docente #"+strconv.Itoa(docenteID), st, clasesTable(st, clases, err))
}

func (pg catalogPages) alumnosClase(ctx echo.Context) error {
	claseID, err := pathID(ctx, "id")
	if err != nil {
		return err
	}
	rctx := ctx.Request().Context()
	st := pg.loader.Load(rctx, catalog.Academic...)

	title := "Clase #" + strconv.Itoa(claseID)
	if c, ok := st.Clase(claseID); ok {
		title = st.ClaseLabel(c)
	}

	alumnos, err := pg.loader.Personas.GetAlumnosPorClase(rctx, claseID)
	if errors.Cause(err) == core.ErrNotFound {
		return errClaseUnknown
	}
	if err != nil {
		err = errors.Wrap(err, "listing alumnos of clase")
		pg.loader.Logger.Warn(err.Error(), err, requestInfo(ctx))
	}
	t := table{Headers: []string{"ID", "Alumno", "Documento"}, Err: err}
	for _, a := range alumnos {
		t.Rows = append(t.Rows, tableRow{
			Cells: []string{strconv.Itoa(a.ID), a.NombreCompleto(), a.NumeroDocumento},
			Links: []link{{
				Label: "Notas",
				Href:  "/notas/alumnos/" + strconv.Itoa(a.ID) + "/clases/" + strconv.Itoa(claseID),
			}},
		})
	}
	return pg.render(ctx, title, st, t)
}
