package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/core/gradebook"
	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

type api struct {
	loader catalog.Loader
	conf   *core.Config
}

func registerAPI(g *echo.Group, loader catalog.Loader, deps Deps) {
	a := api{loader: loader, conf: deps.Conf}

	g.GET("/health", a.health)
	g.GET("/alumnos", a.alumnos)
	g.POST("/gradebook", a.gradebook)
}

func (a api) health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"build":   a.conf.Build,
		"backend": a.conf.Backend.Mode,
	})
}

// alumnos lists the alumnos matching the filter, in the backend's envelope format.
func (a api) alumnos(ctx echo.Context) error {
	var filter personas.AlumnoFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to AlumnoFilter")
	}

	st := a.loader.Load(ctx.Request().Context(), catalog.Alumnos, catalog.Secciones)
	if err := st.Err(catalog.Alumnos); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errors.Cause(err).Error())
	}
	alumnos := st.FilterAlumnos(filter)
	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"alumnos": alumnos, "total": len(alumnos)},
	})
}

// gradebookRequest drives the grid reducer from a JSON client.
type gradebookRequest struct {
	AlumnoID  int              `json:"alumno_id"`
	ClaseID   int              `json:"clase_id,omitempty"`   // individual mode when set
	PeriodoID int              `json:"periodo_id,omitempty"` // multicurso only; defaults to the active one
	Buffer    gradebook.Buffer `json:"buffer"`
	Change    gradebook.Change `json:"change"`
}

func (a api) gradebook(ctx echo.Context) error {
	var data gradebookRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to gradebookRequest")
	}
	if data.AlumnoID <= 0 {
		return core.NewValidationError(nil, core.FieldError{Field: "alumno_id", Error: "este campo es obligatorio"})
	}
	if !data.Change.Kind.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "change", Error: "cambio desconocido"})
	}

	rctx := ctx.Request().Context()
	st := a.loader.Load(rctx, catalog.Alumnos, catalog.Periodos, catalog.Escalas)
	if err := st.Err(catalog.Alumnos); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errors.Cause(err).Error())
	}
	alumno, ok := st.Alumno(data.AlumnoID)
	if !ok {
		return errAlumnoUnknown
	}

	mode := gradebook.ModeMulticurso
	var (
		rows   []gradebook.RowSpec
		loaded []notas.Nota
		err    error
	)
	if data.ClaseID != 0 {
		if _, ok = alumno.Curso(data.ClaseID); !ok {
			return errClaseUnknown
		}
		mode = gradebook.ModeIndividual
		rows = gradebook.RowsForAlumno(alumno, data.ClaseID)
		loaded, err = a.loader.Notas.ListNotas(rctx, notas.Filter{AlumnoID: alumno.ID, ClaseID: data.ClaseID})
	} else {
		data.PeriodoID, rows = multicursoRows(st, alumno, data.PeriodoID)
		loaded, err = a.loader.Notas.GetNotasAlumno(rctx, alumno.ID)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, errors.Cause(err).Error())
	}

	grid := gradebook.Reduce(gradebook.Input{
		AlumnoID: alumno.ID,
		Mode:     mode,
		Rows:     rows,
		Loaded:   loaded,
		Escalas:  st.Escalas,
	}, data.Buffer, data.Change)

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"grid": grid, "buffer": grid.Buffer(), "periodo_id": data.PeriodoID},
	})
}
