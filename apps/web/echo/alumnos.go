package echoweb

import (
	"net/http"
	"strconv"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/core/personas"
)

type alumnoPages struct {
	loader     catalog.Loader
	mailSvc    core.EmailService
	validate   *validator.Validate
	translator ut.Translator
}

func registerAlumnoPages(app *echo.Echo, loader catalog.Loader, deps Deps) {
	pg := alumnoPages{
		loader:     loader,
		mailSvc:    deps.MailSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	app.GET("/alumnos", pg.list)
	app.GET("/padres/nuevo", pg.newPadre)
	app.POST("/padres", pg.createPadre)
}

type alumnosPage struct {
	page
	Filter    personas.AlumnoFilter
	Clases    catalog.Selector
	Grados    catalog.Selector
	Secciones catalog.Selector
	Alumnos   []personas.Alumno
	Total     int
	Err       error
}

func (pg alumnoPages) list(ctx echo.Context) error {
	var filter personas.AlumnoFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to AlumnoFilter")
	}

	st := pg.loader.Load(ctx.Request().Context(), append([]catalog.Collection{catalog.Alumnos}, catalog.Academic...)...)
	p := alumnosPage{
		page:      newPage(ctx, "Alumnos"),
		Filter:    filter,
		Clases:    st.ClaseOptions(filter.ClaseID),
		Grados:    st.GradoOptions(filter.GradoID),
		Secciones: st.SeccionOptions(filter.SeccionID, filter.GradoID),
		Alumnos:   st.FilterAlumnos(filter),
		Total:     len(st.Alumnos),
		Err:       st.Err(catalog.Alumnos),
	}
	p.addLoadErrors(st)
	return ctx.Render(http.StatusOK, "alumnos", p)
}

type padrePage struct {
	page
	Form        personas.NuevoPadre
	Errors      map[string]string
	Parentescos []string
	Alumnos     catalog.Selector
}

func (p padrePage) HasAlumno(id int) bool {
	for _, a := range p.Form.AlumnoIDs {
		if a == id {
			return true
		}
	}
	return false
}

func (pg alumnoPages) padrePage(ctx echo.Context, form personas.NuevoPadre) padrePage {
	st := pg.loader.Load(ctx.Request().Context(), catalog.Alumnos)
	p := padrePage{
		page:        newPage(ctx, "Registrar padre"),
		Form:        form,
		Errors:      map[string]string{},
		Parentescos: personas.Parentescos,
		Alumnos:     catalog.Selector{Err: st.Err(catalog.Alumnos)},
	}
	for _, a := range st.Alumnos {
		p.Alumnos.Options = append(p.Alumnos.Options, catalog.Option{
			Value:    a.ID,
			Label:    a.NombreCompleto(),
			Selected: p.HasAlumno(a.ID),
		})
	}
	p.addLoadErrors(st)
	return p
}

func (pg alumnoPages) newPadre(ctx echo.Context) error {
	var form personas.NuevoPadre
	if id := queryInt(ctx, "alumno"); id > 0 {
		form.AlumnoIDs = []int{id}
	}
	return ctx.Render(http.StatusOK, "padre_form", pg.padrePage(ctx, form))
}

func (pg alumnoPages) createPadre(ctx echo.Context) error {
	var form personas.NuevoPadre
	if err := ctx.Bind(&form); err != nil {
		return errors.Wrap(err, "binding to NuevoPadre")
	}

	if err := form.Validate(pg.validate); err != nil {
		p := pg.padrePage(ctx, form)
		p.Errors = core.TranslateErrors(err, pg.translator)
		p.addToast(toastDanger, "Revise los campos marcados.")
		return ctx.Render(http.StatusBadRequest, "padre_form", p)
	}

	rctx := ctx.Request().Context()
	padre, err := pg.loader.Personas.CreatePadre(rctx, form)
	if err != nil {
		p := pg.padrePage(ctx, form)
		if fields := core.TranslateErrors(err, pg.translator); fields != nil {
			p.Errors = fields
			p.addToast(toastDanger, "Revise los campos marcados.")
			return ctx.Render(http.StatusBadRequest, "padre_form", p)
		}
		err = errors.Wrap(err, "creating padre")
		pg.loader.Logger.Error(err.Error(), err, requestInfo(ctx))
		p.addToast(toastDanger, "No se pudo registrar al padre: "+errors.Cause(err).Error())
		return ctx.Render(http.StatusBadGateway, "padre_form", p)
	}

	if msg := personas.WelcomeEmail(padre, pg.alumnoNames(ctx, padre.AlumnoIDs)); msg != nil {
		pg.mailSvc.SendMessages(msg)
	}

	if isChecked(ctx.FormValue("modal")) || isChecked(ctx.QueryParam("modal")) {
		p := tablePage{page: newPage(ctx, "Padre registrado")}
		p.Modal = true
		p.addToast(toastSuccess, notices["padre_registrado"])
		p.Table = table{
			Headers: []string{"ID", "Padre", "Documento", "Parentesco"},
			Rows: []tableRow{{Cells: []string{
				strconv.Itoa(padre.ID), padre.Apellidos + ", " + padre.Nombres, padre.NumeroDocumento, padre.Parentesco,
			}}},
		}
		return ctx.Render(http.StatusCreated, "tabla", p)
	}
	return ctx.Redirect(http.StatusSeeOther, "/alumnos?aviso=padre_registrado")
}

// alumnoNames resolves display names for the welcome email. Unknown IDs are skipped.
func (pg alumnoPages) alumnoNames(ctx echo.Context, ids []int) []string {
	if len(ids) == 0 {
		return nil
	}
	st := pg.loader.Load(ctx.Request().Context(), catalog.Alumnos)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if a, ok := st.Alumno(id); ok {
			names = append(names, a.NombreCompleto())
		}
	}
	return names
}
