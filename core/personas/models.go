package personas

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/escuela/core"
)

// Parentescos
const (
	ParentescoPadre     = "padre"
	ParentescoMadre     = "madre"
	ParentescoApoderado = "apoderado"
	ParentescoOtro      = "otro"
)

var Parentescos = []string{ParentescoPadre, ParentescoMadre, ParentescoApoderado, ParentescoOtro}

// AlumnoCurso is a course the Alumno attends through a Clase.
type AlumnoCurso struct {
	ClaseID     int    `json:"clase_id"`
	CursoID     int    `json:"curso_id"`
	CursoNombre string `json:"curso_nombre"`
	SeccionID   int    `json:"seccion_id"`
	PeriodoID   int    `json:"periodo_id"`
}

type Alumno struct {
	ID              int           `json:"id"`
	Nombres         string        `json:"nombres"`
	Apellidos       string        `json:"apellidos"`
	NumeroDocumento string        `json:"numero_documento"`
	Cursos          []AlumnoCurso `json:"cursos"`
}

// NombreCompleto returns "Apellidos, Nombres" as listed in class rosters.
func (a Alumno) NombreCompleto() string {
	switch {
	case a.Apellidos == "":
		return a.Nombres
	case a.Nombres == "":
		return a.Apellidos
	}
	return a.Apellidos + ", " + a.Nombres
}

// Curso returns the Alumno's course for the given Clase.
func (a Alumno) Curso(claseID int) (AlumnoCurso, bool) {
	for _, c := range a.Cursos {
		if c.ClaseID == claseID {
			return c, true
		}
	}
	return AlumnoCurso{}, false
}

type Matricula struct {
	ID        int    `json:"id"`
	AlumnoID  int    `json:"alumno_id"`
	SeccionID int    `json:"seccion_id"`
	PeriodoID int    `json:"periodo_id"`
	Estado    string `json:"estado"`
}

type Padre struct {
	ID              int    `json:"id"`
	Nombres         string `json:"nombres"`
	Apellidos       string `json:"apellidos"`
	NumeroDocumento string `json:"numero_documento"`
	Email           string `json:"email,omitempty"`
	Telefono        string `json:"telefono,omitempty"`
	Parentesco      string `json:"parentesco"`
	AlumnoIDs       []int  `json:"alumno_ids,omitempty"`
}

// NuevoPadre contains information needed to register a new Padre.
type NuevoPadre struct {
	Nombres         string `json:"nombres" form:"nombres" validate:"required,notblank,max=100"`
	Apellidos       string `json:"apellidos" form:"apellidos" validate:"required,notblank,max=100"`
	NumeroDocumento string `json:"numero_documento" form:"numero_documento" validate:"required,dni"`
	Email           string `json:"email" form:"email" validate:"omitempty,email"`
	Telefono        string `json:"telefono" form:"telefono" validate:"omitempty,telefono"`
	Parentesco      string `json:"parentesco" form:"parentesco" validate:"required,oneof=padre madre apoderado otro"`
	AlumnoIDs       []int  `json:"alumno_ids" form:"alumno_ids" validate:"omitempty,dive,gt=0"`
}

func (np *NuevoPadre) Validate(validate *validator.Validate) error {
	np.Nombres = core.CleanString(np.Nombres)
	np.Apellidos = core.CleanString(np.Apellidos)
	np.NumeroDocumento = core.CleanString(np.NumeroDocumento)
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.Telefono = strings.ReplaceAll(core.CleanString(np.Telefono), " ", "")
	np.Parentesco = core.CleanString(np.Parentesco, true /* lower */)
	return validate.Struct(np)
}

// AlumnoFilter narrows an Alumno list. Zero values match everything.
type AlumnoFilter struct {
	ClaseID   int    `query:"clase"`
	GradoID   int    `query:"grado"`
	SeccionID int    `query:"seccion"`
	Search    string `query:"q"`
}

func (f *AlumnoFilter) IsEmpty() bool {
	return f.ClaseID == 0 && f.GradoID == 0 && f.SeccionID == 0 && f.Search == ""
}

func (f *AlumnoFilter) Clean() {
	f.Search = core.CleanString(f.Search)
}
