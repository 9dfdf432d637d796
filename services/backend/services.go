package backend

import (
	"context"
	"strconv"
	"time"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/academico"
	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

// NewServices returns REST clients for the three services configured in conf.
func NewServices(conf core.BackendConfig) catalog.Services {
	return catalog.Services{
		Personas:  NewPersonasService(conf.PersonasURL, conf.Timeout),
		Academico: NewAcademicoService(conf.AcademicoURL, conf.Timeout),
		Notas:     NewNotasService(conf.NotasURL, conf.Timeout),
	}
}

type personasService struct{ c *client }

var _ personas.Service = (*personasService)(nil)

func NewPersonasService(baseURL string, timeout time.Duration) personas.Service {
	return &personasService{c: newClient(baseURL, timeout)}
}

func (svc *personasService) ListAlumnos(ctx context.Context) ([]personas.Alumno, error) {
	alumnos := []personas.Alumno{}
	err := svc.c.list(ctx, "listing alumnos", "/alumnos", "alumnos", nil, &alumnos)
	return alumnos, err
}

func (svc *personasService) ListMatriculas(ctx context.Context) ([]personas.Matricula, error) {
	matriculas := []personas.Matricula{}
	err := svc.c.list(ctx, "listing matriculas", "/matriculas", "matriculas", nil, &matriculas)
	return matriculas, err
}

func (svc *personasService) CreatePadre(ctx context.Context, np personas.NuevoPadre) (personas.Padre, error) {
	var padre personas.Padre
	err := svc.c.create(ctx, "creating padre", "/padres", "padre", np, &padre)
	return padre, err
}

func (svc *personasService) GetAlumnosPorClase(ctx context.Context, claseID int) ([]personas.Alumno, error) {
	alumnos := []personas.Alumno{}
	path := "/clases/" + strconv.Itoa(claseID) + "/alumnos"
	err := svc.c.list(ctx, "listing alumnos of clase", path, "alumnos", nil, &alumnos)
	return alumnos, err
}

type academicoService struct{ c *client }

var _ academico.Service = (*academicoService)(nil)

func NewAcademicoService(baseURL string, timeout time.Duration) academico.Service {
	return &academicoService{c: newClient(baseURL, timeout)}
}

func (svc *academicoService) ListCursos(ctx context.Context) ([]academico.Curso, error) {
	cursos := []academico.Curso{}
	err := svc.c.list(ctx, "listing cursos", "/cursos", "cursos", nil, &cursos)
	return cursos, err
}

func (svc *academicoService) ListSecciones(ctx context.Context) ([]academico.Seccion, error) {
	secciones := []academico.Seccion{}
	err := svc.c.list(ctx, "listing secciones", "/secciones", "secciones", nil, &secciones)
	return secciones, err
}

func (svc *academicoService) ListGrados(ctx context.Context) ([]academico.Grado, error) {
	grados := []academico.Grado{}
	err := svc.c.list(ctx, "listing grados", "/grados", "grados", nil, &grados)
	return grados, err
}

func (svc *academicoService) ListPeriodos(ctx context.Context) ([]academico.Periodo, error) {
	periodos := []academico.Periodo{}
	err := svc.c.list(ctx, "listing periodos", "/periodos", "periodos", nil, &periodos)
	return periodos, err
}

func (svc *academicoService) ListClases(ctx context.Context) ([]academico.Clase, error) {
	clases := []academico.Clase{}
	err := svc.c.list(ctx, "listing clases", "/clases", "clases", nil, &clases)
	return clases, err
}

func (svc *academicoService) GetClasesDocente(ctx context.Context, docenteID int) ([]academico.Clase, error) {
	clases := []academico.Clase{}
	path := "/docentes/" + strconv.Itoa(docenteID) + "/clases"
	err := svc.c.list(ctx, "listing clases of docente", path, "clases", nil, &clases)
	return clases, err
}

type notasService struct{ c *client }

var _ notas.Service = (*notasService)(nil)

func NewNotasService(baseURL string, timeout time.Duration) notas.Service {
	return &notasService{c: newClient(baseURL, timeout)}
}

func (svc *notasService) ListNotas(ctx context.Context, filter notas.Filter) ([]notas.Nota, error) {
	query := make(map[string]string, 2)
	if filter.AlumnoID != 0 {
		query["alumno_id"] = strconv.Itoa(filter.AlumnoID)
	}
	if filter.ClaseID != 0 {
		query["clase_id"] = strconv.Itoa(filter.ClaseID)
	}
	ns := []notas.Nota{}
	err := svc.c.list(ctx, "listing notas", "/notas", "notas", query, &ns)
	return ns, err
}

func (svc *notasService) CreateNota(ctx context.Context, nn notas.NuevaNota) (notas.Nota, error) {
	var n notas.Nota
	err := svc.c.create(ctx, "creating nota", "/notas", "nota", nn, &n)
	return n, err
}

func (svc *notasService) ListTiposEvaluacion(ctx context.Context) ([]notas.TipoEvaluacion, error) {
	tipos := []notas.TipoEvaluacion{}
	err := svc.c.list(ctx, "listing tipos de evaluacion", "/tipos-evaluacion", "tipos_evaluacion", nil, &tipos)
	return tipos, err
}

func (svc *notasService) ListEscalas(ctx context.Context) ([]notas.Escala, error) {
	escalas := []notas.Escala{}
	err := svc.c.list(ctx, "listing escalas", "/escalas", "escalas", nil, &escalas)
	return escalas, err
}

func (svc *notasService) GetNotasAlumno(ctx context.Context, alumnoID int) ([]notas.Nota, error) {
	ns := []notas.Nota{}
	path := "/alumnos/" + strconv.Itoa(alumnoID) + "/notas"
	err := svc.c.list(ctx, "listing notas of alumno", path, "notas", nil, &ns)
	return ns, err
}
