package academico

import "context"

// Service is the academic backend: courses, grade levels, sections, periods and classes.
type Service interface {
	ListCursos(ctx context.Context) ([]Curso, error)
	ListSecciones(ctx context.Context) ([]Seccion, error)
	ListGrados(ctx context.Context) ([]Grado, error)
	ListPeriodos(ctx context.Context) ([]Periodo, error)
	ListClases(ctx context.Context) ([]Clase, error)
	GetClasesDocente(ctx context.Context, docenteID int) ([]Clase, error)
}
