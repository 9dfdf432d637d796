package personas

import "context"

// Service is the people backend: students, enrollments and parents.
type Service interface {
	ListAlumnos(ctx context.Context) ([]Alumno, error)
	ListMatriculas(ctx context.Context) ([]Matricula, error)
	CreatePadre(ctx context.Context, np NuevoPadre) (Padre, error)
	GetAlumnosPorClase(ctx context.Context, claseID int) ([]Alumno, error)
}
