package notas

import "context"

// Service is the grades backend.
type Service interface {
	ListNotas(ctx context.Context, filter Filter) ([]Nota, error)
	CreateNota(ctx context.Context, nn NuevaNota) (Nota, error)
	ListTiposEvaluacion(ctx context.Context) ([]TipoEvaluacion, error)
	ListEscalas(ctx context.Context) ([]Escala, error)
	GetNotasAlumno(ctx context.Context, alumnoID int) ([]Nota, error)
}
