package notas

import "github.com/pkg/errors"

var (
	ErrValorDoble      = errors.New("la nota no puede ser numérica y literal a la vez")
	ErrValorVacio      = errors.New("la nota debe tener un valor")
	ErrFueraDeRango    = errors.New("la nota debe estar entre 0 y 20")
	ErrLiteralInvalido = errors.New("la nota literal no pertenece a la escala")
	ErrTipoBloqueado   = errors.New("el tipo de calificación no puede cambiar: ya existen notas registradas")
)
