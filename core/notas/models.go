package notas

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/escuela/core"
)

// Grade bounds of the numeric (vigesimal) scale.
const (
	MinNota = 0
	MaxNota = 20
)

// Tipo is the grading type of a course-class: numeric (0-20) or literal (AD/A/B/C).
type Tipo string

const (
	TipoNumerico Tipo = "numerico"
	TipoLiteral  Tipo = "literal"
)

func (t Tipo) Valid() bool { return t == TipoNumerico || t == TipoLiteral }

// DefaultLiterales is the literal scale used when the backend returns none.
var DefaultLiterales = []Escala{
	{Valor: "AD", Descripcion: "Logro destacado"},
	{Valor: "A", Descripcion: "Logro esperado"},
	{Valor: "B", Descripcion: "En proceso"},
	{Valor: "C", Descripcion: "En inicio"},
}

// Nota is a single grade of an Alumno in a Clase (or Curso).
// Exactly one of ValorNumerico and ValorLiteral is set.
type Nota struct {
	ID              int          `json:"id"`
	AlumnoID        int          `json:"alumno_id"`
	ClaseID         int          `json:"clase_id,omitempty"`
	CursoID         int          `json:"curso_id,omitempty"`
	ValorNumerico   null.Float64 `json:"valor_numerico"`
	ValorLiteral    null.String  `json:"valor_literal"`
	TipoEvaluacion  string       `json:"tipo_evaluacion"`
	Peso            float64      `json:"peso"`
	FechaEvaluacion string       `json:"fecha_evaluacion"` // YYYY-MM-DD
	Observaciones   string       `json:"observaciones,omitempty"`
}

// Tipo infers the grading type from the value the Nota carries.
func (n Nota) Tipo() Tipo {
	if n.ValorLiteral.Valid {
		return TipoLiteral
	}
	return TipoNumerico
}

// Valor returns the value as typed in the grid: "15.5", "AD".
func (n Nota) Valor() string {
	if n.ValorLiteral.Valid {
		return n.ValorLiteral.String
	}
	if n.ValorNumerico.Valid {
		return FormatValor(n.ValorNumerico.Float64)
	}
	return ""
}

type TipoEvaluacion struct {
	ID     int     `json:"id"`
	Nombre string  `json:"nombre"`
	Peso   float64 `json:"peso"`
}

// DefaultTipoEvaluacion is used when the backend lists no evaluation types.
var DefaultTipoEvaluacion = TipoEvaluacion{Nombre: "Evaluación", Peso: 1}

// PickTipoEvaluacion returns the type with the given id, the first listed one, or DefaultTipoEvaluacion.
func PickTipoEvaluacion(tipos []TipoEvaluacion, id int) TipoEvaluacion {
	for _, te := range tipos {
		if te.ID == id {
			return te
		}
	}
	if len(tipos) > 0 {
		return tipos[0]
	}
	return DefaultTipoEvaluacion
}

// Escala is one value of the literal scale.
type Escala struct {
	ID          int    `json:"id"`
	Valor       string `json:"valor"`
	Descripcion string `json:"descripcion"`
}

// NuevaNota contains information needed to create a new Nota.
type NuevaNota struct {
	AlumnoID        int          `json:"alumno_id" validate:"required,gt=0"`
	ClaseID         int          `json:"clase_id,omitempty" validate:"required_without=CursoID"`
	CursoID         int          `json:"curso_id,omitempty"`
	ValorNumerico   null.Float64 `json:"valor_numerico"`
	ValorLiteral    null.String  `json:"valor_literal"`
	TipoEvaluacion  string       `json:"tipo_evaluacion" validate:"required,notblank"`
	Peso            float64      `json:"peso" validate:"gte=0"`
	FechaEvaluacion string       `json:"fecha_evaluacion" validate:"required,datetime=2006-01-02"`
	Observaciones   string       `json:"observaciones,omitempty" validate:"max=500"`
}

// NewNuevaNota builds a NuevaNota holding `valor` according to `tipo`.
// `valor` must already be a normalized grid value.
func NewNuevaNota(alumnoID, claseID int, tipo Tipo, valor string, te TipoEvaluacion, fecha time.Time) NuevaNota {
	nn := NuevaNota{
		AlumnoID:        alumnoID,
		ClaseID:         claseID,
		TipoEvaluacion:  te.Nombre,
		Peso:            te.Peso,
		FechaEvaluacion: fecha.UTC().Format("2006-01-02"),
	}
	if nn.Peso <= 0 {
		nn.Peso = 1
	}
	if tipo == TipoLiteral {
		nn.ValorLiteral = null.StringFrom(valor)
	} else if v, ok := ParseValor(valor); ok {
		nn.ValorNumerico = null.Float64From(v)
	}
	return nn
}

func (nn *NuevaNota) Validate(validate *validator.Validate, escalas []Escala) error {
	nn.TipoEvaluacion = core.CleanString(nn.TipoEvaluacion)
	nn.Observaciones = core.CleanString(nn.Observaciones)
	if nn.ValorLiteral.Valid {
		nn.ValorLiteral.String = strings.ToUpper(core.CleanString(nn.ValorLiteral.String))
	}

	if err := validate.Struct(nn); err != nil {
		return err
	}

	switch {
	case nn.ValorNumerico.Valid && nn.ValorLiteral.Valid:
		return core.NewValidationError(ErrValorDoble, core.FieldError{Field: "valor", Error: ErrValorDoble.Error()})
	case !nn.ValorNumerico.Valid && !nn.ValorLiteral.Valid:
		return core.NewValidationError(ErrValorVacio, core.FieldError{Field: "valor", Error: ErrValorVacio.Error()})
	case nn.ValorNumerico.Valid:
		if v := nn.ValorNumerico.Float64; v < MinNota || v > MaxNota {
			return core.NewValidationError(ErrFueraDeRango, core.FieldError{Field: "valor_numerico", Error: ErrFueraDeRango.Error()})
		}
	default:
		if _, ok := MatchLiteral(nn.ValorLiteral.String, escalas); !ok {
			return core.NewValidationError(ErrLiteralInvalido, core.FieldError{Field: "valor_literal", Error: ErrLiteralInvalido.Error()})
		}
	}
	return nil
}

// Filter narrows ListNotas. Zero values match everything.
type Filter struct {
	AlumnoID int
	ClaseID  int
}
