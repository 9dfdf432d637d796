// Package catalog loads the reference collections a page needs and turns them into selectors and filters.
package catalog

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/academico"
	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

// Collection names a reference collection.
type Collection string

const (
	Cursos          Collection = "cursos"
	Secciones       Collection = "secciones"
	Grados          Collection = "grados"
	Periodos        Collection = "periodos"
	Clases          Collection = "clases"
	Alumnos         Collection = "alumnos"
	Matriculas      Collection = "matriculas"
	TiposEvaluacion Collection = "tipos_evaluacion"
	Escalas         Collection = "escalas"
)

// Academic is the set of collections needed to label classes and sections.
var Academic = []Collection{Cursos, Secciones, Grados, Periodos, Clases}

// Services are the backends the collections come from.
type Services struct {
	Personas  personas.Service
	Academico academico.Service
	Notas     notas.Service
}

// State holds the collections loaded for one request. Collections keep arrival order.
type State struct {
	Cursos          []academico.Curso
	Secciones       []academico.Seccion
	Grados          []academico.Grado
	Periodos        []academico.Periodo
	Clases          []academico.Clase
	Alumnos         []personas.Alumno
	Matriculas      []personas.Matricula
	TiposEvaluacion []notas.TipoEvaluacion
	Escalas         []notas.Escala

	mu     sync.Mutex
	errors map[Collection]error
}

// Err returns the error that prevented c from loading, if any.
func (s *State) Err(c Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[c]
}

// Errors returns every load error, keyed by collection.
func (s *State) Errors() map[Collection]error {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := make(map[Collection]error, len(s.errors))
	for c, err := range s.errors {
		errs[c] = err
	}
	return errs
}

func (s *State) setErr(c Collection, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errors == nil {
		s.errors = make(map[Collection]error)
	}
	s.errors[c] = err
}

// Loader fetches collections concurrently.
type Loader struct {
	Services
	MaxInFlight int
	Logger      core.Logger
}

// Load fetches the requested collections in parallel. A failing collection is recorded in the
// State and left empty; it does not cancel the others.
func (l Loader) Load(ctx context.Context, cols ...Collection) *State {
	st := new(State)
	g, gctx := errgroup.WithContext(ctx)
	if l.MaxInFlight > 0 {
		g.SetLimit(l.MaxInFlight)
	}

	seen := make(map[Collection]bool, len(cols))
	for _, c := range cols {
		if seen[c] {
			continue
		}
		seen[c] = true
		c := c
		g.Go(func() error {
			if err := l.load(gctx, st, c); err != nil {
				err = errors.Wrapf(err, "loading %s", c)
				st.setErr(c, err)
				if l.Logger != nil {
					l.Logger.Warn(err.Error(), err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return st
}

func (l Loader) load(ctx context.Context, st *State, c Collection) (err error) {
	switch c {
	case Cursos:
		st.Cursos, err = l.Academico.ListCursos(ctx)
	case Secciones:
		st.Secciones, err = l.Academico.ListSecciones(ctx)
	case Grados:
		st.Grados, err = l.Academico.ListGrados(ctx)
	case Periodos:
		st.Periodos, err = l.Academico.ListPeriodos(ctx)
	case Clases:
		st.Clases, err = l.Academico.ListClases(ctx)
	case Alumnos:
		st.Alumnos, err = l.Personas.ListAlumnos(ctx)
	case Matriculas:
		st.Matriculas, err = l.Personas.ListMatriculas(ctx)
	case TiposEvaluacion:
		st.TiposEvaluacion, err = l.Notas.ListTiposEvaluacion(ctx)
	case Escalas:
		st.Escalas, err = l.Notas.ListEscalas(ctx)
	default:
		err = errors.Errorf("unknown collection %q", c)
	}
	return err
}

// Lookups

func (s *State) Curso(id int) (academico.Curso, bool) {
	for _, c := range s.Cursos {
		if c.ID == id {
			return c, true
		}
	}
	return academico.Curso{}, false
}

func (s *State) Seccion(id int) (academico.Seccion, bool) {
	for _, sec := range s.Secciones {
		if sec.ID == id {
			return sec, true
		}
	}
	return academico.Seccion{}, false
}

func (s *State) Grado(id int) (academico.Grado, bool) {
	for _, g := range s.Grados {
		if g.ID == id {
			return g, true
		}
	}
	return academico.Grado{}, false
}

func (s *State) Periodo(id int) (academico.Periodo, bool) {
	for _, p := range s.Periodos {
		if p.ID == id {
			return p, true
		}
	}
	return academico.Periodo{}, false
}

func (s *State) Clase(id int) (academico.Clase, bool) {
	for _, c := range s.Clases {
		if c.ID == id {
			return c, true
		}
	}
	return academico.Clase{}, false
}

func (s *State) Alumno(id int) (personas.Alumno, bool) {
	for _, a := range s.Alumnos {
		if a.ID == id {
			return a, true
		}
	}
	return personas.Alumno{}, false
}

// PeriodoActivo returns the first active Periodo.
func (s *State) PeriodoActivo() (academico.Periodo, bool) {
	for _, p := range s.Periodos {
		if p.Activo {
			return p, true
		}
	}
	return academico.Periodo{}, false
}
