package catalog

import (
	"strconv"

	"github.com/trezcool/escuela/core/academico"
)

// Option is one <option> of a selector.
type Option struct {
	Value    int    `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Selector is an option list plus the load error of the collection behind it, if any.
type Selector struct {
	Options []Option
	Err     error
}

func (s Selector) Empty() bool { return len(s.Options) == 0 }

func unknown(id int) string { return "#" + strconv.Itoa(id) }

func (s *State) CursoOptions(selected int) Selector {
	opts := make([]Option, 0, len(s.Cursos))
	for _, c := range s.Cursos {
		opts = append(opts, Option{Value: c.ID, Label: c.Nombre, Selected: c.ID == selected})
	}
	return Selector{Options: opts, Err: s.Err(Cursos)}
}

func (s *State) GradoOptions(selected int) Selector {
	opts := make([]Option, 0, len(s.Grados))
	for _, g := range s.Grados {
		opts = append(opts, Option{Value: g.ID, Label: g.Nombre, Selected: g.ID == selected})
	}
	return Selector{Options: opts, Err: s.Err(Grados)}
}

// SeccionOptions lists sections labelled with their grado; gradoID > 0 keeps that grado's only.
func (s *State) SeccionOptions(selected, gradoID int) Selector {
	opts := make([]Option, 0, len(s.Secciones))
	for _, sec := range s.Secciones {
		if gradoID != 0 && sec.GradoID != gradoID {
			continue
		}
		opts = append(opts, Option{Value: sec.ID, Label: s.SeccionLabel(sec), Selected: sec.ID == selected})
	}
	return Selector{Options: opts, Err: firstErr(s.Err(Secciones), s.Err(Grados))}
}

// PeriodoOptions lists periods; with nothing selected the active one is preselected.
func (s *State) PeriodoOptions(selected int) Selector {
	if selected == 0 {
		if p, ok := s.PeriodoActivo(); ok {
			selected = p.ID
		}
	}
	opts := make([]Option, 0, len(s.Periodos))
	for _, p := range s.Periodos {
		label := p.Nombre
		if p.Activo {
			label += " (activo)"
		}
		opts = append(opts, Option{Value: p.ID, Label: label, Selected: p.ID == selected})
	}
	return Selector{Options: opts, Err: s.Err(Periodos)}
}

// ClaseOptions lists the given classes, or all loaded classes when none are given.
func (s *State) ClaseOptions(selected int, clases ...academico.Clase) Selector {
	if clases == nil {
		clases = s.Clases
	}
	opts := make([]Option, 0, len(clases))
	for _, c := range clases {
		opts = append(opts, Option{Value: c.ID, Label: s.ClaseLabel(c), Selected: c.ID == selected})
	}
	return Selector{Options: opts, Err: firstErr(s.Err(Clases), s.Err(Cursos))}
}

func (s *State) TipoEvaluacionOptions(selected int) Selector {
	opts := make([]Option, 0, len(s.TiposEvaluacion))
	for _, te := range s.TiposEvaluacion {
		opts = append(opts, Option{Value: te.ID, Label: te.Nombre, Selected: te.ID == selected})
	}
	return Selector{Options: opts, Err: s.Err(TiposEvaluacion)}
}

// SeccionLabel returns "<grado> <seccion>", e.g. "1° Secundaria A".
func (s *State) SeccionLabel(sec academico.Seccion) string {
	if g, ok := s.Grado(sec.GradoID); ok {
		return g.Nombre + " " + sec.Nombre
	}
	return sec.Nombre
}

// ClaseLabel returns "<curso> — <grado> <seccion> (<periodo>)".
func (s *State) ClaseLabel(c academico.Clase) string {
	label := unknown(c.CursoID)
	if curso, ok := s.Curso(c.CursoID); ok {
		label = curso.Nombre
	}
	if sec, ok := s.Seccion(c.SeccionID); ok {
		label += " — " + s.SeccionLabel(sec)
	}
	if p, ok := s.Periodo(c.PeriodoID); ok {
		label += " (" + p.Nombre + ")"
	}
	return label
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
