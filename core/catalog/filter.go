package catalog

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/personas"
)

// fuzzyMinRatio is the lowest similarity at which a search word matches a name word.
const fuzzyMinRatio = .8

// FilterAlumnos applies the AND of the filter fields to the loaded Alumnos, keeping their order.
// Grado is resolved through the sections of the Alumno's courses.
func (s *State) FilterAlumnos(f personas.AlumnoFilter) []personas.Alumno {
	return FilterAlumnos(s.Alumnos, s.gradoBySeccion(), f)
}

func (s *State) gradoBySeccion() map[int]int {
	m := make(map[int]int, len(s.Secciones))
	for _, sec := range s.Secciones {
		m[sec.ID] = sec.GradoID
	}
	return m
}

// FilterAlumnos filters alumnos; gradoBySeccion maps Seccion IDs to Grado IDs.
func FilterAlumnos(alumnos []personas.Alumno, gradoBySeccion map[int]int, f personas.AlumnoFilter) []personas.Alumno {
	f.Clean()
	res := make([]personas.Alumno, 0, len(alumnos))
	if f.IsEmpty() {
		return append(res, alumnos...)
	}

	words := strings.Fields(core.FoldString(f.Search))
	for _, a := range alumnos {
		if f.ClaseID != 0 && !hasCurso(a, func(c personas.AlumnoCurso) bool { return c.ClaseID == f.ClaseID }) {
			continue
		}
		if f.SeccionID != 0 && !hasCurso(a, func(c personas.AlumnoCurso) bool { return c.SeccionID == f.SeccionID }) {
			continue
		}
		if f.GradoID != 0 && !hasCurso(a, func(c personas.AlumnoCurso) bool { return gradoBySeccion[c.SeccionID] == f.GradoID }) {
			continue
		}
		if len(words) > 0 && !MatchSearch(a, words) {
			continue
		}
		res = append(res, a)
	}
	return res
}

func hasCurso(a personas.Alumno, match func(personas.AlumnoCurso) bool) bool {
	for _, c := range a.Cursos {
		if match(c) {
			return true
		}
	}
	return false
}

// MatchSearch reports whether every folded search word appears in the Alumno's names or
// document number, exactly as a substring or approximately as a whole word.
func MatchSearch(a personas.Alumno, words []string) bool {
	haystack := core.FoldString(a.Nombres + " " + a.Apellidos + " " + a.NumeroDocumento)
	tokens := strings.Fields(haystack)
	for _, w := range words {
		if strings.Contains(haystack, w) {
			continue
		}
		if !fuzzyContains(tokens, w) {
			return false
		}
	}
	return true
}

func fuzzyContains(tokens []string, word string) bool {
	wordChars := strings.Split(word, "")
	for _, tok := range tokens {
		m := difflib.NewMatcher(wordChars, strings.Split(tok, ""))
		if m.QuickRatio() < fuzzyMinRatio {
			continue
		}
		if m.Ratio() >= fuzzyMinRatio {
			return true
		}
	}
	return false
}
