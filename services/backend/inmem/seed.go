package inmem

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/escuela/core/academico"
	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

// Seed IDs, referenced by tests.
const (
	SeedDocenteID  = 1
	SeedAlumnoAna  = 1
	SeedAlumnoLuis = 2
	SeedAlumnoRosa = 3
)

// Seed returns a DB filled with a small school: two grades, three sections, four courses.
func Seed() *DB {
	db := Open()

	p2025 := db.AddPeriodo(academico.Periodo{Nombre: "2025"})
	p2026 := db.AddPeriodo(academico.Periodo{Nombre: "2026", Activo: true})

	g1 := db.AddGrado(academico.Grado{Nombre: "1° Secundaria"})
	g2 := db.AddGrado(academico.Grado{Nombre: "2° Secundaria"})
	s1A := db.AddSeccion(academico.Seccion{Nombre: "A", GradoID: g1.ID})
	s1B := db.AddSeccion(academico.Seccion{Nombre: "B", GradoID: g1.ID})
	s2A := db.AddSeccion(academico.Seccion{Nombre: "A", GradoID: g2.ID})

	mat := db.AddCurso(academico.Curso{Nombre: "Matemática"})
	com := db.AddCurso(academico.Curso{Nombre: "Comunicación"})
	cyt := db.AddCurso(academico.Curso{Nombre: "Ciencia y Tecnología"})
	art := db.AddCurso(academico.Curso{Nombre: "Arte y Cultura"})

	for _, sec := range []academico.Seccion{s1A, s1B, s2A} {
		for _, cu := range []academico.Curso{mat, com, cyt, art} {
			docente := 0
			if sec.ID == s1A.ID && cu.ID != art.ID {
				docente = SeedDocenteID
			}
			db.AddClase(academico.Clase{CursoID: cu.ID, SeccionID: sec.ID, PeriodoID: p2026.ID, DocenteID: docente})
		}
	}
	old := db.AddClase(academico.Clase{CursoID: mat.ID, SeccionID: s1A.ID, PeriodoID: p2025.ID})

	ana := db.AddAlumno(personas.Alumno{Nombres: "Ana María", Apellidos: "Quispe Huamán", NumeroDocumento: "71234567"})
	luis := db.AddAlumno(personas.Alumno{Nombres: "Luis", Apellidos: "Gonzáles Pérez", NumeroDocumento: "72345678"})
	rosa := db.AddAlumno(personas.Alumno{Nombres: "Rosa", Apellidos: "Mamani Flores", NumeroDocumento: "73456789"})
	db.Matricular(ana.ID, s1A.ID, p2026.ID)
	db.Matricular(luis.ID, s1A.ID, p2026.ID)
	db.Matricular(rosa.ID, s2A.ID, p2026.ID)
	db.Matricular(rosa.ID, s1A.ID, p2025.ID)

	examen := db.AddTipoEvaluacion(notas.TipoEvaluacion{Nombre: "Examen", Peso: 2})
	db.AddTipoEvaluacion(notas.TipoEvaluacion{Nombre: "Práctica", Peso: 1})
	db.AddTipoEvaluacion(notas.TipoEvaluacion{Nombre: "Exposición", Peso: 1})
	for _, e := range notas.DefaultLiterales {
		db.AddEscala(e)
	}

	// Ana: Matemática 18, 15; Comunicación 14; Arte literal
	claseDe := func(sec academico.Seccion, cu academico.Curso) int {
		for _, c := range db.clases {
			if c.SeccionID == sec.ID && c.CursoID == cu.ID && c.PeriodoID == p2026.ID {
				return c.ID
			}
		}
		return 0
	}
	numerica := func(alumnoID, claseID, cursoID int, v float64) {
		db.AddNota(notas.Nota{
			AlumnoID: alumnoID, ClaseID: claseID, CursoID: cursoID,
			ValorNumerico: null.Float64From(v), TipoEvaluacion: examen.Nombre, Peso: examen.Peso,
			FechaEvaluacion: "2026-04-15",
		})
	}
	numerica(ana.ID, claseDe(s1A, mat), mat.ID, 18)
	numerica(ana.ID, claseDe(s1A, mat), mat.ID, 15)
	numerica(ana.ID, claseDe(s1A, com), com.ID, 14)
	db.AddNota(notas.Nota{
		AlumnoID: ana.ID, ClaseID: claseDe(s1A, art), CursoID: art.ID,
		ValorLiteral: null.StringFrom("AD"), TipoEvaluacion: "Exposición", Peso: 1,
		FechaEvaluacion: "2026-04-20",
	})
	numerica(luis.ID, claseDe(s1A, mat), mat.ID, 9)
	numerica(rosa.ID, old.ID, mat.ID, 16)

	return db
}
