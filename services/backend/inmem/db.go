// Package inmem serves the school services from memory, for local development and tests.
package inmem

import (
	"sync"

	"github.com/trezcool/escuela/core/academico"
	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

// DB holds every table behind one lock.
type DB struct {
	mutex sync.RWMutex

	cursos     []academico.Curso
	grados     []academico.Grado
	secciones  []academico.Seccion
	periodos   []academico.Periodo
	clases     []academico.Clase
	alumnos    []personas.Alumno // Cursos is derived from matriculas on read
	matriculas []personas.Matricula
	padres     []personas.Padre
	notas      []notas.Nota
	tipos      []notas.TipoEvaluacion
	escalas    []notas.Escala

	pk       map[string]int
	failures map[string]error
}

// Open returns an empty DB.
func Open() *DB {
	return &DB{
		pk:       make(map[string]int),
		failures: make(map[string]error),
	}
}

// FailOn makes the named operation (e.g. "ListCursos") return err until cleared with a nil err.
func (db *DB) FailOn(op string, err error) {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	if err == nil {
		delete(db.failures, op)
		return
	}
	db.failures[op] = err
}

func (db *DB) failure(op string) error {
	return db.failures[op]
}

func (db *DB) nextPK(table string) int {
	db.pk[table]++
	return db.pk[table]
}

// Services returns the three services backed by db.
func (db *DB) Services() catalog.Services {
	return catalog.Services{
		Personas:  NewPersonasService(db),
		Academico: NewAcademicoService(db),
		Notas:     NewNotasService(db),
	}
}

// Insert helpers assign IDs when zero. They are meant for seeding.

func (db *DB) AddCurso(c academico.Curso) academico.Curso {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	c.ID = db.id("cursos", c.ID)
	db.cursos = append(db.cursos, c)
	return c
}

func (db *DB) AddGrado(g academico.Grado) academico.Grado {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	g.ID = db.id("grados", g.ID)
	db.grados = append(db.grados, g)
	return g
}

func (db *DB) AddSeccion(s academico.Seccion) academico.Seccion {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	s.ID = db.id("secciones", s.ID)
	db.secciones = append(db.secciones, s)
	return s
}

func (db *DB) AddPeriodo(p academico.Periodo) academico.Periodo {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	p.ID = db.id("periodos", p.ID)
	db.periodos = append(db.periodos, p)
	return p
}

func (db *DB) AddClase(c academico.Clase) academico.Clase {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	c.ID = db.id("clases", c.ID)
	db.clases = append(db.clases, c)
	return c
}

func (db *DB) AddAlumno(a personas.Alumno) personas.Alumno {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	a.ID = db.id("alumnos", a.ID)
	a.Cursos = nil
	db.alumnos = append(db.alumnos, a)
	return a
}

// Matricular enrolls the Alumno in a Seccion for a Periodo: it attends every Clase given there.
func (db *DB) Matricular(alumnoID, seccionID, periodoID int) personas.Matricula {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	m := personas.Matricula{
		ID:        db.nextPK("matriculas"),
		AlumnoID:  alumnoID,
		SeccionID: seccionID,
		PeriodoID: periodoID,
		Estado:    "activa",
	}
	db.matriculas = append(db.matriculas, m)
	return m
}

func (db *DB) AddTipoEvaluacion(te notas.TipoEvaluacion) notas.TipoEvaluacion {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	te.ID = db.id("tipos", te.ID)
	db.tipos = append(db.tipos, te)
	return te
}

func (db *DB) AddEscala(e notas.Escala) notas.Escala {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	e.ID = db.id("escalas", e.ID)
	db.escalas = append(db.escalas, e)
	return e
}

func (db *DB) AddNota(n notas.Nota) notas.Nota {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	n.ID = db.id("notas", n.ID)
	db.notas = append(db.notas, n)
	return n
}

// Padres returns the registered Padres.
func (db *DB) Padres() []personas.Padre {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return append([]personas.Padre(nil), db.padres...)
}

func (db *DB) id(table string, id int) int {
	if id == 0 {
		return db.nextPK(table)
	}
	if id > db.pk[table] {
		db.pk[table] = id
	}
	return id
}
