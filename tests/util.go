package testutil

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/personas"
	"github.com/trezcool/escuela/services/backend/inmem"
	logsvc "github.com/trezcool/escuela/services/logger"
)

// Logger returns a core.Logger that discards its output.
func Logger() core.Logger {
	return logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), core.NewTestConfig())
}

// Backend returns a freshly seeded in-memory backend.
func Backend(t *testing.T) *inmem.DB {
	t.Helper()
	return inmem.Seed()
}

// CreateAlumno adds an Alumno enrolled in the Seccion for the Periodo.
func CreateAlumno(t *testing.T, db *inmem.DB, nombres, apellidos, dni string, seccionID, periodoID int) personas.Alumno {
	t.Helper()
	a := db.AddAlumno(personas.Alumno{Nombres: nombres, Apellidos: apellidos, NumeroDocumento: dni})
	db.Matricular(a.ID, seccionID, periodoID)
	return a
}
