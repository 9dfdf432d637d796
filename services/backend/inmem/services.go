package inmem

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/academico"
	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

var ErrDocumentoExists = errors.New("ya existe un registro con este número de documento")

type personasService struct{ db *DB }

var _ personas.Service = (*personasService)(nil)

func NewPersonasService(db *DB) personas.Service { return &personasService{db: db} }

func (svc *personasService) ListAlumnos(ctx context.Context) ([]personas.Alumno, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListAlumnos"); err != nil {
		return nil, err
	}
	alumnos := make([]personas.Alumno, 0, len(svc.db.alumnos))
	for _, a := range svc.db.alumnos {
		alumnos = append(alumnos, svc.db.withCursos(a))
	}
	return alumnos, nil
}

func (svc *personasService) ListMatriculas(ctx context.Context) ([]personas.Matricula, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListMatriculas"); err != nil {
		return nil, err
	}
	return append([]personas.Matricula{}, svc.db.matriculas...), nil
}

func (svc *personasService) CreatePadre(ctx context.Context, np personas.NuevoPadre) (personas.Padre, error) {
	svc.db.mutex.Lock()
	defer svc.db.mutex.Unlock()
	if err := svc.db.failure("CreatePadre"); err != nil {
		return personas.Padre{}, err
	}

	for _, p := range svc.db.padres {
		if p.NumeroDocumento == np.NumeroDocumento {
			return personas.Padre{}, core.NewValidationError(nil, core.FieldError{
				Field: "numero_documento",
				Error: ErrDocumentoExists.Error(),
			})
		}
	}
	for _, id := range np.AlumnoIDs {
		if !svc.db.hasAlumno(id) {
			return personas.Padre{}, core.NewValidationError(nil, core.FieldError{
				Field: "alumno_ids",
				Error: "alumno no encontrado",
			})
		}
	}

	padre := personas.Padre{
		ID:              svc.db.nextPK("padres"),
		Nombres:         np.Nombres,
		Apellidos:       np.Apellidos,
		NumeroDocumento: np.NumeroDocumento,
		Email:           np.Email,
		Telefono:        np.Telefono,
		Parentesco:      np.Parentesco,
		AlumnoIDs:       append([]int(nil), np.AlumnoIDs...),
	}
	svc.db.padres = append(svc.db.padres, padre)
	return padre, nil
}

func (svc *personasService) GetAlumnosPorClase(ctx context.Context, claseID int) ([]personas.Alumno, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("GetAlumnosPorClase"); err != nil {
		return nil, err
	}
	if _, ok := svc.db.clase(claseID); !ok {
		return nil, core.ErrNotFound
	}
	alumnos := []personas.Alumno{}
	for _, a := range svc.db.alumnos {
		if a = svc.db.withCursos(a); hasClase(a, claseID) {
			alumnos = append(alumnos, a)
		}
	}
	return alumnos, nil
}

type academicoService struct{ db *DB }

var _ academico.Service = (*academicoService)(nil)

func NewAcademicoService(db *DB) academico.Service { return &academicoService{db: db} }

func (svc *academicoService) ListCursos(ctx context.Context) ([]academico.Curso, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListCursos"); err != nil {
		return nil, err
	}
	return append([]academico.Curso{}, svc.db.cursos...), nil
}

func (svc *academicoService) ListSecciones(ctx context.Context) ([]academico.Seccion, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListSecciones"); err != nil {
		return nil, err
	}
	return append([]academico.Seccion{}, svc.db.secciones...), nil
}

func (svc *academicoService) ListGrados(ctx context.Context) ([]academico.Grado, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListGrados"); err != nil {
		return nil, err
	}
	return append([]academico.Grado{}, svc.db.grados...), nil
}

func (svc *academicoService) ListPeriodos(ctx context.Context) ([]academico.Periodo, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListPeriodos"); err != nil {
		return nil, err
	}
	return append([]academico.Periodo{}, svc.db.periodos...), nil
}

func (svc *academicoService) ListClases(ctx context.Context) ([]academico.Clase, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListClases"); err != nil {
		return nil, err
	}
	return append([]academico.Clase{}, svc.db.clases...), nil
}

func (svc *academicoService) GetClasesDocente(ctx context.Context, docenteID int) ([]academico.Clase, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("GetClasesDocente"); err != nil {
		return nil, err
	}
	clases := []academico.Clase{}
	for _, c := range svc.db.clases {
		if c.DocenteID == docenteID {
			clases = append(clases, c)
		}
	}
	return clases, nil
}

type notasService struct{ db *DB }

var _ notas.Service = (*notasService)(nil)

func NewNotasService(db *DB) notas.Service { return &notasService{db: db} }

func (svc *notasService) ListNotas(ctx context.Context, filter notas.Filter) ([]notas.Nota, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListNotas"); err != nil {
		return nil, err
	}
	ns := []notas.Nota{}
	for _, n := range svc.db.notas {
		if filter.AlumnoID != 0 && n.AlumnoID != filter.AlumnoID {
			continue
		}
		if filter.ClaseID != 0 && n.ClaseID != filter.ClaseID {
			continue
		}
		ns = append(ns, n)
	}
	return ns, nil
}

func (svc *notasService) CreateNota(ctx context.Context, nn notas.NuevaNota) (notas.Nota, error) {
	svc.db.mutex.Lock()
	defer svc.db.mutex.Unlock()
	if err := svc.db.failure("CreateNota"); err != nil {
		return notas.Nota{}, err
	}
	if !svc.db.hasAlumno(nn.AlumnoID) {
		return notas.Nota{}, errors.Wrap(core.ErrNotFound, "alumno")
	}
	cursoID := nn.CursoID
	if nn.ClaseID != 0 {
		c, ok := svc.db.clase(nn.ClaseID)
		if !ok {
			return notas.Nota{}, errors.Wrap(core.ErrNotFound, "clase")
		}
		cursoID = c.CursoID
	}

	n := notas.Nota{
		ID:              svc.db.nextPK("notas"),
		AlumnoID:        nn.AlumnoID,
		ClaseID:         nn.ClaseID,
		CursoID:         cursoID,
		ValorNumerico:   nn.ValorNumerico,
		ValorLiteral:    nn.ValorLiteral,
		TipoEvaluacion:  nn.TipoEvaluacion,
		Peso:            nn.Peso,
		FechaEvaluacion: nn.FechaEvaluacion,
		Observaciones:   nn.Observaciones,
	}
	svc.db.notas = append(svc.db.notas, n)
	return n, nil
}

func (svc *notasService) ListTiposEvaluacion(ctx context.Context) ([]notas.TipoEvaluacion, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListTiposEvaluacion"); err != nil {
		return nil, err
	}
	return append([]notas.TipoEvaluacion{}, svc.db.tipos...), nil
}

func (svc *notasService) ListEscalas(ctx context.Context) ([]notas.Escala, error) {
	svc.db.mutex.RLock()
	defer svc.db.mutex.RUnlock()
	if err := svc.db.failure("ListEscalas"); err != nil {
		return nil, err
	}
	return append([]notas.Escala{}, svc.db.escalas...), nil
}

func (svc *notasService) GetNotasAlumno(ctx context.Context, alumnoID int) ([]notas.Nota, error) {
	return svc.ListNotas(ctx, notas.Filter{AlumnoID: alumnoID})
}

// helpers; callers hold the lock

func (db *DB) withCursos(a personas.Alumno) personas.Alumno {
	a.Cursos = []personas.AlumnoCurso{}
	for _, m := range db.matriculas {
		if m.AlumnoID != a.ID {
			continue
		}
		for _, c := range db.clases {
			if c.SeccionID != m.SeccionID || c.PeriodoID != m.PeriodoID {
				continue
			}
			ac := personas.AlumnoCurso{
				ClaseID:   c.ID,
				CursoID:   c.CursoID,
				SeccionID: c.SeccionID,
				PeriodoID: c.PeriodoID,
			}
			for _, cu := range db.cursos {
				if cu.ID == c.CursoID {
					ac.CursoNombre = cu.Nombre
					break
				}
			}
			a.Cursos = append(a.Cursos, ac)
		}
	}
	return a
}

func (db *DB) hasAlumno(id int) bool {
	for _, a := range db.alumnos {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (db *DB) clase(id int) (academico.Clase, bool) {
	for _, c := range db.clases {
		if c.ID == id {
			return c, true
		}
	}
	return academico.Clase{}, false
}

func hasClase(a personas.Alumno, claseID int) bool {
	_, ok := a.Curso(claseID)
	return ok
}
