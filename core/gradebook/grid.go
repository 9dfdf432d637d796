package gradebook

import (
	"strconv"

	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

// Mode tells which rows a grid holds.
type Mode string

const (
	// ModeIndividual holds one course (Clase) of one Alumno.
	ModeIndividual Mode = "individual"
	// ModeMulticurso holds every course of one Alumno.
	ModeMulticurso Mode = "multicurso"
)

// MaxColumns bounds the columns of a grid. Only rows with more saved notas go past it.
const MaxColumns = 20

// User notices
const (
	NoticeMinColumns  = "Debe quedar al menos una columna de notas."
	NoticeSavedColumn = "No se puede quitar una columna que contiene notas registradas."
	NoticeMaxColumns  = "Se alcanzó el máximo de columnas de notas."
	NoticeInvalid     = "Hay notas inválidas: se restauró el último valor válido."
)

// RowSpec describes a row before it is filled: one course-class.
type RowSpec struct {
	Key     string     `json:"key"`
	ClaseID int        `json:"clase_id"`
	CursoID int        `json:"curso_id"`
	Label   string     `json:"label"`
	Tipo    notas.Tipo `json:"tipo,omitempty"` // preferred type when nothing is saved yet
}

// RowKey identifies the row of a Clase in forms and buffers.
func RowKey(claseID int) string { return "c" + strconv.Itoa(claseID) }

// RowsForAlumno returns one RowSpec per course of the Alumno, or only the course of claseID when it is set.
func RowsForAlumno(a personas.Alumno, claseID int) []RowSpec {
	rows := make([]RowSpec, 0, len(a.Cursos))
	for _, c := range a.Cursos {
		if claseID != 0 && c.ClaseID != claseID {
			continue
		}
		rows = append(rows, RowSpec{
			Key:     RowKey(c.ClaseID),
			ClaseID: c.ClaseID,
			CursoID: c.CursoID,
			Label:   c.CursoNombre,
		})
	}
	return rows
}

type Row struct {
	RowSpec
	Locked  bool    `json:"locked"` // saved notas exist: Tipo cannot change
	Cells   []Cell  `json:"cells"`
	Average Average `json:"average"`
	Summary string  `json:"summary"` // average, or the latest literal of literal rows
	Status  string  `json:"status"`
}

// Values returns the displayed value of every cell.
func (r Row) Values() []string {
	vals := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		vals[i] = c.Value
	}
	return vals
}

func (r Row) summarize() Row {
	if r.Tipo == notas.TipoLiteral {
		r.Average = Average{}
		r.Summary = Placeholder
		for i := len(r.Cells) - 1; i >= 0; i-- {
			if r.Cells[i].Value != "" {
				r.Summary = r.Cells[i].Value
				break
			}
		}
		r.Status = StatusNone
		return r
	}
	r.Average = CourseAverage(r.Values())
	r.Summary = r.Average.String()
	r.Status = r.Average.Status()
	return r
}

// View holds the two mutually exclusive density toggles.
type View struct {
	Compact  bool `json:"compact"`
	Extended bool `json:"extended"`
}

// ToggleCompact flips compact; turning it on turns extended off.
func (v View) ToggleCompact() View {
	v.Compact = !v.Compact
	if v.Compact {
		v.Extended = false
	}
	return v
}

// ToggleExtended flips extended; turning it on turns compact off.
func (v View) ToggleExtended() View {
	v.Extended = !v.Extended
	if v.Extended {
		v.Compact = false
	}
	return v
}

// Grid is the rendered gradebook: rows are courses, columns are evaluation slots.
type Grid struct {
	AlumnoID int            `json:"alumno_id"`
	Mode     Mode           `json:"mode"`
	Columns  int            `json:"columns"`
	View     View           `json:"view"`
	Rows     []Row          `json:"rows"`
	Overall  Overall        `json:"overall"`
	Notices  []string       `json:"notices,omitempty"`
	Escalas  []notas.Escala `json:"escalas"`
}

// Invalid reports whether any cell was rejected during the last reduction.
func (g Grid) Invalid() bool {
	for _, r := range g.Rows {
		for _, c := range r.Cells {
			if c.Invalid {
				return true
			}
		}
	}
	return false
}

// ColumnNumbers returns 1..Columns, for headers.
func (g Grid) ColumnNumbers() []int {
	nums := make([]int, g.Columns)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// Buffer captures the grid's in-progress state so that the next render can restore it.
func (g Grid) Buffer() Buffer {
	buf := Buffer{
		Columns:   g.Columns,
		View:      g.View,
		Values:    make(map[string][]string, len(g.Rows)),
		Committed: make(map[string][]string, len(g.Rows)),
		Tipos:     make(map[string]notas.Tipo, len(g.Rows)),
	}
	for _, r := range g.Rows {
		vals := r.Values()
		buf.Values[r.Key] = vals
		buf.Committed[r.Key] = append([]string(nil), vals...)
		if !r.Locked {
			buf.Tipos[r.Key] = r.Tipo
		}
	}
	return buf
}

// Pending is an unsaved, non-blank cell.
type Pending struct {
	RowKey  string
	ClaseID int
	CursoID int
	Column  int
	Tipo    notas.Tipo
	Valor   string
}

// Pending lists the cells to create on save, row by row.
func (g Grid) Pending() []Pending {
	var pending []Pending
	for _, r := range g.Rows {
		for i, c := range r.Cells {
			if c.Saved || c.Value == "" {
				continue
			}
			pending = append(pending, Pending{
				RowKey:  r.Key,
				ClaseID: r.ClaseID,
				CursoID: r.CursoID,
				Column:  i,
				Tipo:    r.Tipo,
				Valor:   c.Value,
			})
		}
	}
	return pending
}
