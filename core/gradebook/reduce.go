package gradebook

import (
	"github.com/trezcool/escuela/core/notas"
)

// Buffer is the unsaved grid state carried between renders.
// Values and Committed are indexed by row key, then column.
type Buffer struct {
	Columns   int                   `json:"columns"`
	View      View                  `json:"view"`
	Values    map[string][]string   `json:"values,omitempty"`    // as typed
	Committed map[string][]string   `json:"committed,omitempty"` // last accepted value of each cell
	Tipos     map[string]notas.Tipo `json:"tipos,omitempty"`
}

func (b Buffer) value(key string, col int) string {
	if vals := b.Values[key]; col < len(vals) {
		return vals[col]
	}
	return ""
}

func (b Buffer) committed(key string, col int) string {
	if vals := b.Committed[key]; col < len(vals) {
		return vals[col]
	}
	return ""
}

// ChangeKind is a structural change applied before re-rendering.
type ChangeKind string

const (
	ChangeNone           ChangeKind = ""
	ChangeAddColumn      ChangeKind = "agregar_columna"
	ChangeRemoveColumn   ChangeKind = "quitar_columna"
	ChangeToggleCompact  ChangeKind = "compacta"
	ChangeToggleExtended ChangeKind = "extendida"
	ChangeSetTipo        ChangeKind = "tipo"
)

func (k ChangeKind) Valid() bool {
	switch k {
	case ChangeNone, ChangeAddColumn, ChangeRemoveColumn, ChangeToggleCompact, ChangeToggleExtended, ChangeSetTipo:
		return true
	}
	return false
}

type Change struct {
	Kind   ChangeKind `json:"kind"`
	RowKey string     `json:"row_key,omitempty"` // ChangeSetTipo only
	Tipo   notas.Tipo `json:"tipo,omitempty"`    // ChangeSetTipo only
}

// Input is what the backend knows about the grid.
type Input struct {
	AlumnoID int
	Mode     Mode
	Rows     []RowSpec
	Loaded   []notas.Nota // saved notas of the Alumno; notas of other rows are ignored
	Escalas  []notas.Escala
}

// Reduce renders the grid from the saved notas merged with the buffered edits after applying ch.
// Saved notas always occupy the first cells of their row. Buffered values fill the rest and are
// validated again; rejected ones revert to their committed value and are flagged.
func Reduce(in Input, buf Buffer, ch Change) Grid {
	escalas := in.Escalas
	if len(escalas) == 0 {
		escalas = notas.DefaultLiterales
	}
	g := Grid{
		AlumnoID: in.AlumnoID,
		Mode:     in.Mode,
		View:     buf.View,
		Escalas:  escalas,
	}

	saved := groupByRow(in.Rows, in.Loaded)

	// grading type per row; saved notas lock it
	tipos := make([]notas.Tipo, len(in.Rows))
	minCols := 1
	for i, spec := range in.Rows {
		s := saved[spec.Key]
		switch {
		case len(s) > 0:
			tipos[i] = s[0].Tipo()
		case buf.Tipos[spec.Key].Valid():
			tipos[i] = buf.Tipos[spec.Key]
		case spec.Tipo.Valid():
			tipos[i] = spec.Tipo
		default:
			tipos[i] = notas.TipoNumerico
		}
		if len(s) > minCols {
			minCols = len(s)
		}
	}

	maxCols := MaxColumns
	if minCols > maxCols {
		maxCols = minCols
	}
	cols := buf.Columns
	if cols < minCols {
		cols = minCols
	}
	if cols > maxCols {
		cols = maxCols
	}
	cleared := make(map[string]bool)

	switch ch.Kind {
	case ChangeAddColumn:
		if cols >= maxCols {
			g.Notices = append(g.Notices, NoticeMaxColumns)
		} else {
			cols++
		}
	case ChangeRemoveColumn:
		switch {
		case cols <= 1:
			g.Notices = append(g.Notices, NoticeMinColumns)
		case cols <= minCols:
			g.Notices = append(g.Notices, NoticeSavedColumn)
		default:
			cols-- // the values buffered in the dropped column are discarded below
		}
	case ChangeToggleCompact:
		g.View = g.View.ToggleCompact()
	case ChangeToggleExtended:
		g.View = g.View.ToggleExtended()
	case ChangeSetTipo:
		for i, spec := range in.Rows {
			if spec.Key != ch.RowKey || !ch.Tipo.Valid() || tipos[i] == ch.Tipo {
				continue
			}
			if len(saved[spec.Key]) > 0 {
				g.Notices = append(g.Notices, notas.ErrTipoBloqueado.Error())
				continue
			}
			tipos[i] = ch.Tipo
			cleared[spec.Key] = true
		}
	}
	g.Columns = cols

	g.Rows = make([]Row, 0, len(in.Rows))
	averages := make([]Average, 0, len(in.Rows))
	var invalid bool
	for i, spec := range in.Rows {
		s := saved[spec.Key]
		row := Row{RowSpec: spec, Locked: len(s) > 0}
		row.Tipo = tipos[i]
		row.Cells = make([]Cell, cols)
		for col := range row.Cells {
			if col < len(s) {
				row.Cells[col] = Cell{NotaID: s[col].ID, Value: s[col].Valor(), Saved: true}
				continue
			}
			if cleared[spec.Key] {
				continue
			}
			val, ok := validateCell(row.Tipo, buf.value(spec.Key, col), "", escalas)
			if !ok {
				invalid = true
				// revert; the committed value may predate a type change
				if val, ok = validateCell(row.Tipo, buf.committed(spec.Key, col), "", escalas); !ok {
					val = ""
				}
				row.Cells[col] = Cell{Value: val, Invalid: true}
				continue
			}
			row.Cells[col] = Cell{Value: val}
		}
		row = row.summarize()
		if row.Tipo == notas.TipoNumerico {
			averages = append(averages, row.Average)
		}
		g.Rows = append(g.Rows, row)
	}
	g.Overall = OverallAverage(averages)
	if invalid {
		g.Notices = append(g.Notices, NoticeInvalid)
	}
	return g
}

// groupByRow assigns saved notas to rows by Clase, falling back to Curso for notas without one.
// Arrival order is kept.
func groupByRow(rows []RowSpec, loaded []notas.Nota) map[string][]notas.Nota {
	byClase := make(map[int]string, len(rows))
	byCurso := make(map[int]string, len(rows))
	for _, r := range rows {
		byClase[r.ClaseID] = r.Key
		if _, ok := byCurso[r.CursoID]; !ok && r.CursoID != 0 {
			byCurso[r.CursoID] = r.Key
		}
	}

	grouped := make(map[string][]notas.Nota, len(rows))
	for _, n := range loaded {
		key, ok := "", false
		if n.ClaseID != 0 {
			key, ok = byClase[n.ClaseID]
		} else if n.CursoID != 0 {
			key, ok = byCurso[n.CursoID]
		}
		if ok {
			grouped[key] = append(grouped[key], n)
		}
	}
	return grouped
}
