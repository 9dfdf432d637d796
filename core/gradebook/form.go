package gradebook

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/trezcool/escuela/core/notas"
)

// Form field names of the grid.
const (
	FieldColumns   = "columnas"
	FieldCompact   = "compacta"
	FieldExtended  = "extendida"
	FieldAction    = "accion"
	FieldTipo      = "tipo."   // + row key
	FieldValue     = "nota."   // + row key + "." + column
	FieldCommitted = "previo." // + row key + "." + column

	ActionSave = "guardar"
)

// ValueField names the input of a cell: "nota.c12.0".
func ValueField(key string, col int) string { return FieldValue + key + "." + strconv.Itoa(col) }

// CommittedField names the hidden input holding the last accepted value of a cell.
func CommittedField(key string, col int) string {
	return FieldCommitted + key + "." + strconv.Itoa(col)
}

// TipoField names the grading type input of a row.
func TipoField(key string) string { return FieldTipo + key }

// TipoAction is the action value switching a row to tipo: "tipo:c12:literal".
func TipoAction(key string, tipo notas.Tipo) string {
	return string(ChangeSetTipo) + ":" + key + ":" + string(tipo)
}

// BufferFromForm reads the buffered grid state posted by the page.
func BufferFromForm(form url.Values) Buffer {
	buf := Buffer{
		Values:    make(map[string][]string),
		Committed: make(map[string][]string),
		Tipos:     make(map[string]notas.Tipo),
	}
	buf.Columns, _ = strconv.Atoi(form.Get(FieldColumns))
	if buf.Columns > MaxColumns {
		buf.Columns = MaxColumns
	}
	buf.View.Compact = isChecked(form.Get(FieldCompact))
	buf.View.Extended = isChecked(form.Get(FieldExtended)) && !buf.View.Compact

	for name, vals := range form {
		if len(vals) == 0 {
			continue
		}
		switch {
		case strings.HasPrefix(name, FieldTipo):
			if tipo := notas.Tipo(vals[0]); tipo.Valid() {
				buf.Tipos[strings.TrimPrefix(name, FieldTipo)] = tipo
			}
		case strings.HasPrefix(name, FieldValue):
			if key, col, ok := splitCellField(strings.TrimPrefix(name, FieldValue)); ok {
				buf.Values[key] = setAt(buf.Values[key], col, vals[0])
			}
		case strings.HasPrefix(name, FieldCommitted):
			if key, col, ok := splitCellField(strings.TrimPrefix(name, FieldCommitted)); ok {
				buf.Committed[key] = setAt(buf.Committed[key], col, vals[0])
			}
		}
	}
	return buf
}

// ChangeFromForm reads the requested action. save is true for ActionSave.
func ChangeFromForm(form url.Values) (ch Change, save bool) {
	action := form.Get(FieldAction)
	if action == ActionSave {
		return Change{}, true
	}
	if strings.HasPrefix(action, string(ChangeSetTipo)+":") {
		parts := strings.SplitN(action, ":", 3)
		if len(parts) == 3 {
			return Change{Kind: ChangeSetTipo, RowKey: parts[1], Tipo: notas.Tipo(parts[2])}, false
		}
		return Change{}, false
	}
	if kind := ChangeKind(action); kind.Valid() && kind != ChangeSetTipo {
		return Change{Kind: kind}, false
	}
	return Change{}, false
}

func splitCellField(s string) (key string, col int, ok bool) {
	i := strings.LastIndexByte(s, '.')
	if i <= 0 {
		return "", 0, false
	}
	col, err := strconv.Atoi(s[i+1:])
	if err != nil || col < 0 || col >= MaxColumns {
		return "", 0, false
	}
	return s[:i], col, true
}

func setAt(vals []string, i int, v string) []string {
	for len(vals) <= i {
		vals = append(vals, "")
	}
	vals[i] = v
	return vals
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "1", "on", "true", "si":
		return true
	}
	return false
}
