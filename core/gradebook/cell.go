package gradebook

import (
	"strings"

	"github.com/trezcool/escuela/core/notas"
)

// Cell is one evaluation slot of a row.
type Cell struct {
	NotaID  int    `json:"nota_id,omitempty"`
	Value   string `json:"value"`
	Saved   bool   `json:"saved"`
	Invalid bool   `json:"invalid"`
}

// ValidateNumeric checks a typed numeric grade.
// Blank input clears the cell. Accepted input is normalized to at most one decimal ("15.0" -> "15").
// Rejected input reverts to committed and ok is false.
func ValidateNumeric(raw, committed string) (value string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	v, ok := notas.ParseValor(raw)
	if !ok {
		return committed, false
	}
	return notas.FormatValor(v), true
}

// ValidateLiteral checks a typed literal grade against the scale.
func ValidateLiteral(raw, committed string, escalas []notas.Escala) (value string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	v, ok := notas.MatchLiteral(raw, escalas)
	if !ok {
		return committed, false
	}
	return v, true
}

func validateCell(tipo notas.Tipo, raw, committed string, escalas []notas.Escala) (string, bool) {
	if tipo == notas.TipoLiteral {
		return ValidateLiteral(raw, committed, escalas)
	}
	return ValidateNumeric(raw, committed)
}
