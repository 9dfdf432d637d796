package notas

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numericRegex = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// Round1 rounds half away from zero to one decimal.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// FormatValor formats a grade with at most one decimal: 15 -> "15", 15.25 -> "15.3".
func FormatValor(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(Round1(v), 'f', 1, 64), ".0")
}

// ParseValor parses a typed numeric grade. Comma is accepted as the decimal separator.
// Only digits and one separator are allowed; the value must lie in [0, 20].
func ParseValor(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if !numericRegex.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < MinNota || v > MaxNota {
		return 0, false
	}
	return v, true
}

// MatchLiteral returns the scale value matching s, case-insensitively.
// An empty scale falls back to DefaultLiterales.
func MatchLiteral(s string, escalas []Escala) (string, bool) {
	if len(escalas) == 0 {
		escalas = DefaultLiterales
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, e := range escalas {
		if strings.ToUpper(e.Valor) == s && s != "" {
			return e.Valor, true
		}
	}
	return "", false
}
