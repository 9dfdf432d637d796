package gradebook

import (
	"strconv"

	"github.com/trezcool/escuela/core/notas"
)

// Placeholder is displayed instead of an average when there is nothing to average.
const Placeholder = "-"

// PassMark is the lowest passing average on the 0-20 scale.
const PassMark = 11.0

// Status styles
const (
	StatusNone    = ""
	StatusSuccess = "success"
	StatusDanger  = "danger"
)

// Average is the arithmetic mean of Count values.
type Average struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

func (a Average) Empty() bool { return a.Count == 0 }

// Status returns the styling of the displayed average: passing, failing or none when empty.
func (a Average) Status() string { return status(a, notas.Round1(a.Value)) }

func status(a Average, displayed float64) string {
	if a.Empty() {
		return StatusNone
	}
	if displayed >= PassMark {
		return StatusSuccess
	}
	return StatusDanger
}

// String formats a course average with one decimal, or Placeholder.
func (a Average) String() string {
	if a.Empty() {
		return Placeholder
	}
	return strconv.FormatFloat(notas.Round1(a.Value), 'f', 1, 64)
}

// Overall is the mean of course averages.
type Overall struct {
	Average
}

// Status styles the overall average as displayed, with two decimals.
func (o Overall) Status() string { return status(o.Average, notas.Round2(o.Value)) }

// String formats the overall average with two decimals, or Placeholder.
func (o Overall) String() string {
	if o.Empty() {
		return Placeholder
	}
	return strconv.FormatFloat(notas.Round2(o.Value), 'f', 2, 64)
}

// CourseAverage averages the numeric values of a course row. Blank and non-numeric entries are ignored.
func CourseAverage(values []string) Average {
	var sum float64
	var n int
	for _, s := range values {
		if v, ok := notas.ParseValor(s); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return Average{}
	}
	return Average{Value: sum / float64(n), Count: n}
}

// OverallAverage is the mean of the displayed (one decimal) course averages.
// Courses without graded entries are left out.
func OverallAverage(courses []Average) Overall {
	var sum float64
	var n int
	for _, c := range courses {
		if c.Empty() {
			continue
		}
		sum += notas.Round1(c.Value)
		n++
	}
	if n == 0 {
		return Overall{}
	}
	return Overall{Average{Value: sum / float64(n), Count: n}}
}
