package gradebook

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/notas"
)

var (
	ErrInvalidGrid = errors.New("corrija las notas inválidas antes de guardar")
	ErrNothingNew  = errors.New("no hay notas nuevas para guardar")
)

// SaveFailure is a pending cell the backend did not accept.
type SaveFailure struct {
	Pending
	Err error
}

func (f SaveFailure) Error() string {
	return fmt.Sprintf("%s (columna %d): %v", f.RowKey, f.Column+1, f.Err)
}

type SaveResult struct {
	Created  []notas.Nota
	Failures []SaveFailure
}

// Saver creates the pending notas of a grid.
type Saver struct {
	Svc      notas.Service
	Validate *validator.Validate
	NowFunc  func() time.Time
}

// Save creates one Nota per pending cell of g. Creates are independent: a failure does not
// undo the previous ones and does not stop the following ones.
func (s Saver) Save(ctx context.Context, g Grid, te notas.TipoEvaluacion) (SaveResult, error) {
	var res SaveResult
	if g.Invalid() {
		return res, core.NewValidationError(ErrInvalidGrid)
	}
	pending := g.Pending()
	if len(pending) == 0 {
		return res, core.NewValidationError(ErrNothingNew)
	}

	now := time.Now
	if s.NowFunc != nil {
		now = s.NowFunc
	}
	for _, p := range pending {
		nn := notas.NewNuevaNota(g.AlumnoID, p.ClaseID, p.Tipo, p.Valor, te, now())
		if p.ClaseID == 0 {
			nn.CursoID = p.CursoID
		}
		if err := nn.Validate(s.Validate, g.Escalas); err != nil {
			res.Failures = append(res.Failures, SaveFailure{Pending: p, Err: err})
			continue
		}
		n, err := s.Svc.CreateNota(ctx, nn)
		if err != nil {
			if ctx.Err() != nil {
				return res, errors.Wrap(err, "creating nota")
			}
			res.Failures = append(res.Failures, SaveFailure{Pending: p, Err: err})
			continue
		}
		res.Created = append(res.Created, n)
	}
	return res, nil
}

// Retry returns the buffer to re-render g with once the created notas are reloaded: created values
// become saved cells, failed values stay pending right after them.
func (res SaveResult) Retry(g Grid) Buffer {
	buf := g.Buffer()
	failed := make(map[string][]string, len(res.Failures))
	for _, f := range res.Failures {
		failed[f.RowKey] = append(failed[f.RowKey], f.Valor)
	}
	pending := make(map[string]int, len(g.Rows))
	for _, p := range g.Pending() {
		pending[p.RowKey]++
	}

	for _, r := range g.Rows {
		saved := 0
		for _, c := range r.Cells {
			if c.Saved {
				saved++
			}
		}
		saved += pending[r.Key] - len(failed[r.Key])

		vals := make([]string, saved, saved+len(failed[r.Key]))
		vals = append(vals, failed[r.Key]...)
		buf.Values[r.Key] = vals
		buf.Committed[r.Key] = append([]string(nil), vals...)
	}
	return buf
}
