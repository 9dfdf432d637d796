package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/core/notas"
)

func (cli *commandLine) nota(ctx context.Context, alumnoID, claseID int, valor string, tipoID int) error {
	st := cli.loader.Load(ctx, catalog.Alumnos, catalog.TiposEvaluacion, catalog.Escalas)
	alumno, err := alumnoOf(st, alumnoID)
	if err != nil {
		return err
	}
	curso, ok := alumno.Curso(claseID)
	if !ok {
		return fmt.Errorf("clase %d is not a course of alumno %d", claseID, alumnoID)
	}

	tipo := notas.TipoNumerico
	if lit, ok := notas.MatchLiteral(valor, st.Escalas); ok {
		tipo, valor = notas.TipoLiteral, lit
	} else if v, ok := notas.ParseValor(valor); ok {
		valor = notas.FormatValor(v)
	} else {
		return fmt.Errorf("invalid valor %q", valor)
	}

	saved, err := cli.loader.Notas.ListNotas(ctx, notas.Filter{AlumnoID: alumnoID, ClaseID: claseID})
	if err != nil {
		return errors.Wrap(err, "loading notas")
	}
	if len(saved) > 0 && saved[0].Tipo() != tipo {
		return notas.ErrTipoBloqueado
	}

	te := notas.PickTipoEvaluacion(st.TiposEvaluacion, tipoID)
	nn := notas.NewNuevaNota(alumnoID, claseID, tipo, valor, te, time.Now())
	if err = nn.Validate(cli.validate, st.Escalas); err != nil {
		return err
	}
	n, err := cli.loader.Notas.CreateNota(ctx, nn)
	if err != nil {
		return errors.Wrap(err, "creating nota")
	}
	fmt.Fprintf(cli.out, "Nota #%d registrada: %s en %s (%s)\n", n.ID, n.Valor(), curso.CursoNombre, n.TipoEvaluacion)
	return nil
}
