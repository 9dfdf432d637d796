package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/core/gradebook"
	"github.com/trezcool/escuela/core/personas"
)

// ANSI colours of the average statuses
var statusColors = map[string]string{
	gradebook.StatusSuccess: "\x1b[32m",
	gradebook.StatusDanger:  "\x1b[31m",
}

const colorReset = "\x1b[0m"

func alumnoOf(st *catalog.State, alumnoID int) (personas.Alumno, error) {
	if err := st.Err(catalog.Alumnos); err != nil {
		return personas.Alumno{}, err
	}
	a, ok := st.Alumno(alumnoID)
	if !ok {
		return a, fmt.Errorf("alumno %d not found", alumnoID)
	}
	return a, nil
}

// boleta prints the report card of an alumno for one periodo: one line per course, then the overall average.
func (cli *commandLine) boleta(ctx context.Context, alumnoID, periodoID int) error {
	st := cli.loader.Load(ctx, catalog.Alumnos, catalog.Cursos, catalog.Periodos, catalog.Escalas)
	alumno, err := alumnoOf(st, alumnoID)
	if err != nil {
		return err
	}

	periodo := "todos"
	if periodoID == 0 {
		if p, ok := st.PeriodoActivo(); ok {
			periodoID = p.ID
		}
	}
	if p, ok := st.Periodo(periodoID); ok {
		periodo = p.Nombre
	}

	var rows []gradebook.RowSpec
	for _, spec := range gradebook.RowsForAlumno(alumno, 0) {
		if c, _ := alumno.Curso(spec.ClaseID); periodoID != 0 && c.PeriodoID != periodoID {
			continue
		}
		if spec.Label == "" {
			spec.Label = fmt.Sprintf("Curso #%d", spec.CursoID)
			if c, ok := st.Curso(spec.CursoID); ok {
				spec.Label = c.Nombre
			}
		}
		rows = append(rows, spec)
	}

	loaded, err := cli.loader.Notas.GetNotasAlumno(ctx, alumno.ID)
	if err != nil {
		return errors.Wrap(err, "loading notas")
	}
	grid := gradebook.Reduce(gradebook.Input{
		AlumnoID: alumno.ID,
		Mode:     gradebook.ModeMulticurso,
		Rows:     rows,
		Loaded:   loaded,
		Escalas:  st.Escalas,
	}, gradebook.Buffer{}, gradebook.Change{})

	fmt.Fprintf(cli.out, "Boleta de notas: %s (DNI %s)\n", alumno.NombreCompleto(), alumno.NumeroDocumento)
	fmt.Fprintf(cli.out, "Periodo: %s\n\n", periodo)
	if len(grid.Rows) == 0 {
		fmt.Fprintln(cli.out, "El alumno no tiene cursos en este periodo.")
		return nil
	}

	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Curso\tNotas\tPromedio")
	for _, r := range grid.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Label, joinNotas(r), cli.paint(r.Status, r.Summary))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "\nPromedio general: %s\n", cli.paint(grid.Overall.Status(), grid.Overall.String()))
	return nil
}

func joinNotas(r gradebook.Row) string {
	vals := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		if c.Value != "" {
			vals = append(vals, c.Value)
		}
	}
	if len(vals) == 0 {
		return gradebook.Placeholder
	}
	return strings.Join(vals, " ")
}

// paint colours s when writing to a terminal. It is always the last cell of a line so alignment is kept.
func (cli *commandLine) paint(status, s string) string {
	color, ok := statusColors[status]
	if !cli.color || !ok {
		return s
	}
	return color + s + colorReset
}
