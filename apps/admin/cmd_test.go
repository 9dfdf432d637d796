package main

import (
	"bytes"
	"context"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/services/backend/inmem"
	"github.com/trezcool/escuela/tests"
)

var db *inmem.DB

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	// set up backend
	db = testutil.Backend(t)
	validate, _ := core.NewValidator()

	// start CLI
	out := new(bytes.Buffer)
	return &commandLine{
		loader:   catalog.Loader{Services: db.Services(), Logger: testutil.Logger()},
		validate: validate,
		out:      out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string // regular expressions
	extra      interface{}
}

func (tt cliTest) check(t *testing.T, cli *commandLine, out *bytes.Buffer) {
	out.Reset()
	err := cli.run(append([]string{"admin"}, tt.args...))
	switch {
	case tt.wantErr != nil:
		if errors.Cause(err) != tt.wantErr {
			t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
		}
	case tt.wantErrStr != "":
		if err == nil || err.Error() != tt.wantErrStr {
			t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
		}
	case err != nil:
		t.Errorf("cli.run() unexpected error = %v", err)
	}
	for _, re := range tt.wantOut {
		assert.Regexp(t, re, out.String())
	}
}

func Test_commandLine_usage(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: []string{`Usage:`}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp, wantOut: []string{`boleta -alumno ID`}},
		{name: "boleta: no alumno", args: []string{"boleta"}, wantErr: errHelp, wantOut: []string{`-alumno`}},
		{name: "boleta: bad flag", args: []string{"boleta", "-alumno", "uno"}, wantErr: errHelp},
		{name: "nota: no valor", args: []string{"nota", "-alumno", "1", "-clase", "1"}, wantErr: errHelp, wantOut: []string{`-valor`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}
}

func Test_commandLine_catalogo(t *testing.T) {
	cli, out := setup(t)

	t.Run("counts", func(t *testing.T) {
		tt := cliTest{args: []string{"catalogo"}, wantOut: []string{
			`alumnos\s+3\n`, `matriculas\s+4\n`, `clases\s+13\n`, `tipos_evaluacion\s+3\n`, `escalas\s+4\n`,
		}}
		tt.check(t, cli, out)
	})

	t.Run("failing collection", func(t *testing.T) {
		db.FailOn("ListCursos", errors.New("boom"))
		defer db.FailOn("ListCursos", nil)

		tt := cliTest{
			args:       []string{"catalogo"},
			wantErrStr: "1 of 9 collections could not be loaded",
			wantOut:    []string{`cursos\s+error: loading cursos: boom\n`, `grados\s+2\n`},
		}
		tt.check(t, cli, out)
	})
}

func Test_commandLine_boleta(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{
			name: "active periodo", args: []string{"boleta", "-alumno", "1"},
			wantOut: []string{
				`Boleta de notas: Quispe Huamán, Ana María \(DNI 71234567\)`,
				`Periodo: 2026`,
				`Matemática\s+18 15\s+16\.5\n`,
				`Comunicación\s+14\s+14\.0\n`,
				`Ciencia y Tecnología\s+-\s+-\n`,
				`Arte y Cultura\s+AD\s+AD\n`,
				`Promedio general: 15\.25\n`,
			},
		},
		{
			name: "past periodo", args: []string{"boleta", "-alumno", "3", "-periodo", "1"},
			wantOut: []string{`Periodo: 2025`, `Matemática\s+16\s+16\.0\n`, `Promedio general: 16\.00\n`},
		},
		{
			name: "no courses", args: []string{"boleta", "-alumno", "1", "-periodo", "1"},
			wantOut: []string{`El alumno no tiene cursos en este periodo\.`},
		},
		{name: "unknown alumno", args: []string{"boleta", "-alumno", "99"}, wantErrStr: "alumno 99 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)
		})
	}

	t.Run("colours on a terminal", func(t *testing.T) {
		cli.color = true
		defer func() { cli.color = false }()

		tt := cliTest{args: []string{"boleta", "-alumno", "2"}, wantOut: []string{
			`\x1b\[31m9\.0\x1b\[0m`, `Promedio general: \x1b\[31m9\.00\x1b\[0m`,
		}}
		tt.check(t, cli, out)
	})

	t.Run("notas unavailable", func(t *testing.T) {
		db.FailOn("GetNotasAlumno", errors.New("timeout"))
		defer db.FailOn("GetNotasAlumno", nil)

		tt := cliTest{args: []string{"boleta", "-alumno", "1"}, wantErrStr: "loading notas: timeout"}
		tt.check(t, cli, out)
	})
}

func Test_commandLine_nota(t *testing.T) {
	cli, out := setup(t)

	tests := []cliTest{
		{
			name: "numeric", args: []string{"nota", "-alumno", "2", "-clase", "1", "-valor", "12,5"},
			wantOut: []string{`Nota #\d+ registrada: 12\.5 en Matemática \(Examen\)`},
			extra:   2,
		},
		{
			name: "literal on an empty row", args: []string{"nota", "-alumno", "2", "-clase", "4", "-valor", "ad", "-tipo", "3"},
			wantOut: []string{`Nota #\d+ registrada: AD en Arte y Cultura \(Exposición\)`},
			extra:   1,
		},
		{
			name: "literal on a numeric row", args: []string{"nota", "-alumno", "1", "-clase", "1", "-valor", "B"},
			wantErr: notas.ErrTipoBloqueado,
			extra:   2,
		},
		{
			name: "out of range", args: []string{"nota", "-alumno", "2", "-clase", "2", "-valor", "21"},
			wantErrStr: `invalid valor "21"`,
			extra:      0,
		},
		{
			name: "clase of another alumno", args: []string{"nota", "-alumno", "3", "-clase", "1", "-valor", "12"},
			wantErrStr: "clase 1 is not a course of alumno 3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli, out)

			if want, ok := tt.extra.(int); ok {
				ns, err := db.Services().Notas.ListNotas(context.Background(), notas.Filter{
					AlumnoID: flagInt(tt.args, "-alumno"), ClaseID: flagInt(tt.args, "-clase"),
				})
				assert.NoError(t, err)
				assert.Len(t, ns, want)
			}
		})
	}
}

func flagInt(args []string, name string) int {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			n, _ := strconv.Atoi(args[i+1])
			return n
		}
	}
	return 0
}
