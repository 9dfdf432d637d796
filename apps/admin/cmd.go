package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/trezcool/escuela/core/catalog"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	loader   catalog.Loader
	validate *validator.Validate
	out      io.Writer
	color    bool // colour averages
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  catalogo - count the records of every reference collection")
	fmt.Fprintln(cli.out, "  boleta -alumno ID [-periodo ID] - print the report card of an alumno")
	fmt.Fprintln(cli.out, "  nota -alumno ID -clase ID -valor VALOR [-tipo ID] - register a nota")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	boletaCmd := flag.NewFlagSet("boleta", flag.ContinueOnError)
	boletaCmd.SetOutput(cli.out)
	boletaAlumno := boletaCmd.Int("alumno", 0, "The alumno's ID.")
	boletaPeriodo := boletaCmd.Int("periodo", 0, "The periodo's ID. Defaults to the active one.")

	notaCmd := flag.NewFlagSet("nota", flag.ContinueOnError)
	notaCmd.SetOutput(cli.out)
	notaAlumno := notaCmd.Int("alumno", 0, "The alumno's ID.")
	notaClase := notaCmd.Int("clase", 0, "The clase's ID.")
	notaValor := notaCmd.String("valor", "", "A grade from 0 to 20, or a literal (AD, A, B, C).")
	notaTipo := notaCmd.Int("tipo", 0, "The tipo de evaluación's ID. Defaults to the first one.")

	switch args[1] {
	case "catalogo":
		return cli.catalogo(ctx)
	case "boleta":
		if err := boletaCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *boletaAlumno <= 0 {
			boletaCmd.Usage()
			return errHelp
		}
		return cli.boleta(ctx, *boletaAlumno, *boletaPeriodo)
	case "nota":
		if err := notaCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *notaAlumno <= 0 || *notaClase <= 0 || *notaValor == "" {
			notaCmd.Usage()
			return errHelp
		}
		return cli.nota(ctx, *notaAlumno, *notaClase, *notaValor, *notaTipo)
	default:
		cli.printUsage()
		return errHelp
	}
}
