package main

import (
	"context"
	"fmt"

	"github.com/trezcool/escuela/core/catalog"
)

var catalogoOrder = []catalog.Collection{
	catalog.Alumnos, catalog.Matriculas, catalog.Cursos, catalog.Grados, catalog.Secciones,
	catalog.Periodos, catalog.Clases, catalog.TiposEvaluacion, catalog.Escalas,
}

func (cli *commandLine) catalogo(ctx context.Context) error {
	st := cli.loader.Load(ctx, catalogoOrder...)
	var failed int
	for _, c := range catalogoOrder {
		if err := st.Err(c); err != nil {
			failed++
			fmt.Fprintf(cli.out, "%-18s error: %v\n", c, err)
			continue
		}
		fmt.Fprintf(cli.out, "%-18s %d\n", c, collectionSize(st, c))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d collections could not be loaded", failed, len(catalogoOrder))
	}
	return nil
}

func collectionSize(st *catalog.State, c catalog.Collection) int {
	switch c {
	case catalog.Alumnos:
		return len(st.Alumnos)
	case catalog.Matriculas:
		return len(st.Matriculas)
	case catalog.Cursos:
		return len(st.Cursos)
	case catalog.Grados:
		return len(st.Grados)
	case catalog.Secciones:
		return len(st.Secciones)
	case catalog.Periodos:
		return len(st.Periodos)
	case catalog.Clases:
		return len(st.Clases)
	case catalog.TiposEvaluacion:
		return len(st.TiposEvaluacion)
	case catalog.Escalas:
		return len(st.Escalas)
	}
	return 0
}
