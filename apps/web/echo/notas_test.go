package echoweb_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/escuela/apps/web/echo"
	"github.com/trezcool/escuela/core/gradebook"
	"github.com/trezcool/escuela/core/notas"
)

func Test_notasPages_view(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name: "multicurso: active periodo", path: "/notas/alumnos/1", wantCode: http.StatusOK,
			want: []string{
				"<h1>Notas de Quispe Huamán, Ana María</h1>",
				`<option value="2" selected>2026 (activo)</option>`,
				"<td>Matemática</td>", "<td>Ciencia y Tecnología</td>",
				`value="18"`, `value="15"`, `value="AD"`,
				`class="text-success">16.5</td>`,
				`class="text-success">14.0</td>`,
				`>AD</td>`,
				`id="promedio-general">15.25</th>`,
				`name="nota.c1.1"`,
				`name="columnas" value="2"`,
			},
			notWant: []string{`name="nota.c1.2"`, "<th>Registradas</th>"},
		},
		{
			name: "multicurso: past periodo", path: "/notas/alumnos/3?periodo=1", wantCode: http.StatusOK,
			want:    []string{`<option value="1" selected>2025</option>`, `class="text-success">16.0</td>`, `id="promedio-general">16.00</th>`},
			notWant: []string{"<td>Comunicación</td>"},
		},
		{
			name: "multicurso: nothing graded", path: "/notas/alumnos/3", wantCode: http.StatusOK,
			want: []string{"<td>Arte y Cultura</td>", `id="promedio-general">-</th>`, `name="columnas" value="1"`},
		},
		{
			name: "multicurso: no courses in periodo", path: "/notas/alumnos/1?periodo=1", wantCode: http.StatusOK,
			want: []string{"El alumno no tiene cursos en este periodo."},
		},
		{
			name: "individual", path: "/notas/alumnos/2/clases/1", wantCode: http.StatusOK,
			want:    []string{"<h1>Matemática: Gonzáles Pérez, Luis</h1>", `value="9"`, `class="text-danger">9.0</td>`, `name="periodo" value="0"`},
			notWant: []string{"<td>Comunicación</td>", `<select name="periodo">`},
		},
		{
			name: "modal", path: "/notas/alumnos/1?modal=1", wantCode: http.StatusOK,
			want:    []string{`<input type="hidden" name="modal" value="1">`, `id="gradebook"`},
			notWant: []string{"<html"},
		},
		{name: "aviso", path: "/notas/alumnos/1?aviso=notas_guardadas", wantCode: http.StatusOK, want: []string{"Notas guardadas correctamente."}},
		{name: "unknown alumno", path: "/notas/alumnos/99", wantCode: http.StatusNotFound, want: []string{"alumno no encontrado"}},
		{name: "bad alumno id", path: "/notas/alumnos/x", wantCode: http.StatusBadRequest, want: []string{"identificador inválido"}},
		{name: "clase of another alumno", path: "/notas/alumnos/3/clases/1", wantCode: http.StatusNotFound, want: []string{"clase no encontrada"}},
		{name: "bad clase id", path: "/notas/alumnos/1/clases/0", wantCode: http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checkCodeAndHTML(t, tc, app.do(tc))
		})
	}
}

func Test_notasPages_changes(t *testing.T) {
	app := setup(t)

	ana := "/notas/alumnos/1"
	form := func(kv ...string) url.Values {
		v := url.Values{}
		for i := 0; i+1 < len(kv); i += 2 {
			v.Add(kv[i], kv[i+1])
		}
		return v
	}

	tests := []httpTest{
		{
			name: "add column", path: ana, form: form("columnas", "2", "accion", "agregar_columna"), wantCode: http.StatusOK,
			want: []string{`name="columnas" value="3"`, `name="nota.c1.2"`, "<th>N3</th>"},
		},
		{
			name: "add column keeps buffered values", path: ana,
			form:     form("columnas", "2", "nota.c3.0", "13,5", "accion", "agregar_columna"),
			wantCode: http.StatusOK,
			want:     []string{`name="nota.c3.0" value="13.5"`, `class="text-success">13.5</td>`, `id="promedio-general">14.67</th>`},
		},
		{
			name: "column count is capped", path: ana, form: form("columnas", "2000000", "accion", "agregar_columna"), wantCode: http.StatusOK,
			want:    []string{gradebook.NoticeMaxColumns, fmt.Sprintf(`name="columnas" value="%d"`, gradebook.MaxColumns)},
			notWant: []string{fmt.Sprintf(`name="nota.c1.%d"`, gradebook.MaxColumns)},
		},
		{
			name: "remove column holding saved notas", path: ana, form: form("columnas", "2", "accion", "quitar_columna"), wantCode: http.StatusOK,
			want: []string{gradebook.NoticeSavedColumn, `name="columnas" value="2"`},
		},
		{
			name: "remove empty column", path: ana, form: form("columnas", "3", "nota.c3.2", "20", "accion", "quitar_columna"), wantCode: http.StatusOK,
			want:    []string{`name="columnas" value="2"`},
			notWant: []string{`name="nota.c3.2"`, gradebook.NoticeSavedColumn},
		},
		{
			name: "remove last column", path: "/notas/alumnos/2/clases/1", form: form("columnas", "1", "accion", "quitar_columna"), wantCode: http.StatusOK,
			want: []string{gradebook.NoticeMinColumns, `name="columnas" value="1"`},
		},
		{
			name: "invalid value reverts", path: ana,
			form:     form("columnas", "2", "nota.c3.0", "25", "previo.c3.0", "12"),
			wantCode: http.StatusOK,
			want:     []string{gradebook.NoticeInvalid, `value="12"`, `class="invalid"`, `id="promedio-general">14.17</th>`},
		},
		{
			name: "compact", path: ana, form: form("columnas", "2", "accion", "compacta"), wantCode: http.StatusOK,
			want: []string{`<input type="hidden" name="compacta" value="1">`, `<table class="table-sm">`, "Vista normal"},
		},
		{
			name: "extended turns compact off", path: ana, form: form("columnas", "2", "compacta", "1", "accion", "extendida"), wantCode: http.StatusOK,
			want:    []string{`<input type="hidden" name="extendida" value="1">`, "<th>Registradas</th>", "Escala literal:", "<th>2 cursos</th>"},
			notWant: []string{`name="compacta"`, `<table class="table-sm">`},
		},
		{
			name: "switch unlocked row to literal", path: ana,
			form:     form("columnas", "2", "nota.c3.0", "12", "accion", gradebook.TipoAction("c3", notas.TipoLiteral)),
			wantCode: http.StatusOK,
			want:     []string{`name="tipo.c3" value="literal"`, `name="nota.c3.0" value=""`, "cambiar a numerico", `id="promedio-general">15.25</th>`},
		},
		{
			name: "switch locked row", path: ana,
			form:     form("columnas", "2", "accion", gradebook.TipoAction("c1", notas.TipoLiteral)),
			wantCode: http.StatusOK,
			want:     []string{notas.ErrTipoBloqueado.Error(), `name="tipo.c1" value="numerico"`},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checkCodeAndHTML(t, tc, app.do(tc))
		})
	}
}

func Test_notasPages_save(t *testing.T) {
	luis := "/notas/alumnos/2/clases/1"
	saveForm := func() url.Values {
		return url.Values{
			"columnas":           {"2"},
			"nota.c1.0":          {"9"},
			"nota.c1.1":          {"12"},
			FieldTipoEvaluacion:  {"2"},
			gradebook.FieldAction: {gradebook.ActionSave},
		}
	}
	listNotas := func(t *testing.T, app testApp) []notas.Nota {
		ns, err := app.db.Services().Notas.ListNotas(context.Background(), notas.Filter{AlumnoID: 2, ClaseID: 1})
		require.NoError(t, err)
		return ns
	}

	t.Run("saved", func(t *testing.T) {
		app := setup(t)
		tc := httpTest{path: luis, form: saveForm(), wantCode: http.StatusSeeOther}
		rec := app.do(tc)
		checkCodeAndHTML(t, tc, rec)
		loc := rec.Header().Get("Location")
		assert.Equal(t, luis+"?aviso=notas_guardadas", loc)

		ns := listNotas(t, app)
		if assert.Len(t, ns, 2) {
			assert.Equal(t, "12", ns[1].Valor())
			assert.Equal(t, "Práctica", ns[1].TipoEvaluacion)
		}

		after := httpTest{path: loc, wantCode: http.StatusOK, want: []string{
			"Notas guardadas correctamente.", `value="12" size="3"`, `class="text-danger">10.5</td>`,
		}}
		checkCodeAndHTML(t, after, app.do(after))
	})

	t.Run("multicurso keeps the periodo", func(t *testing.T) {
		app := setup(t)
		form := url.Values{
			"columnas": {"2"}, "periodo": {"2"}, "nota.c3.0": {"17"}, gradebook.FieldAction: {gradebook.ActionSave},
		}
		rec := app.do(httpTest{path: "/notas/alumnos/1", form: form})
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/notas/alumnos/1?aviso=notas_guardadas&periodo=2", rec.Header().Get("Location"))
	})

	t.Run("nothing new", func(t *testing.T) {
		app := setup(t)
		form := saveForm()
		form.Del("nota.c1.1")
		tc := httpTest{path: luis, form: form, wantCode: http.StatusBadRequest, want: []string{gradebook.ErrNothingNew.Error()}}
		checkCodeAndHTML(t, tc, app.do(tc))
		assert.Len(t, listNotas(t, app), 1)
	})

	t.Run("invalid cells block the save", func(t *testing.T) {
		app := setup(t)
		form := saveForm()
		form.Set("nota.c1.1", "veinte")
		tc := httpTest{path: luis, form: form, wantCode: http.StatusBadRequest, want: []string{gradebook.ErrInvalidGrid.Error(), `class="invalid"`}}
		checkCodeAndHTML(t, tc, app.do(tc))
		assert.Len(t, listNotas(t, app), 1)
	})

	t.Run("backend rejects the nota", func(t *testing.T) {
		app := setup(t)
		app.db.FailOn("CreateNota", errors.New("rechazada"))
		tc := httpTest{path: luis, form: saveForm(), wantCode: http.StatusMultiStatus, want: []string{
			"No se guardó Matemática (columna 2): rechazada", `name="nota.c1.1" value="12"`,
		}, notWant: []string{"Se guardaron"}}
		checkCodeAndHTML(t, tc, app.do(tc))
		assert.Len(t, listNotas(t, app), 1)
	})

	t.Run("saved notas unavailable", func(t *testing.T) {
		app := setup(t)
		app.db.FailOn("ListNotas", errors.New("timeout"))
		tc := httpTest{path: luis, form: saveForm(), wantCode: http.StatusServiceUnavailable, want: []string{
			"No se pudieron cargar las notas registradas",
		}, notWant: []string{`value="guardar"`}}
		checkCodeAndHTML(t, tc, app.do(tc))

		app.db.FailOn("ListNotas", nil)
		assert.Len(t, listNotas(t, app), 1)
	})
}
