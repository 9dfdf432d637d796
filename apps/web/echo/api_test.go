package echoweb_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/escuela/core/gradebook"
	"github.com/trezcool/escuela/core/personas"
)

func Test_api(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name: "health", path: "/api/v1/health", wantCode: http.StatusOK,
			wantData: marchallObj(t, map[string]string{"status": "ok", "build": "test", "backend": "inmem"}),
		},
		{
			name: "gradebook: missing alumno", method: http.MethodPost, path: "/api/v1/gradebook",
			body:     []byte(`{"change": {"kind": "agregar_columna"}}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"alumno_id": "este campo es obligatorio"}),
		},
		{
			name: "gradebook: unknown change", method: http.MethodPost, path: "/api/v1/gradebook",
			body:     []byte(`{"alumno_id": 1, "change": {"kind": "borrar_todo"}}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"change": "cambio desconocido"}),
		},
		{
			name: "gradebook: unknown alumno", method: http.MethodPost, path: "/api/v1/gradebook",
			body:     []byte(`{"alumno_id": 99}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "alumno no encontrado"}),
		},
		{
			name: "gradebook: clase of another alumno", method: http.MethodPost, path: "/api/v1/gradebook",
			body:     []byte(`{"alumno_id": 3, "clase_id": 1}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "clase no encontrada"}),
		},
		{
			name: "unknown route", path: "/api/v1/nope", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: http.StatusText(http.StatusNotFound)}),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checkCodeAndData(t, tc, app.do(tc))
		})
	}
}

type alumnosResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Alumnos []personas.Alumno `json:"alumnos"`
		Total   int               `json:"total"`
	} `json:"data"`
}

func Test_api_alumnos(t *testing.T) {
	app := setup(t)

	tests := []struct {
		name string
		path string
		want []int
	}{
		{name: "all", path: "/api/v1/alumnos", want: []int{1, 2, 3}},
		{name: "search", path: "/api/v1/alumnos?q=rosa", want: []int{3}},
		{name: "clase", path: "/api/v1/alumnos?clase=1", want: []int{1, 2}},
		{name: "none", path: "/api/v1/alumnos?q=zzz", want: []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.do(httpTest{path: tc.path})
			require.Equal(t, http.StatusOK, rec.Code)

			var res alumnosResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.True(t, res.Success)
			assert.Equal(t, len(tc.want), res.Data.Total)
			ids := make([]int, 0, len(res.Data.Alumnos))
			for _, a := range res.Data.Alumnos {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}

	t.Run("backend down", func(t *testing.T) {
		app.db.FailOn("ListAlumnos", errors.New("connection refused"))
		defer app.db.FailOn("ListAlumnos", nil)

		tc := httpTest{
			path: "/api/v1/alumnos", wantCode: http.StatusBadGateway,
			wantData: marchallObj(t, httpErr{Error: "connection refused"}),
		}
		checkCodeAndData(t, tc, app.do(tc))
	})
}

type gradebookResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Grid      gradebook.Grid   `json:"grid"`
		Buffer    gradebook.Buffer `json:"buffer"`
		PeriodoID int              `json:"periodo_id"`
	} `json:"data"`
}

func Test_api_gradebook(t *testing.T) {
	app := setup(t)

	post := func(t *testing.T, body string) gradebookResponse {
		rec := app.do(httpTest{method: http.MethodPost, path: "/api/v1/gradebook", body: []byte(body)})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res gradebookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.True(t, res.Success)
		return res
	}

	t.Run("add column", func(t *testing.T) {
		res := post(t, `{"alumno_id": 1, "buffer": {"columns": 2}, "change": {"kind": "agregar_columna"}}`)
		grid := res.Data.Grid
		assert.Equal(t, gradebook.ModeMulticurso, grid.Mode)
		assert.Equal(t, 3, grid.Columns)
		assert.Equal(t, 3, res.Data.Buffer.Columns)
		require.Len(t, grid.Rows, 4)
		assert.Equal(t, []string{"18", "15", ""}, grid.Rows[0].Values())
		assert.Equal(t, "15.25", grid.Overall.String())
	})

	t.Run("buffered values", func(t *testing.T) {
		res := post(t, `{"alumno_id": 2, "clase_id": 1, "buffer": {"columns": 2, "values": {"c1": ["9", "13"]}}}`)
		grid := res.Data.Grid
		assert.Equal(t, gradebook.ModeIndividual, grid.Mode)
		require.Len(t, grid.Rows, 1)
		assert.True(t, grid.Rows[0].Cells[0].Saved)
		assert.False(t, grid.Rows[0].Cells[1].Saved)
		assert.Equal(t, "11.0", grid.Rows[0].Summary)
		assert.Equal(t, gradebook.StatusSuccess, grid.Rows[0].Status)
	})

	t.Run("multicurso defaults to the active periodo", func(t *testing.T) {
		res := post(t, `{"alumno_id": 3}`)
		grid := res.Data.Grid
		assert.Equal(t, 2, res.Data.PeriodoID)
		require.Len(t, grid.Rows, 4)
		for _, r := range grid.Rows {
			assert.Equal(t, []string{""}, r.Values())
		}
		assert.Equal(t, gradebook.Placeholder, grid.Overall.String())
	})

	t.Run("multicurso past periodo", func(t *testing.T) {
		res := post(t, `{"alumno_id": 3, "periodo_id": 1}`)
		grid := res.Data.Grid
		assert.Equal(t, 1, res.Data.PeriodoID)
		require.Len(t, grid.Rows, 1)
		assert.Equal(t, []string{"16"}, grid.Rows[0].Values())
		assert.Equal(t, "16.00", grid.Overall.String())
	})

	t.Run("column count is capped", func(t *testing.T) {
		res := post(t, `{"alumno_id": 1, "buffer": {"columns": 1152921504606846976}, "change": {"kind": "agregar_columna"}}`)
		grid := res.Data.Grid
		assert.Equal(t, gradebook.MaxColumns, grid.Columns)
		assert.Equal(t, []string{gradebook.NoticeMaxColumns}, grid.Notices)
		for _, r := range grid.Rows {
			assert.Len(t, r.Cells, gradebook.MaxColumns)
		}
	})

	t.Run("toggle views", func(t *testing.T) {
		res := post(t, `{"alumno_id": 1, "buffer": {"view": {"compact": true}}, "change": {"kind": "extendida"}}`)
		assert.Equal(t, gradebook.View{Extended: true}, res.Data.Grid.View)
	})
}
