package backend

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/escuela/core/notas"
	"github.com/trezcool/escuela/core/personas"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    []int
		wantErr bool
	}{
		{name: "bare array", data: `[{"id":1},{"id":2}]`, want: []int{1, 2}},
		{name: "nested under key", data: `{"cursos":[{"id":3}],"total":1}`, want: []int{3}},
		{name: "single array field", data: `{"items":[{"id":4}],"page":1}`, want: []int{4}},
		{name: "nested data", data: `{"cursos":{"cursos":[{"id":5}]}}`, want: []int{5}},
		{name: "null", data: `null`, want: []int{}},
		{name: "empty", data: ``, want: []int{}},
		{name: "ambiguous object", data: `{"a":[{"id":1}],"b":[{"id":2}]}`, want: []int{}},
		{name: "scalar", data: `"oops"`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := []struct {
				ID int `json:"id"`
			}{}
			err := decodeList(json.RawMessage(tc.data), "cursos", &out)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ids := []int{}
			for _, o := range out {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"error":"ruta no encontrada"}`))
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAcademicoService(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"GET /cursos":            `{"success":true,"data":[{"id":1,"nombre":"Matemática"}]}`,
		"GET /secciones":         `{"success":true,"data":{"secciones":[{"id":1,"nombre":"A","grado_id":1}]}}`,
		"GET /grados":            `{"success":true,"data":null}`,
		"GET /periodos":          `{"success":false,"error":{"message":"servicio no disponible"}}`,
		"GET /docentes/7/clases": `{"success":true,"data":[{"id":3,"curso_id":1,"seccion_id":1,"periodo_id":2,"docente_id":7}]}`,
	})
	svc := NewAcademicoService(srv.URL+"/", time.Second)
	ctx := context.Background()

	cursos, err := svc.ListCursos(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Matemática", cursos[0].Nombre)

	secciones, err := svc.ListSecciones(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, secciones[0].GradoID)

	grados, err := svc.ListGrados(ctx)
	require.NoError(t, err)
	assert.NotNil(t, grados)
	assert.Empty(t, grados)

	_, err = svc.ListPeriodos(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "servicio no disponible")

	clases, err := svc.GetClasesDocente(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, clases[0].DocenteID)

	_, err = svc.ListClases(ctx)
	assert.True(t, IsNotFound(err))
}

func TestPersonasService_CreatePadre(t *testing.T) {
	var got personas.NuevoPadre
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/padres", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := ioutil.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"padre":{"id":9,"nombres":"Carlos","parentesco":"padre"}}}`))
	}))
	defer srv.Close()

	svc := NewPersonasService(srv.URL, time.Second)
	padre, err := svc.CreatePadre(context.Background(), personas.NuevoPadre{
		Nombres:         "Carlos",
		NumeroDocumento: "41234567",
		Parentesco:      "padre",
	})
	require.NoError(t, err)
	assert.Equal(t, 9, padre.ID)
	assert.Equal(t, "41234567", got.NumeroDocumento)
}

func TestNotasService(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /notas":
			query = r.URL.RawQuery
			_, _ = w.Write([]byte(`{"success":true,"data":{"notas":[` +
				`{"id":1,"alumno_id":1,"clase_id":2,"valor_numerico":15.5,"valor_literal":null},` +
				`{"id":2,"alumno_id":1,"clase_id":2,"valor_numerico":null,"valor_literal":"AD"}]}}`))
		case "POST /notas":
			_, _ = w.Write([]byte(`{"success":true,"data":{"id":3,"alumno_id":1,"clase_id":2,"valor_numerico":12}}`))
		case "GET /alumnos/1/notas":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`internal error`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	svc := NewNotasService(srv.URL, time.Second)
	ctx := context.Background()

	ns, err := svc.ListNotas(ctx, notas.Filter{AlumnoID: 1, ClaseID: 2})
	require.NoError(t, err)
	assert.Contains(t, query, "alumno_id=1")
	assert.Contains(t, query, "clase_id=2")
	require.Len(t, ns, 2)
	assert.Equal(t, "15.5", ns[0].Valor())
	assert.Equal(t, notas.TipoLiteral, ns[1].Tipo())

	n, err := svc.CreateNota(ctx, notas.NuevaNota{AlumnoID: 1, ClaseID: 2, ValorNumerico: null.Float64From(12)})
	require.NoError(t, err)
	assert.Equal(t, 3, n.ID)

	_, err = svc.GetNotasAlumno(ctx, 1)
	require.Error(t, err)
	berr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, berr.StatusCode)
}
