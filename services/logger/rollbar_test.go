package logsvc

import (
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/escuela/core"
)

func TestRollbarLogger_prepare(t *testing.T) {
	l := &RollbarLogger{}
	err := errors.New("boom")
	req := core.RequestInfo{ID: "abc", Method: "GET", Path: "/alumnos"}

	args := l.prepare("msg", []interface{}{err, req, map[string]interface{}{"coleccion": "cursos"}})
	assert.Equal(t, "msg", args[0])
	assert.Equal(t, err, args[1])
	assert.Equal(t, map[string]interface{}{
		"request_id": "abc",
		"method":     "GET",
		"path":       "/alumnos",
		"coleccion":  "cursos",
	}, args[2])
}

func TestRollbarLogger_print(t *testing.T) {
	out := new(strings.Builder)
	conf := core.NewTestConfig()
	conf.RollbarToken = "token"
	l := NewRollbarLogger(log.New(out, "", 0), conf)
	assert.False(t, l.enabled, "disabled in test mode")

	l.Warn("loading cursos", core.RequestInfo{ID: "abc", Method: "GET", Path: "/cursos"})
	assert.Equal(t, "WARN loading cursos\n  request_id=abc GET /cursos\n", out.String())
}
