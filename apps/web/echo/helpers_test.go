package echoweb_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/escuela/apps/web/echo"
	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/services/backend/inmem"
	emailsvc "github.com/trezcool/escuela/services/email"
	"github.com/trezcool/escuela/tests"
)

type testApp struct {
	Server
	db      *inmem.DB
	mailSvc *emailsvc.ConsoleServiceMock
}

func setup(t *testing.T) testApp {
	conf := core.NewTestConfig()
	logger := testutil.Logger()
	db := testutil.Backend(t)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	validate, translator := core.NewValidator()

	srv, err := NewServer(Deps{
		Conf:           conf,
		Logger:         logger,
		Services:       db.Services(),
		MailSvc:        mailSvc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	require.NoError(t, err)
	return testApp{Server: srv, db: db, mailSvc: mailSvc}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	form     url.Values
	body     []byte
	wantCode int
	wantData []byte   // JSON
	want     []string // HTML fragments
	notWant  []string
	extra    interface{}
}

func newRequest(method, path string, body io.Reader, contentType string) (*http.Request, *httptest.ResponseRecorder) {
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, httptest.NewRecorder()
}

func (app testApp) do(tt httpTest) *httptest.ResponseRecorder {
	var req *http.Request
	var rec *httptest.ResponseRecorder
	switch {
	case tt.form != nil:
		method := tt.method
		if method == "" {
			method = http.MethodPost
		}
		req, rec = newRequest(method, tt.path, strings.NewReader(tt.form.Encode()), "application/x-www-form-urlencoded")
	case tt.body != nil:
		req, rec = newRequest(tt.method, tt.path, strings.NewReader(string(tt.body)), "application/json")
	default:
		req, rec = newRequest(tt.method, tt.path, nil, "")
	}
	app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func checkCodeAndHTML(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	body := rec.Body.String()
	for _, w := range tt.want {
		if !strings.Contains(body, w) {
			t.Errorf("failed! body does not contain %q\n%s", w, body)
		}
	}
	for _, w := range tt.notWant {
		if strings.Contains(body, w) {
			t.Errorf("failed! body contains %q", w)
		}
	}
}
