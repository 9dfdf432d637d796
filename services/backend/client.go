// Package backend implements the school services over their REST APIs.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"

	"github.com/trezcool/escuela/core"
)

// Error is a failed backend call: transport ok, but the service refused or failed the request.
type Error struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// IsNotFound reports whether err is a 404 from a backend. 404s are returned as core.ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Cause(err) == core.ErrNotFound
}

// envelope is the response shape shared by every service: {success, data, error?}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

func (env envelope) errorMessage() string {
	raw := bytes.TrimSpace(env.Error)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
			return obj.Message
		}
		return string(raw)
	}
	return env.Message
}

type client struct {
	rc      *rest.Client
	baseURL string
	headers map[string]string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		rc:      &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: map[string]string{
			"Accept":       "application/json",
			"Content-Type": "application/json",
		},
	}
}

// do calls the endpoint and returns the `data` of a successful envelope.
func (c *client) do(ctx context.Context, op string, method rest.Method, path string, query map[string]string, body interface{}) (json.RawMessage, error) {
	req := rest.Request{
		Method:      method,
		BaseURL:     c.baseURL + path,
		Headers:     c.headers,
		QueryParams: query,
	}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: encoding request", op)
		}
		req.Body = b
	}

	res, err := c.rc.SendWithContext(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	var env envelope
	if res.StatusCode == http.StatusNotFound {
		_ = json.Unmarshal([]byte(res.Body), &env)
		return nil, errors.Wrap(core.ErrNotFound, (&Error{Op: op, StatusCode: res.StatusCode, Message: env.errorMessage()}).Error())
	}
	if err := json.Unmarshal([]byte(res.Body), &env); err != nil {
		if res.StatusCode >= http.StatusBadRequest {
			return nil, &Error{Op: op, StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		}
		return nil, errors.Wrapf(err, "%s: decoding response", op)
	}
	if res.StatusCode >= http.StatusBadRequest || !env.Success {
		return nil, &Error{Op: op, StatusCode: res.StatusCode, Message: env.errorMessage()}
	}
	return env.Data, nil
}

func (c *client) list(ctx context.Context, op, path, key string, query map[string]string, out interface{}) error {
	data, err := c.do(ctx, op, rest.Get, path, query, nil)
	if err != nil {
		return err
	}
	return errors.Wrap(decodeList(data, key, out), op)
}

func (c *client) create(ctx context.Context, op, path, key string, body, out interface{}) error {
	data, err := c.do(ctx, op, rest.Post, path, nil, body)
	if err != nil {
		return err
	}
	return errors.Wrap(decodeItem(data, key, out), op)
}

// decodeList decodes a collection that may come as a bare array, nested under key
// (`{"alumnos": [...]}`), nested under the only array field of an object, or null.
// out must point to a non-nil slice; it is left as is when there is nothing to decode.
func decodeList(data json.RawMessage, key string, out interface{}) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '[':
		return json.Unmarshal(data, out)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if nested, ok := obj[key]; ok {
			return decodeList(nested, key, out)
		}
		var arrays []json.RawMessage
		for _, v := range obj {
			if v = bytes.TrimSpace(v); len(v) > 0 && v[0] == '[' {
				arrays = append(arrays, v)
			}
		}
		if len(arrays) == 1 {
			return json.Unmarshal(arrays[0], out)
		}
		return nil
	default:
		return errors.Errorf("unexpected %s data: %.20s", key, data)
	}
}

// decodeItem decodes an object that may come bare or nested under key.
func decodeItem(data json.RawMessage, key string, out interface{}) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return errors.Wrapf(core.ErrNotFound, "empty %s", key)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if nested, ok := obj[key]; ok {
		if n := bytes.TrimSpace(nested); len(n) > 0 && n[0] == '{' {
			return json.Unmarshal(n, out)
		}
	}
	return json.Unmarshal(data, out)
}
