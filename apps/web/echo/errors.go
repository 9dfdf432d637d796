package echoweb

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/escuela/core"
)

var (
	errHttpNotFound  = echo.NewHTTPError(http.StatusNotFound, "no encontrado")
	errAlumnoUnknown = echo.NewHTTPError(http.StatusNotFound, "alumno no encontrado")
	errClaseUnknown  = echo.NewHTTPError(http.StatusNotFound, "clase no encontrada")
	errBadID         = echo.NewHTTPError(http.StatusBadRequest, "identificador inválido")
)

type errorPage struct {
	page
	Code    int
	Message string
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// /api routes get JSON, every other route an HTML error page.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Error()
			}
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				message = origErr.FieldMap()
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg
			logger.Error(msg, errors.Wrap(err, msg), requestInfo(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		// Send response
		if ctx.Response().Committed {
			return
		}
		if ctx.Request().Method == http.MethodHead { // Issue #608
			err = ctx.NoContent(code)
		} else if isAPI(ctx) {
			if m, ok := message.(string); ok {
				message = echo.Map{"error": m}
			}
			err = ctx.JSON(code, message)
		} else {
			err = ctx.Render(code, "error", errorPage{
				page:    newPage(ctx, "Error"),
				Code:    code,
				Message: messageText(message),
			})
		}
		if err != nil {
			ctx.Echo().Logger.Error(err)
		}
	}
}

func isAPI(ctx echo.Context) bool {
	return strings.HasPrefix(ctx.Request().URL.Path, "/api/")
}

func messageText(message interface{}) string {
	switch m := message.(type) {
	case string:
		return m
	case map[string]string:
		fields := make([]string, 0, len(m))
		for f := range m {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for i, f := range fields {
			fields[i] = f + ": " + m[f]
		}
		return strings.Join(fields, "; ")
	default:
		return http.StatusText(http.StatusInternalServerError)
	}
}

// requestInfo identifies the current request in logs.
func requestInfo(ctx echo.Context) core.RequestInfo {
	return core.RequestInfo{
		ID:     ctx.Response().Header().Get(echo.HeaderXRequestID),
		Method: ctx.Request().Method,
		Path:   ctx.Request().URL.Path,
	}
}
