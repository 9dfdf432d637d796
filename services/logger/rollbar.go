package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/escuela/core"
)

// RollbarLogger prints to std and reports to Rollbar when a token is configured outside debug and tests.
type RollbarLogger struct {
	std     *log.Logger
	enabled bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)

	l := &RollbarLogger{std: std}
	l.Enable(conf.RollbarToken != "" && !conf.Debug && !conf.TestMode)
	return l
}

func (l *RollbarLogger) Enable(enabled bool) {
	l.enabled = enabled
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, core.RequestInfo
func (l *RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	var extras map[string]interface{}
	for _, arg := range args {
		switch a := arg.(type) {
		case core.RequestInfo:
			if extras == nil {
				extras = make(map[string]interface{}, 3)
			}
			extras["request_id"] = a.ID
			extras["method"] = a.Method
			extras["path"] = a.Path
		case map[string]interface{}:
			if extras == nil {
				extras = make(map[string]interface{}, len(a))
			}
			for k, v := range a {
				extras[k] = v
			}
		default:
			newArgs = append(newArgs, arg)
		}
	}
	if extras != nil {
		newArgs = append(newArgs, extras)
	}
	return newArgs
}

func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	l.std.Println(level + " " + msg)
	for _, arg := range args {
		switch a := arg.(type) {
		case core.RequestInfo:
			l.std.Printf("  request_id=%s %s %s\n", a.ID, a.Method, a.Path)
		case error:
			l.std.Printf("  %+v\n", a)
		default:
			l.std.Printf("  %v\n", a)
		}
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Debug(l.prepare(msg, args)...)
	}
	l.print("DEBUG", msg, args)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Info(l.prepare(msg, args)...)
	}
	l.print("INFO", msg, args)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Warning(l.prepare(msg, args)...)
	}
	l.print("WARN", msg, args)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Error(l.prepare(msg, args)...)
	}
	l.print("ERROR", msg, args)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	if l.enabled {
		rollbar.Critical(l.prepare(msg, args)...)
		rollbar.Wait()
	}
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
