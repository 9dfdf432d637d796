package echoweb

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/catalog"
)

type (
	Deps struct {
		Conf       *core.Config
		Logger     core.Logger
		Services   catalog.Services
		MailSvc    core.EmailService
		Validate   *validator.Validate
		Translator ut.Translator

		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     Deps
		app      *echo.Echo
		loader   catalog.Loader
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps Deps) (Server, error) {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
		loader: catalog.Loader{
			Services:    deps.Services,
			MaxInFlight: deps.Conf.Backend.MaxInFlight,
			Logger:      deps.Logger,
		},
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	renderer, err := newRenderer(deps.Conf)
	if err != nil {
		return nil, err
	}
	s.app.Renderer = renderer
	s.setup()
	return s, nil
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Debug = conf.Debug
	if conf.Debug {
		s.app.Logger.SetLevel(log.DEBUG)
	} else {
		s.app.Logger.SetLevel(log.WARN)
	}

	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Format: "${time_rfc3339} ${id} ${method} ${uri} ${status} ${latency_human}\n",
		}))
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.signalShutdown)

	s.app.GET("/", s.dashboard)

	registerCatalogPages(s.app, s.loader)
	registerAlumnoPages(s.app, s.loader, s.deps)
	registerNotasPages(s.app, s.loader, s.deps)
	registerAPI(s.app.Group("/api/v1"), s.loader, s.deps)
}

func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signalled
	}
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Errors() <-chan error { return s.errors }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error { return s.app.Close() }

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
