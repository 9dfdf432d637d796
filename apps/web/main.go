package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoweb "github.com/trezcool/escuela/apps/web/echo"
	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/services/backend"
	"github.com/trezcool/escuela/services/backend/inmem"
	emailsvc "github.com/trezcool/escuela/services/email"
	logsvc "github.com/trezcool/escuela/services/logger"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("%+v", err)
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	var services catalog.Services
	switch conf.Backend.Mode {
	case core.BackendInMem:
		services = inmem.Seed().Services()
	default:
		services = backend.NewServices(conf.Backend)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	validate, translator := core.NewValidator()

	// =========================================================================
	// Start Web Service

	logger.Info(fmt.Sprintf("Application initializing : version %q, backend %q", conf.Build, conf.Backend.Mode))
	defer logger.Info("Application stopped")

	server, err := echoweb.NewServer(echoweb.Deps{
		Conf:       conf,
		Logger:     logger,
		Services:   services,
		MailSvc:    mailSvc,
		Validate:   validate,
		Translator: translator,
	})
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up server: %v", err), err)
	}

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
