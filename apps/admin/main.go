package main

import (
	"log"
	"os"

	"github.com/trezcool/escuela/core"
	"github.com/trezcool/escuela/core/catalog"
	"github.com/trezcool/escuela/services/backend"
	"github.com/trezcool/escuela/services/backend/inmem"
	logsvc "github.com/trezcool/escuela/services/logger"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf, err := core.NewConfig()
	if err != nil {
		std.Fatalf("%+v", err)
	}
	logger := logsvc.NewRollbarLogger(std, conf)

	var services catalog.Services
	switch conf.Backend.Mode {
	case core.BackendInMem:
		services = inmem.Seed().Services()
	default:
		services = backend.NewServices(conf.Backend)
	}
	validate, _ := core.NewValidator()

	// start CLI
	cli := commandLine{
		loader:   catalog.Loader{Services: services, MaxInFlight: conf.Backend.MaxInFlight, Logger: logger},
		validate: validate,
		out:      os.Stdout,
		color:    isTerminalFunc(int(os.Stdout.Fd())),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
