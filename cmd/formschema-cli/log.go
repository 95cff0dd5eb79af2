package main

import (
	"os"

	"github.com/echa/config"
	logpkg "github.com/echa/log"

	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

var (
	log     = logpkg.NewLogger("MAIN") // command
	schmLog = logpkg.NewLogger("SCHM") // schema loading and registry
	valdLog = logpkg.NewLogger("VALD") // validator
)

func init() {
	config.SetDefault("logging.backend", "stderr")
	config.SetDefault("logging.flags", "date,time,micro,utc")
	config.SetDefault("logging.level", "warn")

	schema.UseLogger(schmLog)
	validation.UseLogger(valdLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]logpkg.Logger{
	"MAIN": log,
	"SCHM": schmLog,
	"VALD": valdLog,
}

func initLogging() {
	cfg := logpkg.NewConfig()
	cfg.Level = logpkg.ParseLevel(config.GetString("logging.level"))
	cfg.Flags = logpkg.ParseFlags(config.GetString("logging.flags"))
	cfg.Backend = config.GetString("logging.backend")
	cfg.Filename = config.GetString("logging.filename")
	cfg.FileMode = os.FileMode(config.GetInt("logging.filemode"))
	logpkg.Init(cfg)

	log = logpkg.NewLogger("MAIN")
	schmLog = logpkg.NewLogger("SCHM")
	valdLog = logpkg.NewLogger("VALD")

	schema.UseLogger(schmLog)
	validation.UseLogger(valdLog)

	subsystemLoggers = map[string]logpkg.Logger{
		"MAIN": log,
		"SCHM": schmLog,
		"VALD": valdLog,
	}
}

// setLogLevels sets the log level for all subsystem loggers.
func setLogLevels(level logpkg.Level) {
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
