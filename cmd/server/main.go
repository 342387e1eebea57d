package main

import (
	"github.com/brimfrost/backend/internal/server"
	"github.com/brimfrost/backend/internal/util"
	"github.com/brimfrost/backend/pkg/logger"
	"github.com/brimfrost/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
