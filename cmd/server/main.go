package main

import (
	"github.com/oeis-tools/collab/internal/server"
	"github.com/oeis-tools/collab/internal/util"
	"github.com/oeis-tools/collab/pkg/logger"
	"github.com/oeis-tools/collab/pkg/logger/console"

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
