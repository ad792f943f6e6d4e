package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/retailmedia/internal/buildinfo"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
	"github.com/dmitrijs2005/retailmedia/internal/server"
	"github.com/dmitrijs2005/retailmedia/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewStdout(cfg.LogLevel, cfg.LogFormat)

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
