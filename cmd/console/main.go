package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/benayed0/loopa-pro/internal/client/cli"
	"github.com/benayed0/loopa-pro/internal/client/config"
	"github.com/benayed0/loopa-pro/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
