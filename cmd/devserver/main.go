package main

import (
	"context"

	"github.com/benayed0/loopa-pro/internal/devserver"
	"github.com/benayed0/loopa-pro/internal/devserver/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	devserver.NewApp(cfg).Run(ctx)

}
