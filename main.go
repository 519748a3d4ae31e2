package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/haguru/filmdb/config"
	"github.com/haguru/filmdb/internal/app"
)

func main() {
	// create and initialize the app
	app, err := app.NewApp(config.CONFIG_PATH, config.ENV_PATH)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// serve until SIGINT or SIGTERM
	if err := app.Run(ctx); err != nil {
		panic(err)
	}
}
