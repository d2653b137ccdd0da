package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/contactdesk/internal/server"
	"github.com/dmitrijs2005/contactdesk/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	if err := app.Run(context.Background()); err != nil {
		log.Printf("%v", err)
	}
}
