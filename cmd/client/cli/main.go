package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/contactdesk/internal/client/cli"
	"github.com/dmitrijs2005/contactdesk/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())

}
