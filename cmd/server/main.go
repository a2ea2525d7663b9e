package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/taskmanager/internal/buildinfo"
	"github.com/dmitrijs2005/taskmanager/internal/server"
	"github.com/dmitrijs2005/taskmanager/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
