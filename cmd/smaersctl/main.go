package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/smaersclient/internal/buildinfo"
	"github.com/dmitrijs2005/smaersclient/internal/cli"
	"github.com/dmitrijs2005/smaersclient/internal/cli/config"
	"github.com/dmitrijs2005/smaersclient/internal/flagx"
	"github.com/dmitrijs2005/smaersclient/internal/logging"
)

func main() {

	args := os.Args[1:]
	cfg, err := config.LoadConfig(args, os.LookupEnv)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	ctx := context.Background()
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if cmd := flagx.Positional(args, config.ValuedFlags); len(cmd) > 0 {
		if err := app.Exec(ctx, cmd); err != nil {
			os.Exit(1)
		}
		return
	}

	buildinfo.PrintBuildData(os.Stdout)
	app.Run(ctx)

}
