package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var server srv

func main() {
	app := cli.NewApp()
	app.Name = "volunhub"
	app.Usage = "Volunteer matching and points redemption service"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "config.toml",
			Usage: "path to the configuration file",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api server",
			Description: `Serves every public and authenticated endpoint.`,
		},
		{
			Action:      server.migrate,
			Name:        "migrate",
			Usage:       "Apply database migrations",
			Description: `Creates or updates the database schema, then exits.`,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
