// Command server runs the advent calendar API.
//
//	server serve     # migrate, then listen on $PORT
//	server migrate   # apply the schema and exit
//
// Configuration comes from the environment; a .env file in the working
// directory is loaded first.
//
// @title        Advent Calendar API
// @version      1.0
// @description  Shared day calendar: publish declarations, draft and published articles, and emoji reactions.
// @license.name MIT
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	cmd := &cli.Command{
		Name:  "advent-calendar",
		Usage: "Shared day calendar API with declarations, articles, and reactions",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Apply migrations and start the HTTP server",
				Action: serve,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "skip-migrate",
						Usage:   "Do not run schema migration before serving",
						Sources: cli.EnvVars("SKIP_MIGRATE"),
					},
				},
			},
			{
				Name:   "migrate",
				Usage:  "Apply the database schema and exit",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Error().Err(err).Msg("application error")
		os.Exit(1)
	}
}
