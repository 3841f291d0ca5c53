package cmd

import (
	"fmt"

	"sportsdigest/db"

	"github.com/urfave/cli/v2"
)

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:        "migrate",
		Usage:       "Run seen-cache database migrations",
		Description: `Creates or upgrades the SQLite seen-cache schema. Will create the database file if it does not exist.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "cache",
				Value:   "seen.db",
				Usage:   "SQLite seen-cache file location",
				EnvVars: []string{"SPORTSDIGEST_CACHE"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cache := ctx.String("cache")
			fmt.Println("Seen cache configured: ", cache)
			return db.Migrate(cache)
		},
	}
}
