package cmd

import (
	"fmt"

	"sportsdigest/db"

	"github.com/urfave/cli/v2"
)

func tidyCmd() *cli.Command {
	return &cli.Command{
		Name:  "tidy",
		Usage: "Tidy up the seen cache",
		Description: `Tidy up the seen cache by removing guids that are old.

		Remove guids first seen more than 90 days ago from the cache.
		This keeps the cache size down while still deduplicating articles
		that overlap between runs.`,
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
			return db.Tidy(cache)
		},
	}
}
