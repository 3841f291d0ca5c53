package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "sportsdigest",
		Usage: "Enriched sports-news RSS feeds",
		Description: `Aggregates Japanese sports news from multiple RSS/Atom sources,
		deduplicates the articles and appends a sport-specific betting link to
		each one. The result is written as one combined RSS feed plus one
		feed per sport, either to disk or served over HTTP.

		Flags can generally be set via environment variables, e.g.:

		--config => SPORTSDIGEST_CONFIG=config.toml
		--output => SPORTSDIGEST_OUTPUT=dist
		`,
		Commands: []*cli.Command{
			generateCmd(),
			serveCmd(),
			initCmd(),
			migrateCmd(),
			tidyCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func Execute() {
	if err := RootApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
