package cmd

import (
	"fmt"
	"time"

	"sportsdigest/config"
	"sportsdigest/db"
	"sportsdigest/pipeline"

	"github.com/urfave/cli/v2"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate the feed documents once and exit",
		Description: `Runs the whole pipeline once: fetches every configured source,
		normalizes, enriches and deduplicates the articles, and writes feed.xml
		plus one <sport>.xml per sport to the output directory.

		Sources that cannot be fetched or parsed are skipped with a warning;
		the output documents are always written and always valid XML.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.toml",
				Usage:   "Path to the TOML configuration file",
				EnvVars: []string{"SPORTSDIGEST_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "dist",
				Usage:   "Directory the XML documents are written to",
				EnvVars: []string{"SPORTSDIGEST_OUTPUT"},
			},
			&cli.BoolFlag{
				Name:    "demo",
				Usage:   "Generate demo items (no network fetch) for quick testing",
				EnvVars: []string{"SPORTSDIGEST_DEMO"},
			},
			&cli.IntFlag{
				Name:    "per-sport",
				Value:   pipeline.DefaultPerSport,
				Usage:   "Demo items per sport when --demo is used",
				EnvVars: []string{"SPORTSDIGEST_PER_SPORT"},
			},
			&cli.DurationFlag{
				Name:    "fetch-timeout",
				Value:   pipeline.DefaultTimeout,
				Usage:   "Timeout per source fetch",
				EnvVars: []string{"SPORTSDIGEST_FETCH_TIMEOUT"},
			},
			&cli.StringFlag{
				Name:    "cache",
				Usage:   "SQLite seen-cache file extending dedup across runs (off when empty)",
				EnvVars: []string{"SPORTSDIGEST_CACHE"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.LoadConfig(ctx.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			opts := pipeline.Options{
				Demo:     ctx.Bool("demo"),
				PerSport: ctx.Int("per-sport"),
				Timeout:  ctx.Duration("fetch-timeout"),
				Clock:    time.Now,
			}

			if cache := ctx.String("cache"); cache != "" {
				if err := db.Migrate(cache); err != nil {
					return fmt.Errorf("failed to migrate seen cache: %w", err)
				}
				store, err := db.Open(cache)
				if err != nil {
					return err
				}
				defer store.Close()
				opts.Store = store
			}

			result := pipeline.New(cfg, opts).Run(ctx.Context)
			return pipeline.WriteFiles(ctx.String("output"), result)
		},
	}
}
