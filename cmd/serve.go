package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"sportsdigest/config"
	"sportsdigest/db"
	"sportsdigest/pipeline"
	"sportsdigest/server"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the feed documents over HTTP, regenerating on an interval",
		Description: `Runs the pipeline on a fixed interval and serves the current
		documents on /feed.xml and /<sport>.xml. A refresh that fails to render
		is retried with exponential backoff; the previous documents keep being
		served until a refresh succeeds.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.toml",
				Usage:   "Path to the TOML configuration file",
				EnvVars: []string{"SPORTSDIGEST_CONFIG"},
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   3000,
				Usage:   "Port to listen on",
				EnvVars: []string{"SPORTSDIGEST_PORT"},
			},
			&cli.DurationFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Value:   15 * time.Minute,
				Usage:   "How often the feeds are regenerated",
				EnvVars: []string{"SPORTSDIGEST_INTERVAL"},
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
			&cli.StringFlag{
				Name:    "cache",
				Usage:   "SQLite seen-cache file extending dedup across refreshes (off when empty)",
				EnvVars: []string{"SPORTSDIGEST_CACHE"},
			},
		},
		Action: func(cliCtx *cli.Context) error {
			cfg, err := config.LoadConfig(cliCtx.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			opts := pipeline.Options{
				Demo:     cliCtx.Bool("demo"),
				PerSport: cliCtx.Int("per-sport"),
				Clock:    time.Now,
			}

			if cache := cliCtx.String("cache"); cache != "" {
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

			ctx, stop := signal.NotifyContext(cliCtx.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			docs := server.NewDocuments()
			refresh := func() error {
				result := pipeline.New(cfg, opts).Run(ctx)
				rendered, err := pipeline.RenderAll(result)
				if err != nil {
					return err
				}
				docs.Replace(rendered)
				return nil
			}

			retry := func() error {
				bo := backoff.NewExponentialBackOff()
				bo.InitialInterval = time.Second
				bo.MaxInterval = time.Minute
				bo.MaxElapsedTime = cliCtx.Duration("interval")
				return backoff.Retry(refresh, backoff.WithContext(bo, ctx))
			}

			if err := retry(); err != nil {
				return fmt.Errorf("initial feed generation failed: %w", err)
			}

			go func() {
				ticker := time.NewTicker(cliCtx.Duration("interval"))
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if err := retry(); err != nil {
							log.WithFields(log.Fields{
								"error": err,
							}).Error("Feed refresh failed, keeping previous documents")
						}
					}
				}
			}()

			app := server.Server(&server.ServerConfig{Documents: docs})

			go func() {
				<-ctx.Done()
				log.Info("Gracefully shutting down...")
				if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
					log.WithFields(log.Fields{"error": err}).Error("Shutdown failed")
				}
			}()

			addr := fmt.Sprintf(":%d", cliCtx.Int("port"))
			log.WithFields(log.Fields{
				"addr":     addr,
				"interval": cliCtx.Duration("interval"),
			}).Info("Serving feeds")
			if err := app.Listen(addr); err != nil {
				return err
			}

			<-ctx.Done()
			return nil
		},
	}
}
