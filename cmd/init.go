package cmd

import (
	"fmt"
	"os"
	"strings"

	"sportsdigest/config"
	"sportsdigest/models"

	"github.com/BurntSushi/toml"
	"github.com/cqroot/prompt"
	"github.com/urfave/cli/v2"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Interactively scaffold a configuration file",
		Description: `Asks for the feed metadata and writes a starter configuration
		with one demo source per sport. Replace the demo sources with real
		feed URLs and target links before going live.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.toml",
				Usage:   "Path the configuration file is written to",
				EnvVars: []string{"SPORTSDIGEST_CONFIG"},
			},
		},
		Action: func(ctx *cli.Context) error {
			path := ctx.String("config")
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists, not overwriting", path)
			}

			title, err := prompt.New().Ask("Feed title:").Input("JP Sports Betting Digest")
			if err != nil {
				return err
			}

			link, err := prompt.New().Ask("Public feed URL:").Input("https://example.com/feed.xml")
			if err != nil {
				return err
			}

			description, err := prompt.New().Ask("Feed description:").Input("国内スポーツの最新ニュースまとめ")
			if err != nil {
				return err
			}

			cfg := config.Config{
				Title:       title,
				Link:        link,
				Description: description,
				Language:    "ja",
			}
			for _, sport := range models.AllSports {
				cfg.Feeds = append(cfg.Feeds, config.Feed{
					Sport:     string(sport),
					Name:      strings.ToUpper(string(sport)),
					TargetURL: fmt.Sprintf("https://example.com/bet/%s", sport),
					Demo:      true,
				})
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer f.Close()

			if err := toml.NewEncoder(f).Encode(cfg); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			fmt.Printf("Wrote %s. Try: sportsdigest generate --config %s --demo\n", path, path)
			return nil
		},
	}
}
