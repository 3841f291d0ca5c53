package config

import (
	"fmt"
	"os"
	"strings"

	"sportsdigest/models"

	"github.com/BurntSushi/toml"
)

// Feed describes one upstream source: which sport it covers, where to fetch
// it, and which promotional link gets appended to its items.
type Feed struct {
	Sport     string `toml:"sport"`
	Name      string `toml:"name,omitempty"`
	URL       string `toml:"url,omitempty"`
	TargetURL string `toml:"target_url"`
	MaxItems  int    `toml:"max_items,omitempty"`
	Demo      bool   `toml:"demo,omitempty"`
}

// SportTag returns the validated sport tag for this feed. Call Validate first.
func (f Feed) SportTag() models.Sport {
	sport, _ := models.ParseSport(f.Sport)
	return sport
}

// DisplayName is the prefix put in front of item titles, e.g. "[NPB] ...".
func (f Feed) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return strings.ToUpper(f.Sport)
}

// Config is the top-level TOML configuration.
type Config struct {
	Title       string            `toml:"title"`
	Link        string            `toml:"link"`
	Description string            `toml:"description"`
	Language    string            `toml:"language,omitempty"`
	Emoji       map[string]string `toml:"emoji,omitempty"`
	Feeds       []Feed            `toml:"feeds"`
}

var defaultEmoji = map[models.Sport]string{
	models.SportNPB:     "⚾",
	models.SportJLeague: "⚽",
	models.SportKeiba:   "🏇",
	models.SportMLB:     "⚾",
}

// EmojiFor returns the emoji used in the promotional block for a sport.
// Config overrides win over the built-in defaults; 🎲 is the fallback.
func (c *Config) EmojiFor(sport models.Sport) string {
	if emoji, ok := c.Emoji[string(sport)]; ok && emoji != "" {
		return emoji
	}
	if emoji, ok := defaultEmoji[sport]; ok {
		return emoji
	}
	return "🎲"
}

// Sports returns the distinct sports covered by the configured feeds, in
// first-appearance order.
func (c *Config) Sports() []models.Sport {
	var sports []models.Sport
	seen := map[models.Sport]bool{}
	for _, feed := range c.Feeds {
		sport := feed.SportTag()
		if !seen[sport] {
			seen[sport] = true
			sports = append(sports, sport)
		}
	}
	return sports
}

// Validate checks invariants the pipeline relies on.
func (c *Config) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("config: title is required")
	}
	if c.Link == "" {
		return fmt.Errorf("config: link is required")
	}
	if len(c.Feeds) == 0 {
		return fmt.Errorf("config: at least one [[feeds]] entry is required")
	}
	for i, feed := range c.Feeds {
		if _, err := models.ParseSport(feed.Sport); err != nil {
			return fmt.Errorf("config: feeds[%d]: %w", i, err)
		}
		if feed.TargetURL == "" {
			return fmt.Errorf("config: feeds[%d] (%s): target_url is required", i, feed.Sport)
		}
		if !feed.Demo && feed.URL == "" {
			return fmt.Errorf("config: feeds[%d] (%s): url is required unless demo = true", i, feed.Sport)
		}
		if feed.MaxItems < 0 {
			return fmt.Errorf("config: feeds[%d] (%s): max_items must not be negative", i, feed.Sport)
		}
	}
	return nil
}

// LoadConfig reads and validates the TOML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if config.Language == "" {
		config.Language = "ja"
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
