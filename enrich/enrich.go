package enrich

import (
	"fmt"
	"strings"

	"sportsdigest/config"
	"sportsdigest/models"
)

// marker is the call-to-action line of the promotional block. Its presence in
// a description means the item was already enriched, so appending is skipped
// and re-enrichment stays idempotent even across upstream reprocessing.
const marker = "ベットはこちら:"

// Enricher appends the sport-specific promotional block to item descriptions.
// Blocks are built once per sport at construction time.
type Enricher struct {
	blocks map[models.Sport]string
}

// New builds the per-sport promotional blocks from the configured feeds.
// When several feeds share a sport the first feed's target link wins.
func New(cfg *config.Config) *Enricher {
	blocks := make(map[models.Sport]string, len(cfg.Feeds))
	for _, feed := range cfg.Feeds {
		sport := feed.SportTag()
		if _, ok := blocks[sport]; ok {
			continue
		}
		blocks[sport] = Block(cfg.EmojiFor(sport), feed.TargetURL)
	}
	return &Enricher{blocks: blocks}
}

// Block renders the fixed promotional line for one sport.
func Block(emoji, targetURL string) string {
	return fmt.Sprintf("%s %s %s", emoji, marker, targetURL)
}

// Enrich returns a copy of the item with the promotional block appended to
// its description. Enriching twice yields the same description as once.
func (e *Enricher) Enrich(item models.Item) models.Item {
	block, ok := e.blocks[item.Sport]
	if !ok || strings.Contains(item.Description, marker) {
		return item
	}
	if item.Description == "" {
		item.Description = block
	} else {
		item.Description = item.Description + "\n\n" + block
	}
	return item
}
