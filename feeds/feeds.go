package feeds

import (
	"fmt"
	"sort"
	"strings"

	"sportsdigest/config"
	"sportsdigest/models"

	"github.com/samber/lo"
)

// FileName is the output document name for a per-sport feed.
func FileName(sport models.Sport) string {
	return string(sport) + ".xml"
}

// CombinedFileName is the output document name for the combined feed.
const CombinedFileName = "feed.xml"

// Combined merges all sports' items into the single ordered output feed.
func Combined(cfg *config.Config, items []models.Item) models.OutputFeed {
	return models.OutputFeed{
		Title:       cfg.Title,
		Link:        cfg.Link,
		Description: cfg.Description,
		Language:    cfg.Language,
		Items:       sortByPublished(items),
	}
}

// PerSport partitions items into one output feed per configured sport, each
// ordered like the combined feed and optionally capped at the feed's
// max_items (the oldest items beyond the cap are dropped). Sports with zero
// items this run still get a feed so downstream pollers always find a
// parseable document.
func PerSport(cfg *config.Config, items []models.Item) map[models.Sport]models.OutputFeed {
	base := baseLink(cfg.Link)

	out := make(map[models.Sport]models.OutputFeed, len(cfg.Sports()))
	for _, sport := range cfg.Sports() {
		sportItems := lo.Filter(items, func(item models.Item, _ int) bool {
			return item.Sport == sport
		})
		sportItems = sortByPublished(sportItems)
		if limit := maxItems(cfg, sport); limit > 0 && len(sportItems) > limit {
			sportItems = sportItems[:limit]
		}

		tag := strings.ToUpper(string(sport))
		out[sport] = models.OutputFeed{
			Title:       fmt.Sprintf("%s - %s", cfg.Title, tag),
			Link:        base + "/" + FileName(sport),
			Description: fmt.Sprintf("%s（%sのみ）", cfg.Description, tag),
			Language:    cfg.Language,
			Items:       sportItems,
		}
	}
	return out
}

// maxItems returns the cap for a sport's feed; the first configured feed for
// that sport wins. Zero means uncapped.
func maxItems(cfg *config.Config, sport models.Sport) int {
	for _, feed := range cfg.Feeds {
		if feed.SportTag() == sport {
			return feed.MaxItems
		}
	}
	return 0
}

// sortByPublished orders items newest first. The sort is stable so items
// sharing a timestamp keep their encounter order, which also decides which
// items survive a max_items cap.
func sortByPublished(items []models.Item) []models.Item {
	sorted := make([]models.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published)
	})
	return sorted
}

// baseLink strips the last path segment from the combined feed link, giving
// the directory per-sport documents are published under.
func baseLink(link string) string {
	if idx := strings.LastIndex(link, "/"); idx > 0 {
		return link[:idx]
	}
	return link
}
