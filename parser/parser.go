package parser

import (
	"bytes"
	"fmt"
	"time"

	"sportsdigest/config"
	"sportsdigest/models"

	"github.com/mmcdole/gofeed"
	log "github.com/sirupsen/logrus"
)

// Parser converts raw RSS 2.0 or Atom documents into canonical items.
// gofeed sniffs the format and dispatches to the matching parser variant, so
// both formats produce the same Item shape.
type Parser struct {
	parser *gofeed.Parser
}

func New() *Parser {
	return &Parser{parser: gofeed.NewParser()}
}

// Parse normalizes every entry of a raw feed document. A single bad entry is
// skipped with a warning; an unparsable document is an error and the whole
// source contributes nothing. now supplies the fallback timestamp for entries
// without one and is injected for deterministic runs.
func (p *Parser) Parse(feed config.Feed, body []byte, now time.Time) ([]models.Item, error) {
	parsed, err := p.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feed.URL, err)
	}

	items := make([]models.Item, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		item, ok := p.normalize(feed, entry, now)
		if !ok {
			log.WithFields(log.Fields{
				"feed":  feed.URL,
				"title": entry.Title,
			}).Warn("Skipping malformed feed entry")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// normalize maps one raw entry to the canonical Item. Returns false when the
// entry carries neither a usable title nor a link.
func (p *Parser) normalize(feed config.Feed, entry *gofeed.Item, now time.Time) (models.Item, bool) {
	title := models.SanitizeXML(entry.Title)
	link := models.SanitizeXML(entry.Link)
	if title == "" && link == "" {
		return models.Item{}, false
	}
	if link == "" {
		// The original article is unreachable, point at the feed itself.
		link = feed.URL
	}

	published := now.In(models.JST)
	if entry.PublishedParsed != nil {
		published = entry.PublishedParsed.In(models.JST)
	} else if entry.UpdatedParsed != nil {
		published = entry.UpdatedParsed.In(models.JST)
	}

	return models.Item{
		Title:       fmt.Sprintf("[%s] %s", feed.DisplayName(), title),
		Link:        link,
		Description: models.SanitizeXML(entry.Description),
		Published:   published,
		Sport:       feed.SportTag(),
		GUID:        models.DeriveGUID(entry.GUID, link, title, published),
	}, true
}
