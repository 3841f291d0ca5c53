package rss

import (
	"encoding/xml"
	"fmt"
	"time"
	"unicode/utf8"

	"sportsdigest/models"

	log "github.com/sirupsen/logrus"
)

// The one correctness-critical contract of the whole tool: whatever the
// upstream feeds contained, the documents written here must parse as XML.
// encoding/xml escapes all reserved characters; items whose fields are still
// unencodable (invalid UTF-8) are dropped rather than breaking the document.

type document struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Language    string `xml:"language,omitempty"`
	Items       []item `xml:"item"`
}

type item struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        guid   `xml:"guid"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Render serializes an output feed as an RSS 2.0 document. An empty feed
// still renders a valid channel with zero items.
func Render(feed models.OutputFeed) ([]byte, error) {
	ch := channel{
		Title:       models.SanitizeXML(feed.Title),
		Link:        models.SanitizeXML(feed.Link),
		Description: models.SanitizeXML(feed.Description),
		Language:    feed.Language,
		Items:       make([]item, 0, len(feed.Items)),
	}

	for _, it := range feed.Items {
		encoded, ok := encodeItem(it)
		if !ok {
			log.WithFields(log.Fields{
				"guid": it.GUID,
				"link": it.Link,
			}).Warn("Dropping unencodable item from output document")
			continue
		}
		ch.Items = append(ch.Items, encoded)
	}

	body, err := xml.MarshalIndent(document{Version: "2.0", Channel: ch}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RSS document: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// encodeItem maps an item to its XML form. Returns false when a field cannot
// be represented in a UTF-8 XML document (undecodable bytes).
func encodeItem(it models.Item) (item, bool) {
	if !utf8.ValidString(it.Title) || !utf8.ValidString(it.Link) || !utf8.ValidString(it.Description) {
		return item{}, false
	}
	return item{
		Title:       models.SanitizeXML(it.Title),
		Link:        models.SanitizeXML(it.Link),
		Description: models.SanitizeXML(it.Description),
		PubDate:     it.Published.Format(time.RFC1123Z),
		GUID:        guid{IsPermaLink: false, Value: it.GUID},
	}, true
}
