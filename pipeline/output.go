package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"sportsdigest/feeds"
	"sportsdigest/models"
	"sportsdigest/rss"

	log "github.com/sirupsen/logrus"
)

// WriteFiles renders every output feed of a run into dir: feed.xml for the
// combined feed plus one <sport>.xml per configured sport.
func WriteFiles(dir string, result *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	if err := writeFeed(filepath.Join(dir, feeds.CombinedFileName), result.Combined); err != nil {
		return err
	}
	for sport, feed := range result.PerSport {
		if err := writeFeed(filepath.Join(dir, feeds.FileName(sport)), feed); err != nil {
			return err
		}
	}
	return nil
}

// RenderAll renders every output feed of a run keyed by document name,
// ready to be served over HTTP.
func RenderAll(result *Result) (map[string][]byte, error) {
	docs := make(map[string][]byte, len(result.PerSport)+1)

	body, err := rss.Render(result.Combined)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", feeds.CombinedFileName, err)
	}
	docs[feeds.CombinedFileName] = body

	for sport, feed := range result.PerSport {
		body, err := rss.Render(feed)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", feeds.FileName(sport), err)
		}
		docs[feeds.FileName(sport)] = body
	}
	return docs, nil
}

func writeFeed(path string, feed models.OutputFeed) error {
	body, err := rss.Render(feed)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"path":  path,
		"items": len(feed.Items),
	}).Info("Wrote feed")
	return nil
}
