package feeds_test

import (
	"testing"
	"time"

	"sportsdigest/config"
	"sportsdigest/feeds"
	"sportsdigest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedsConfig() *config.Config {
	return &config.Config{
		Title:       "スポーツダイジェスト",
		Link:        "https://example.com/feeds/feed.xml",
		Description: "最新スポーツニュース",
		Language:    "ja",
		Feeds: []config.Feed{
			{Sport: "npb", Name: "NPB", URL: "https://example.com/a.rss", TargetURL: "https://example.com/bet/npb", MaxItems: 2},
			{Sport: "keiba", Name: "競馬", URL: "https://example.com/b.rss", TargetURL: "https://example.com/bet/keiba"},
		},
	}
}

func at(minute int) time.Time {
	return time.Date(2024, 9, 2, 12, minute, 0, 0, models.JST)
}

func TestCombinedSortsNewestFirst(t *testing.T) {
	cfg := feedsConfig()
	items := []models.Item{
		{GUID: "old", Sport: models.SportNPB, Published: at(0)},
		{GUID: "new", Sport: models.SportKeiba, Published: at(30)},
		{GUID: "mid", Sport: models.SportNPB, Published: at(15)},
	}

	combined := feeds.Combined(cfg, items)
	assert.Equal(t, cfg.Title, combined.Title)
	assert.Equal(t, cfg.Link, combined.Link)
	require.Len(t, combined.Items, 3)
	assert.Equal(t, "new", combined.Items[0].GUID)
	assert.Equal(t, "mid", combined.Items[1].GUID)
	assert.Equal(t, "old", combined.Items[2].GUID)
}

func TestCombinedStableOnEqualTimestamps(t *testing.T) {
	items := []models.Item{
		{GUID: "first", Published: at(10)},
		{GUID: "second", Published: at(10)},
		{GUID: "third", Published: at(10)},
	}

	combined := feeds.Combined(feedsConfig(), items)
	assert.Equal(t, "first", combined.Items[0].GUID)
	assert.Equal(t, "second", combined.Items[1].GUID)
	assert.Equal(t, "third", combined.Items[2].GUID)
}

func TestPerSportPartition(t *testing.T) {
	cfg := feedsConfig()
	items := []models.Item{
		{GUID: "n1", Sport: models.SportNPB, Published: at(10)},
		{GUID: "k1", Sport: models.SportKeiba, Published: at(20)},
		{GUID: "n2", Sport: models.SportNPB, Published: at(30)},
	}

	bySport := feeds.PerSport(cfg, items)
	require.Len(t, bySport, 2)

	npb := bySport[models.SportNPB]
	assert.Equal(t, "スポーツダイジェスト - NPB", npb.Title)
	assert.Equal(t, "https://example.com/feeds/npb.xml", npb.Link)
	assert.Equal(t, "最新スポーツニュース（NPBのみ）", npb.Description)
	require.Len(t, npb.Items, 2)
	assert.Equal(t, "n2", npb.Items[0].GUID)
	assert.Equal(t, "n1", npb.Items[1].GUID)

	keiba := bySport[models.SportKeiba]
	require.Len(t, keiba.Items, 1)
	assert.Equal(t, "k1", keiba.Items[0].GUID)
}

func TestPerSportCapDropsOldest(t *testing.T) {
	cfg := feedsConfig()
	items := []models.Item{
		{GUID: "oldest", Sport: models.SportNPB, Published: at(0)},
		{GUID: "newest", Sport: models.SportNPB, Published: at(30)},
		{GUID: "middle", Sport: models.SportNPB, Published: at(15)},
	}

	npb := feeds.PerSport(cfg, items)[models.SportNPB]
	require.Len(t, npb.Items, 2, "max_items caps the npb feed")
	assert.Equal(t, "newest", npb.Items[0].GUID)
	assert.Equal(t, "middle", npb.Items[1].GUID)
}

func TestPerSportEmptySportStillPresent(t *testing.T) {
	cfg := feedsConfig()
	items := []models.Item{
		{GUID: "n1", Sport: models.SportNPB, Published: at(10)},
	}

	bySport := feeds.PerSport(cfg, items)
	keiba, ok := bySport[models.SportKeiba]
	require.True(t, ok, "configured sports without items still get a feed")
	assert.Empty(t, keiba.Items)
	assert.Equal(t, "https://example.com/feeds/keiba.xml", keiba.Link)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "npb.xml", feeds.FileName(models.SportNPB))
	assert.Equal(t, "feed.xml", feeds.CombinedFileName)
}
