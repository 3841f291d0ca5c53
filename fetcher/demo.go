package fetcher

import (
	"fmt"
	"time"

	"sportsdigest/config"
	"sportsdigest/models"
)

// Canned headlines so downstream consumers can be tested without waiting for
// real feeds to update.
var demoTitles = map[models.Sport][]string{
	models.SportNPB:     {"阪神 vs 巨人 きょう18:00 先発発表", "広島が接戦を制す、終盤で逆転", "パ・リーグ投手戦 注目ポイント"},
	models.SportJLeague: {"浦和 vs 川崎F プレビュー", "神戸、首位攻防戦を制す", "横浜FM 新戦力が躍動"},
	models.SportKeiba:   {"セントライト記念 展望", "重賞トリプルトレンド：注目馬3頭", "今週の追い切り評価"},
	models.SportMLB:     {"ドジャース 大谷がマルチ安打", "パドレス ダルビッシュ復帰登板", "カブス 鈴木誠也が決勝打"},
}

const (
	demoLink    = "https://example.com/demo-article"
	demoSummary = "（デモ）これはテスト用のニュース要約です。実運用では実際の記事の概要が入ります。"
)

// DemoItems synthesizes perSport fake items for a feed source, bypassing the
// network entirely. Timestamps are staggered backwards from now so the newest
// canned headline sorts first; now is injected so runs are deterministic.
func DemoItems(feed config.Feed, perSport int, now time.Time) []models.Item {
	sport := feed.SportTag()
	titles := demoTitles[sport]

	items := make([]models.Item, 0, perSport)
	for i := 0; i < perSport; i++ {
		var title string
		if i < len(titles) {
			title = titles[i]
		} else {
			title = fmt.Sprintf("%s デモニュース %d", feed.DisplayName(), i+1)
		}
		published := now.In(models.JST).Add(-time.Duration(i*7) * time.Minute)
		prefixed := fmt.Sprintf("[%s] %s", feed.DisplayName(), title)
		items = append(items, models.Item{
			Title:       prefixed,
			Link:        demoLink,
			Description: demoSummary,
			Published:   published,
			Sport:       sport,
			// All demo items share one placeholder link, so key the guid on
			// the title to keep them distinct through dedup.
			GUID: models.DeriveGUID("", "", prefixed, published),
		})
	}
	return items
}
