package pipeline

import (
	"context"
	"sync"
	"time"

	"sportsdigest/config"
	"sportsdigest/dedup"
	"sportsdigest/enrich"
	"sportsdigest/feeds"
	"sportsdigest/fetcher"
	"sportsdigest/models"
	"sportsdigest/parser"

	log "github.com/sirupsen/logrus"
)

// DefaultTimeout bounds each feed fetch. On timeout the source contributes
// zero items to the run.
const DefaultTimeout = 20 * time.Second

// DefaultPerSport is the number of synthetic items per sport in demo mode.
const DefaultPerSport = 3

// Options tune one pipeline run.
type Options struct {
	// Demo replaces network fetches with synthetic data for every source.
	Demo bool
	// PerSport is the demo item count per sport; values below one fall back
	// to DefaultPerSport.
	PerSport int
	// Timeout bounds each fetch (DefaultTimeout when zero).
	Timeout time.Duration
	// Store extends dedup across runs; nil keeps dedup within-run only.
	Store dedup.SeenStore
	// Clock supplies "now" for fallback timestamps and demo data; defaults
	// to time.Now. Injected so runs are deterministic under test.
	Clock func() time.Time
}

// Result holds the output feeds of one run, handed to the serializer or the
// HTTP server by read-only reference.
type Result struct {
	Combined models.OutputFeed
	PerSport map[models.Sport]models.OutputFeed
}

// Pipeline runs the whole enrichment flow: fetch, parse, enrich, dedup,
// aggregate. One instance per run.
type Pipeline struct {
	cfg      *config.Config
	fetcher  *fetcher.Fetcher
	parser   *parser.Parser
	enricher *enrich.Enricher
	opts     Options
}

func New(cfg *config.Config, opts Options) *Pipeline {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PerSport < 1 {
		opts.PerSport = DefaultPerSport
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher.New(opts.Timeout),
		parser:   parser.New(),
		enricher: enrich.New(cfg),
		opts:     opts,
	}
}

// Run executes the pipeline. It never fails as a whole: unreachable or
// malformed sources are reported and skipped, and the result always contains
// a well-formed feed per output even if every source failed.
func (p *Pipeline) Run(ctx context.Context) *Result {
	now := p.opts.Clock()

	// Fetch and parse each source independently; results stay per-source
	// until the single-threaded merge below so config order is preserved.
	perSource := make([][]models.Item, len(p.cfg.Feeds))
	var wg sync.WaitGroup
	for i, feed := range p.cfg.Feeds {
		wg.Add(1)
		go func(i int, feed config.Feed) {
			defer wg.Done()
			perSource[i] = p.collect(ctx, feed, now)
		}(i, feed)
	}
	wg.Wait()

	deduper := dedup.New(p.opts.Store)
	var all []models.Item
	for _, items := range perSource {
		for _, item := range items {
			all = append(all, p.enricher.Enrich(item))
		}
	}
	all = deduper.Filter(ctx, all)

	return &Result{
		Combined: feeds.Combined(p.cfg, all),
		PerSport: feeds.PerSport(p.cfg, all),
	}
}

// collect fetches and normalizes one source, or synthesizes demo items for
// it. Failures yield an empty slice and a log message, never an aborted run.
func (p *Pipeline) collect(ctx context.Context, feed config.Feed, now time.Time) []models.Item {
	if p.opts.Demo || feed.Demo {
		return fetcher.DemoItems(feed, p.opts.PerSport, now)
	}

	body, err := p.fetcher.Fetch(ctx, feed)
	if err != nil {
		log.WithFields(log.Fields{
			"sport": feed.Sport,
			"url":   feed.URL,
			"error": err,
		}).Warn("Source unavailable, skipping")
		return nil
	}

	items, err := p.parser.Parse(feed, body, now)
	if err != nil {
		log.WithFields(log.Fields{
			"sport": feed.Sport,
			"url":   feed.URL,
			"error": err,
		}).Warn("Source document unparsable, skipping")
		return nil
	}

	log.WithFields(log.Fields{
		"sport": feed.Sport,
		"url":   feed.URL,
		"items": len(items),
	}).Info("Fetched source")
	return items
}
