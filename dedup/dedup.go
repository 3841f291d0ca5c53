package dedup

import (
	"context"

	"sportsdigest/models"

	log "github.com/sirupsen/logrus"
)

// SeenStore extends dedup across runs. Implementations are external to the
// pipeline; the sqlite-backed one lives in the db package.
type SeenStore interface {
	HasSeen(ctx context.Context, guid string) (bool, error)
	MarkSeen(ctx context.Context, guid string) error
}

// Deduper drops items whose guid was already encountered, within this run and
// optionally in previous runs via a SeenStore. First occurrence wins and
// input order is preserved.
type Deduper struct {
	seen  map[string]struct{}
	store SeenStore
}

// New creates a Deduper. store may be nil, in which case dedup is
// within-run only.
func New(store SeenStore) *Deduper {
	return &Deduper{
		seen:  make(map[string]struct{}),
		store: store,
	}
}

// Filter returns the items not seen before, in their original order.
// A failing store is reported and treated as "not seen": losing cross-run
// dedup for one run beats dropping valid items.
func (d *Deduper) Filter(ctx context.Context, items []models.Item) []models.Item {
	kept := make([]models.Item, 0, len(items))
	for _, item := range items {
		if _, ok := d.seen[item.GUID]; ok {
			continue
		}
		d.seen[item.GUID] = struct{}{}

		if d.store != nil {
			seen, err := d.store.HasSeen(ctx, item.GUID)
			if err != nil {
				log.WithFields(log.Fields{
					"guid":  item.GUID,
					"error": err,
				}).Warn("Seen-store lookup failed, keeping item")
			} else if seen {
				continue
			}
			if err := d.store.MarkSeen(ctx, item.GUID); err != nil {
				log.WithFields(log.Fields{
					"guid":  item.GUID,
					"error": err,
				}).Warn("Seen-store mark failed")
			}
		}

		kept = append(kept, item)
	}
	return kept
}
