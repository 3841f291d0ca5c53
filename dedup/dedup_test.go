package dedup_test

import (
	"context"
	"errors"
	"testing"

	"sportsdigest/dedup"
	"sportsdigest/models"

	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	seen    map[string]bool
	failing bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{seen: make(map[string]bool)}
}

func (s *fakeStore) HasSeen(_ context.Context, guid string) (bool, error) {
	if s.failing {
		return false, errors.New("store down")
	}
	return s.seen[guid], nil
}

func (s *fakeStore) MarkSeen(_ context.Context, guid string) error {
	if s.failing {
		return errors.New("store down")
	}
	s.seen[guid] = true
	return nil
}

func items(guids ...string) []models.Item {
	out := make([]models.Item, len(guids))
	for i, guid := range guids {
		out[i] = models.Item{GUID: guid, Title: "t-" + guid}
	}
	return out
}

func guids(items []models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.GUID
	}
	return out
}

func TestFilterFirstWinsKeepsOrder(t *testing.T) {
	d := dedup.New(nil)

	kept := d.Filter(context.Background(), items("a", "b", "a", "c", "b", "a"))
	assert.Equal(t, []string{"a", "b", "c"}, guids(kept))
}

func TestFilterNoDuplicates(t *testing.T) {
	d := dedup.New(nil)

	in := items("a", "b", "c")
	kept := d.Filter(context.Background(), in)
	assert.Equal(t, in, kept)
}

func TestFilterAcrossRunsWithStore(t *testing.T) {
	store := newFakeStore()

	first := dedup.New(store).Filter(context.Background(), items("a", "b"))
	assert.Equal(t, []string{"a", "b"}, guids(first))

	second := dedup.New(store).Filter(context.Background(), items("b", "c"))
	assert.Equal(t, []string{"c"}, guids(second), "guids from the previous run are dropped")
}

func TestFilterKeepsItemsWhenStoreFails(t *testing.T) {
	store := newFakeStore()
	store.failing = true

	kept := dedup.New(store).Filter(context.Background(), items("a", "b"))
	assert.Equal(t, []string{"a", "b"}, guids(kept))
}
