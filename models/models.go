package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// JST is the fixed timezone all published timestamps are normalized to.
// A fixed zone avoids depending on tzdata being present in scratch containers.
var JST = time.FixedZone("JST", 9*60*60)

// Sport is the closed set of sport categories a feed source can belong to.
type Sport string

const (
	SportNPB     Sport = "npb"
	SportJLeague Sport = "jleague"
	SportKeiba   Sport = "keiba"
	SportMLB     Sport = "mlb"
)

// AllSports lists every valid sport tag, in canonical order.
var AllSports = []Sport{SportNPB, SportJLeague, SportKeiba, SportMLB}

// ParseSport validates a sport tag from configuration.
func ParseSport(s string) (Sport, error) {
	for _, sport := range AllSports {
		if string(sport) == s {
			return sport, nil
		}
	}
	return "", fmt.Errorf("unknown sport %q (must be one of npb, jleague, keiba, mlb)", s)
}

// Item is the canonical news entry, independent of the original feed format.
// After normalization Title is non-empty, Link resolves, Published is never
// zero and GUID is stable across runs.
type Item struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Published   time.Time `json:"published"`
	Sport       Sport     `json:"sport"`
	GUID        string    `json:"guid"`
}

// OutputFeed is one RSS channel ready for serialization. Items are ordered by
// Published descending with ties broken by encounter order.
type OutputFeed struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Items       []Item `json:"items"`
}

// DeriveGUID builds a stable identifier for an entry. Prefers the source
// guid, then the link, then title+published as a last resort so dedup always
// has something deterministic to key on.
func DeriveGUID(guid, link, title string, published time.Time) string {
	if guid != "" {
		return hashString(guid)
	}
	if link != "" {
		return hashString(link)
	}
	return hashString(title + "||" + published.UTC().Format(time.RFC3339))
}

func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:8])
}
