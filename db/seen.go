package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sqlbuilder "github.com/huandu/go-sqlbuilder"
)

// Store is the sqlite-backed seen-guid cache. It implements the pipeline's
// SeenStore interface and extends dedup across runs.
type Store struct {
	db *sql.DB
}

// Open connects to the cache database. Run Migrate before first use.
func Open(database string) (*Store, error) {
	db, err := connection(database)
	if err != nil {
		return nil, fmt.Errorf("failed to open seen cache %s: %w", database, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// HasSeen reports whether a guid was recorded by an earlier run.
func (s *Store) HasSeen(ctx context.Context, guid string) (bool, error) {
	sb := sqlbuilder.SQLite.NewSelectBuilder()
	sb.Select("1").From("seen_guids")
	sb.Where(sb.Equal("guid", guid))
	query, args := sb.Build()

	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seen lookup failed: %w", err)
	}
	return true, nil
}

// MarkSeen records a guid. Marking the same guid twice is a no-op.
func (s *Store) MarkSeen(ctx context.Context, guid string) error {
	ib := sqlbuilder.SQLite.NewInsertBuilder()
	ib.InsertIgnoreInto("seen_guids")
	ib.Cols("guid", "first_seen")
	ib.Values(guid, time.Now().Unix())
	query, args := ib.Build()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seen insert failed: %w", err)
	}
	return nil
}
