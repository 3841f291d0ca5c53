package db

import (
	"database/sql"
	"time"

	sb "github.com/huandu/go-sqlbuilder"
	log "github.com/sirupsen/logrus"
)

// Tidy removes guids first seen more than 90 days ago so the cache stays
// small and an article that resurfaces after that long counts as new again.
func Tidy(database string) error {
	db, err := connection(database)
	if err != nil {
		return err
	}
	defer db.Close()

	return tidy(db)
}

func tidy(db *sql.DB) error {
	ninetyDaysAgo := time.Now().Add(-90 * 24 * time.Hour).Unix()
	deleteGuids := sb.SQLite.NewDeleteBuilder()
	query, args := deleteGuids.DeleteFrom("seen_guids").Where(deleteGuids.LessEqualThan("first_seen", ninetyDaysAgo)).Build()

	res, err := db.Exec(query, args...)
	if err != nil {
		return err
	}

	deleted, _ := res.RowsAffected()
	log.WithFields(log.Fields{
		"deleted": deleted,
	}).Info("Tidied seen cache")

	return nil
}
