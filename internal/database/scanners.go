// Package database provides the MySQL data-access layer for newsdb.
//
// FILE: scanners.go
// PURPOSE: Row scanning helper functions for converting database rows to model structs.
//
// RELATED FILES:
// - queries_read.go: Uses scanNewsDetail
package database

import (
	"database/sql"

	"github.com/willfong/newsdb/internal/models"
)

func scanNewsDetail(row *sql.Row) (*models.NewsDetail, error) {
	d := &models.NewsDetail{}

	// Publisher is LEFT JOINed; the row may be missing
	var publisherName sql.NullString

	err := row.Scan(
		&d.ID, &d.CategoryID, &d.ReporterID, &d.PublisherID, &d.Datetime,
		&d.Title, &d.Body, &d.Link,
		&d.CategoryName, &d.ReporterName, &d.ReporterEmail, &publisherName,
		&d.ImageCount, &d.SummaryCount,
	)
	if err != nil {
		return nil, err
	}

	d.PublisherName = publisherName.String
	return d, nil
}
