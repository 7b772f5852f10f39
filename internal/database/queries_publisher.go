// Package database provides the MySQL data-access layer for newsdb.
//
// FILE: queries_publisher.go
// PURPOSE: Publisher inserts. All six publisher columns are taken from the
// Publisher value; name, email, phone number and head office address are
// required and their absence fails before any SQL is sent.
//
// RELATED FILES:
// - queries.go: Base Queries struct and InsertRecord
package database

import (
	"context"

	"github.com/willfong/newsdb/internal/models"
)

// InsertPublisher inserts p into publishers and sets p.ID.
// An empty Facebook or Twitter handle is stored as NULL, not as an empty string.
func (q *Queries) InsertPublisher(ctx context.Context, p *models.Publisher) (int64, error) {
	if err := q.checkRequired(models.TablePublishers, p); err != nil {
		return 0, err
	}

	id, err := q.InsertRecord(ctx, models.TablePublishers, []Column{
		{"name", p.Name},
		{"email", p.Email},
		{"phone_number", p.PhoneNumber},
		{"head_office_address", p.HeadOfficeAddress},
		{"facebook", nullString(p.Facebook)},
		{"twitter", nullString(p.Twitter)},
	})
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}
