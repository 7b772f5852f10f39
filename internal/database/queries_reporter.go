// Package database provides the MySQL data-access layer for newsdb.
//
// FILE: queries_reporter.go
// PURPOSE: Reporter inserts.
//
// RELATED FILES:
// - queries.go: Base Queries struct and InsertRecord
package database

import (
	"context"

	"github.com/willfong/newsdb/internal/models"
)

// InsertReporter inserts r into reporters and sets r.ID
func (q *Queries) InsertReporter(ctx context.Context, r *models.Reporter) (int64, error) {
	if err := q.checkRequired(models.TableReporters, r); err != nil {
		return 0, err
	}

	id, err := q.InsertRecord(ctx, models.TableReporters, []Column{
		{"name", r.Name},
		{"email", r.Email},
	})
	if err != nil {
		return 0, err
	}
	r.ID = id
	return id, nil
}
