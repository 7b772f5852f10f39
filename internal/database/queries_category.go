// Package database provides the MySQL data-access layer for newsdb.
//
// FILE: queries_category.go
// PURPOSE: Category inserts.
//
// RELATED FILES:
// - queries.go: Base Queries struct and InsertRecord
package database

import (
	"context"

	"github.com/willfong/newsdb/internal/models"
)

// InsertCategory inserts c into categories and sets c.ID.
// An empty Description is stored as NULL, not as an empty string.
func (q *Queries) InsertCategory(ctx context.Context, c *models.Category) (int64, error) {
	if err := q.checkRequired(models.TableCategories, c); err != nil {
		return 0, err
	}

	id, err := q.InsertRecord(ctx, models.TableCategories, []Column{
		{"name", c.Name},
		{"description", nullString(c.Description)},
	})
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}
