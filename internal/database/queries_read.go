// Package database provides the MySQL data-access layer for newsdb.
//
// FILE: queries_read.go
// PURPOSE: Read-back queries used to confirm inserts landed.
//
// KEY FUNCTIONS:
// - GetNewsDetail: A news row joined with its category, reporter and publisher
// - CountRows: Row count of one table
// - TableCounts: Row counts of every table
//
// RELATED FILES:
// - scanners.go: scanNewsDetail
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/willfong/newsdb/internal/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("not found")

// GetNewsDetail retrieves a news row with its foreign keys resolved
func (q *Queries) GetNewsDetail(ctx context.Context, newsID int64) (*models.NewsDetail, error) {
	query := `
		SELECT n.id, n.category_id, n.reporter_id, n.publisher_id, n.datetime,
			n.title, n.body, n.link,
			c.name, r.name, r.email, p.name,
			(SELECT COUNT(*) FROM images i WHERE i.news_id = n.id),
			(SELECT COUNT(*) FROM summaries s WHERE s.news_id = n.id)
		FROM news n
		JOIN categories c ON c.id = n.category_id
		JOIN reporters r ON r.id = n.reporter_id
		LEFT JOIN publishers p ON p.id = n.publisher_id
		WHERE n.id = ?`

	row := q.pool.QueryRowContext(ctx, query, newsID)
	detail, err := scanNewsDetail(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("news %d: %w", newsID, ErrNotFound)
	}
	if err != nil {
		return nil, newError("select", models.TableNews, err)
	}
	return detail, nil
}

// CountRows returns the number of rows in table
func (q *Queries) CountRows(ctx context.Context, table string) (int64, error) {
	if _, ok := models.Columns[table]; !ok {
		return 0, &Error{Kind: KindUnknownIdentifier, Op: "count", Table: table, Err: ErrUnknownTable}
	}

	var n int64
	row := q.pool.QueryRowContext(ctx, "SELECT COUNT(*) FROM `"+table+"`")
	if err := row.Scan(&n); err != nil {
		return 0, newError("count", table, err)
	}
	return n, nil
}

// TableCounts returns row counts for every table, keyed by table name
func (q *Queries) TableCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(models.Tables))
	for _, table := range models.Tables {
		n, err := q.CountRows(ctx, table)
		if err != nil {
			return nil, err
		}
		counts[table] = n
	}
	return counts, nil
}
