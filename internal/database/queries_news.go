// Package database provides the MySQL data-access layer for newsdb.
//
// FILE: queries_news.go
// PURPOSE: News, image and summary inserts. Foreign keys are passed through
// as given; the database enforces that they reference existing rows.
//
// KEY FUNCTIONS:
// - InsertNews: Inserts an article
// - InsertImage: Attaches an image URL to an article
// - InsertSummary: Attaches a summary to an article
//
// RELATED FILES:
// - queries.go: Base Queries struct and InsertRecord
// - queries_read.go: GetNewsDetail reads articles back with resolved keys
package database

import (
	"context"

	"github.com/willfong/newsdb/internal/models"
)

// InsertNews inserts n into news and sets n.ID
func (q *Queries) InsertNews(ctx context.Context, n *models.News) (int64, error) {
	if err := q.checkRequired(models.TableNews, n); err != nil {
		return 0, err
	}

	id, err := q.InsertRecord(ctx, models.TableNews, []Column{
		{"category_id", n.CategoryID},
		{"reporter_id", n.ReporterID},
		{"publisher_id", n.PublisherID},
		{"datetime", n.Datetime},
		{"title", n.Title},
		{"body", n.Body},
		{"link", n.Link},
	})
	if err != nil {
		return 0, err
	}
	n.ID = id
	return id, nil
}

// InsertImage inserts img into images and sets img.ID
func (q *Queries) InsertImage(ctx context.Context, img *models.Image) (int64, error) {
	if err := q.checkRequired(models.TableImages, img); err != nil {
		return 0, err
	}

	id, err := q.InsertRecord(ctx, models.TableImages, []Column{
		{"news_id", img.NewsID},
		{"image_url", img.ImageURL},
	})
	if err != nil {
		return 0, err
	}
	img.ID = id
	return id, nil
}

// InsertSummary inserts s into summaries and sets s.ID
func (q *Queries) InsertSummary(ctx context.Context, s *models.Summary) (int64, error) {
	if err := q.checkRequired(models.TableSummaries, s); err != nil {
		return 0, err
	}

	id, err := q.InsertRecord(ctx, models.TableSummaries, []Column{
		{"news_id", s.NewsID},
		{"summary_text", s.SummaryText},
	})
	if err != nil {
		return 0, err
	}
	s.ID = id
	return id, nil
}
