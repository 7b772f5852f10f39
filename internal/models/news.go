package models

import (
	"time"
)

// News is a single article, linked to its category, reporter and publisher
type News struct {
	ID          int64     `db:"id" json:"id" yaml:"-"`
	CategoryID  int64     `db:"category_id" json:"category_id" yaml:"category_id" validate:"required"`
	ReporterID  int64     `db:"reporter_id" json:"reporter_id" yaml:"reporter_id" validate:"required"`
	PublisherID int64     `db:"publisher_id" json:"publisher_id" yaml:"publisher_id" validate:"required"`
	Datetime    time.Time `db:"datetime" json:"datetime" yaml:"datetime" validate:"required"`
	Title       string    `db:"title" json:"title" yaml:"title" validate:"required"`
	Body        string    `db:"body" json:"body" yaml:"body" validate:"required"`
	Link        string    `db:"link" json:"link" yaml:"link" validate:"required"`
}

// Image is a picture attached to a news item
type Image struct {
	ID       int64  `db:"id" json:"id" yaml:"-"`
	NewsID   int64  `db:"news_id" json:"news_id" yaml:"news_id" validate:"required"`
	ImageURL string `db:"image_url" json:"image_url" yaml:"image_url" validate:"required"`
}

// Summary is a short text digest of a news item
type Summary struct {
	ID          int64  `db:"id" json:"id" yaml:"-"`
	NewsID      int64  `db:"news_id" json:"news_id" yaml:"news_id" validate:"required"`
	SummaryText string `db:"summary_text" json:"summary_text" yaml:"summary_text" validate:"required"`
}

// NewsDetail is a news row with its foreign keys resolved
type NewsDetail struct {
	News

	CategoryName  string `db:"category_name" json:"category_name"`
	ReporterName  string `db:"reporter_name" json:"reporter_name"`
	ReporterEmail string `db:"reporter_email" json:"reporter_email"`
	PublisherName string `db:"publisher_name" json:"publisher_name"` // empty if the publisher row is missing
	ImageCount    int    `db:"image_count" json:"image_count"`
	SummaryCount  int    `db:"summary_count" json:"summary_count"`
}
