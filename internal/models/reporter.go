package models

// Reporter is the author of a news item
type Reporter struct {
	ID    int64  `db:"id" json:"id" yaml:"-"`
	Name  string `db:"name" json:"name" yaml:"name" validate:"required"`
	Email string `db:"email" json:"email" yaml:"email" validate:"required"`
}
