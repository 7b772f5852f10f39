package models

// Category groups news items by topic (e.g. "Politics")
type Category struct {
	ID          int64  `db:"id" json:"id" yaml:"-"`
	Name        string `db:"name" json:"name" yaml:"name" validate:"required"`
	Description string `db:"description" json:"description" yaml:"description"`
}
