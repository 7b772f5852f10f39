package models

// Publisher is the outlet a news item appeared in.
// Facebook and Twitter are optional handles; empty values are stored as NULL.
type Publisher struct {
	ID                int64  `db:"id" json:"id" yaml:"-"`
	Name              string `db:"name" json:"name" yaml:"name" validate:"required"`
	Email             string `db:"email" json:"email" yaml:"email" validate:"required"`
	PhoneNumber       int64  `db:"phone_number" json:"phone_number" yaml:"phone_number" validate:"required"`
	HeadOfficeAddress string `db:"head_office_address" json:"head_office_address" yaml:"head_office_address" validate:"required"`
	Facebook          string `db:"facebook" json:"facebook" yaml:"facebook"`
	Twitter           string `db:"twitter" json:"twitter" yaml:"twitter"`
}
