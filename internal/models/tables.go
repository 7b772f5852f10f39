package models

// Table names, in the order rows must be created so foreign keys resolve
const (
	TableCategories = "categories"
	TableReporters  = "reporters"
	TablePublishers = "publishers"
	TableNews       = "news"
	TableImages     = "images"
	TableSummaries  = "summaries"
)

// Tables lists every table newsdb writes to, parents before children
var Tables = []string{
	TableCategories,
	TableReporters,
	TablePublishers,
	TableNews,
	TableImages,
	TableSummaries,
}

// Columns lists the insertable columns of each table, in statement order
var Columns = map[string][]string{
	TableCategories: {"name", "description"},
	TableReporters:  {"name", "email"},
	TablePublishers: {"name", "email", "phone_number", "head_office_address", "facebook", "twitter"},
	TableNews:       {"category_id", "reporter_id", "publisher_id", "datetime", "title", "body", "link"},
	TableImages:     {"news_id", "image_url"},
	TableSummaries:  {"news_id", "summary_text"},
}
