package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/willfong/newsdb/internal/database"
	"github.com/willfong/newsdb/internal/models"
)

// Accepted --datetime layouts, tried in order
var datetimeLayouts = []string{
	time.RFC3339,
	time.DateTime,
	"2006-01-02 15:04",
	time.DateOnly,
}

var (
	insCategory  models.Category
	insReporter  models.Reporter
	insPublisher models.Publisher
	insNews      models.News
	insDatetime  string
	insImage     models.Image
	insSummary   models.Summary
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert a single record",
	Long: `Insert one row into one table and commit it.

Parent rows must exist before children reference them:
categories, reporters and publishers before news; news before images
and summaries. The new row id is printed on success.`,
}

var insertCategoryCmd = &cobra.Command{
	Use:     "category",
	Short:   "Insert a news category",
	Example: `  newsdb insert category --name Politics --description "All news related to politics"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInsert(cmd, models.TableCategories, func(ctx context.Context, q *database.Queries) (int64, error) {
			return q.InsertCategory(ctx, &insCategory)
		})
	},
}

var insertReporterCmd = &cobra.Command{
	Use:     "reporter",
	Short:   "Insert a reporter",
	Example: `  newsdb insert reporter --name jonny --email jonny@mail.com`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInsert(cmd, models.TableReporters, func(ctx context.Context, q *database.Queries) (int64, error) {
			return q.InsertReporter(ctx, &insReporter)
		})
	},
}

var insertPublisherCmd = &cobra.Command{
	Use:   "publisher",
	Short: "Insert a publisher",
	Example: `  newsdb insert publisher --name "The Daily Star" --email info@thedailystar.net \
    --phone-number 8809610222222 --head-office-address "Dhaka" --twitter dailystarnews`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInsert(cmd, models.TablePublishers, func(ctx context.Context, q *database.Queries) (int64, error) {
			return q.InsertPublisher(ctx, &insPublisher)
		})
	},
}

var insertNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Insert a news article",
	Example: `  newsdb insert news --category-id 1 --reporter-id 1 --publisher-id 1 \
    --datetime "2024-05-08 23:29" --title "..." --body "..." --link https://...`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dt, err := parseDatetime(insDatetime)
		if err != nil {
			return fmt.Errorf("invalid --datetime %q: %w", insDatetime, err)
		}
		insNews.Datetime = dt
		return runInsert(cmd, models.TableNews, func(ctx context.Context, q *database.Queries) (int64, error) {
			return q.InsertNews(ctx, &insNews)
		})
	},
}

var insertImageCmd = &cobra.Command{
	Use:     "image",
	Short:   "Attach an image URL to a news article",
	Example: `  newsdb insert image --news-id 1 --image-url https://example.com/photo.jpg`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInsert(cmd, models.TableImages, func(ctx context.Context, q *database.Queries) (int64, error) {
			return q.InsertImage(ctx, &insImage)
		})
	},
}

var insertSummaryCmd = &cobra.Command{
	Use:     "summary",
	Short:   "Attach a summary to a news article",
	Example: `  newsdb insert summary --news-id 1 --text "Hyderabad beat Lucknow by 10 wickets."`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInsert(cmd, models.TableSummaries, func(ctx context.Context, q *database.Queries) (int64, error) {
			return q.InsertSummary(ctx, &insSummary)
		})
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
	insertCmd.AddCommand(
		insertCategoryCmd,
		insertReporterCmd,
		insertPublisherCmd,
		insertNewsCmd,
		insertImageCmd,
		insertSummaryCmd,
	)

	f := insertCategoryCmd.Flags()
	f.StringVar(&insCategory.Name, "name", "", "category name (required)")
	f.StringVar(&insCategory.Description, "description", "", "category description")
	markRequired(insertCategoryCmd, "name")

	f = insertReporterCmd.Flags()
	f.StringVar(&insReporter.Name, "name", "", "reporter name (required)")
	f.StringVar(&insReporter.Email, "email", "", "reporter email (required)")
	markRequired(insertReporterCmd, "name", "email")

	f = insertPublisherCmd.Flags()
	f.StringVar(&insPublisher.Name, "name", "", "publisher name (required)")
	f.StringVar(&insPublisher.Email, "email", "", "publisher email (required)")
	f.Int64Var(&insPublisher.PhoneNumber, "phone-number", 0, "publisher phone number, digits only (required)")
	f.StringVar(&insPublisher.HeadOfficeAddress, "head-office-address", "", "head office address (required)")
	f.StringVar(&insPublisher.Facebook, "facebook", "", "facebook page")
	f.StringVar(&insPublisher.Twitter, "twitter", "", "twitter handle")
	markRequired(insertPublisherCmd, "name", "email", "phone-number", "head-office-address")

	f = insertNewsCmd.Flags()
	f.Int64Var(&insNews.CategoryID, "category-id", 0, "category id (required)")
	f.Int64Var(&insNews.ReporterID, "reporter-id", 0, "reporter id (required)")
	f.Int64Var(&insNews.PublisherID, "publisher-id", 0, "publisher id (required)")
	f.StringVar(&insDatetime, "datetime", "", `publication time, e.g. "2024-05-08 23:29" (required)`)
	f.StringVar(&insNews.Title, "title", "", "headline (required)")
	f.StringVar(&insNews.Body, "body", "", "article text (required)")
	f.StringVar(&insNews.Link, "link", "", "source URL (required)")
	markRequired(insertNewsCmd, "category-id", "reporter-id", "publisher-id", "datetime", "title", "body", "link")

	f = insertImageCmd.Flags()
	f.Int64Var(&insImage.NewsID, "news-id", 0, "news id (required)")
	f.StringVar(&insImage.ImageURL, "image-url", "", "image URL (required)")
	markRequired(insertImageCmd, "news-id", "image-url")

	f = insertSummaryCmd.Flags()
	f.Int64Var(&insSummary.NewsID, "news-id", 0, "news id (required)")
	f.StringVar(&insSummary.SummaryText, "text", "", "summary text (required)")
	markRequired(insertSummaryCmd, "news-id", "text")
}

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

// runInsert connects, runs one insert and reports the new id
func runInsert(cmd *cobra.Command, table string, insert func(context.Context, *database.Queries) (int64, error)) error {
	ctx := cmd.Context()
	u := newUI(cmd)

	pool, err := connect(ctx, u)
	if err != nil {
		return err
	}
	defer pool.Close()

	id, err := insert(ctx, database.NewQueries(pool))
	if err != nil {
		return err
	}

	u.Println(u.Success(fmt.Sprintf("Inserted into %s (id %d)", table, id)))
	return nil
}

// parseDatetime accepts the layouts in datetimeLayouts. Values without an
// offset are read as UTC, the driver's session time zone.
func parseDatetime(s string) (time.Time, error) {
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("want YYYY-MM-DD HH:MM[:SS] or RFC 3339")
}
