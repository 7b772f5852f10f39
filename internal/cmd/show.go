package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/willfong/newsdb/internal/database"
	"github.com/willfong/newsdb/internal/models"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Read back inserted records",
}

var showNewsCmd = &cobra.Command{
	Use:   "news <id>",
	Short: "Show a news article with its category, reporter and publisher",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid news id %q", args[0])
		}

		ctx := cmd.Context()
		u := newUI(cmd)
		pool, err := connect(ctx, u)
		if err != nil {
			return err
		}
		defer pool.Close()

		n, err := database.NewQueries(pool).GetNewsDetail(ctx, id)
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("news %d not found", id)
		}
		if err != nil {
			return err
		}

		publisher := n.PublisherName
		if publisher == "" {
			publisher = u.Muted(fmt.Sprintf("(missing publisher %d)", n.PublisherID))
		}

		u.Println(u.Header(n.Title))
		u.Println(u.KeyValue("ID", strconv.FormatInt(n.ID, 10)))
		u.Println(u.KeyValue("Published", n.Datetime.Format(time.DateTime)))
		u.Println(u.KeyValue("Category", n.CategoryName))
		u.Println(u.KeyValue("Reporter", fmt.Sprintf("%s <%s>", n.ReporterName, n.ReporterEmail)))
		u.Println(u.KeyValue("Publisher", publisher))
		u.Println(u.KeyValue("Link", n.Link))
		u.Println(u.KeyValue("Images", strconv.Itoa(n.ImageCount)))
		u.Println(u.KeyValue("Summaries", strconv.Itoa(n.SummaryCount)))
		u.Println()
		u.Println(n.Body)
		return nil
	},
}

var showCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show the row count of every table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		u := newUI(cmd)
		pool, err := connect(ctx, u)
		if err != nil {
			return err
		}
		defer pool.Close()

		counts, err := database.NewQueries(pool).TableCounts(ctx)
		if err != nil {
			return err
		}
		for _, table := range models.Tables {
			u.Println(u.KeyValue(table, strconv.FormatInt(counts[table], 10)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.AddCommand(showNewsCmd, showCountsCmd)
}
