package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/willfong/newsdb/internal/database"
	"github.com/willfong/newsdb/internal/models"
	"github.com/willfong/newsdb/internal/seed"
	"github.com/willfong/newsdb/internal/ui"
	"github.com/willfong/newsdb/internal/utils"
)

var (
	seedFile     string
	seedGenerate int
	seedRandSeed int64
	seedEnd      string
	seedDump     bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a YAML seed plan",
	Long: `Insert every row of a seed plan, parents before children.

Rows may carry a key; news, images and summaries refer to their parents
by key (resolved to the ids returned by earlier inserts) or by a literal
id that already exists in the database.

A failed row does not stop the run. Rows that refer to a failed row by
key are skipped. The command exits non-zero if any row was not inserted.

Without --file the built-in sample plan is used: one category, reporter,
publisher and news article with an image and a summary.

--generate N builds a synthetic plan of N articles for load testing.
The same --rand-seed reproduces the same plan; unique names carry a tag
derived from the seed so repeated runs do not collide. Articles are dated
in the 30 days before --end, which defaults to a fixed date. --dump prints
the plan as YAML instead of inserting it.

Plan format:
  categories:
    - key: politics
      name: Politics
      description: All news related to politics
  news:
    - category: politics      # or category_id: 4
      reporter_id: 1
      publisher_id: 1
      datetime: 2024-05-08 23:29:00
      title: ...
      body: ...
      link: https://...
  images:
    - news_id: 1
      image_url: https://...`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed plan (default: built-in sample)")
	seedCmd.Flags().IntVar(&seedGenerate, "generate", 0, "generate a synthetic plan with this many articles")
	seedCmd.Flags().Int64Var(&seedRandSeed, "rand-seed", 0, "seed for --generate (0 = random)")
	seedCmd.Flags().StringVar(&seedEnd, "end", "", "latest article datetime for --generate (default "+seed.DefaultEnd.Format(time.DateTime)+")")
	seedCmd.Flags().BoolVar(&seedDump, "dump", false, "print the plan as YAML and exit without connecting")
	seedCmd.MarkFlagsMutuallyExclusive("file", "generate")
}

// loadSeedPlan returns the plan selected by flags and a description of it
func loadSeedPlan() (*seed.Plan, string, error) {
	switch {
	case seedFile != "":
		plan, err := seed.LoadPlanFile(seedFile)
		return plan, seedFile, err
	case seedGenerate > 0:
		rng := utils.NewRandom(seedRandSeed)
		opts := seed.DefaultGenerateOptions(seedGenerate)
		opts.Tag = strconv.FormatUint(rng.Seed(), 36)
		if seedEnd != "" {
			end, err := parseDatetime(seedEnd)
			if err != nil {
				return nil, "", fmt.Errorf("invalid --end %q: %w", seedEnd, err)
			}
			opts.End = end
		}
		return seed.Generate(rng, opts), fmt.Sprintf("generated (--rand-seed %d)", int64(rng.Seed())), nil
	case seedGenerate < 0:
		return nil, "", fmt.Errorf("--generate must be positive, got %d", seedGenerate)
	default:
		return seed.DefaultPlan(), "built-in sample", nil
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	u := newUI(cmd)

	plan, source, err := loadSeedPlan()
	if err != nil {
		return err
	}
	if seedDump {
		return plan.WriteYAML(cmd.OutOrStdout())
	}

	u.Println(u.Header("newsdb seed"))
	u.Println(u.KeyValue("Plan", source))
	u.Println(u.KeyValue("Entries", strconv.Itoa(plan.Len())))
	u.Println()

	pool, err := connect(ctx, u)
	if err != nil {
		return err
	}
	defer pool.Close()

	q := database.NewQueries(pool)
	bar := u.NewProgressBar("Seeding", plan.Len())
	report, err := seed.Run(ctx, q, plan, func(r seed.EntryResult) {
		bar.Step(r.Status == seed.StatusInserted)
	})
	bar.Done()
	if err != nil {
		return err
	}

	u.Println()
	summary := report.Summary()
	for _, table := range models.Tables {
		s, ok := summary[table]
		if !ok {
			continue
		}
		status := ui.StatusSuccess
		switch {
		case s.Failed > 0:
			status = ui.StatusError
		case s.Skipped > 0:
			status = ui.StatusWarning
		}
		u.Println(u.TableRow(table, fmt.Sprintf("%d inserted, %d failed, %d skipped", s.Inserted, s.Failed, s.Skipped), status))
	}
	for _, f := range report.Failures() {
		u.Println(u.Muted(fmt.Sprintf("    %s[%d] %s: %v", f.Table, f.Index, f.Status, f.Err)))
	}

	items := []ui.KV{
		{Key: "Status", Value: "Success"},
		{Key: "Entries", Value: strconv.Itoa(len(report.Results))},
		{Key: "Duration", Value: report.Duration.Round(time.Millisecond).String()},
	}
	failures := len(report.Failures())
	if failures > 0 {
		items[0].Value = fmt.Sprintf("Failed (%d not inserted)", failures)
	}

	// Row totals are informational; a failed count does not fail the run
	if counts, err := q.TableCounts(ctx); err == nil {
		for _, table := range models.Tables {
			items = append(items, ui.KV{Key: "Rows in " + table, Value: strconv.FormatInt(counts[table], 10)})
		}
	}

	stats := pool.Stats()
	items = append(items,
		ui.KV{Key: "Queries", Value: fmt.Sprintf("%d (%d failed)", stats.TotalQueries, stats.FailedQueries)},
		ui.KV{Key: "Avg latency", Value: stats.AvgLatency.String()},
	)
	u.Println(u.SummaryBox("Seed Complete", items))

	if failures > 0 {
		return fmt.Errorf("%d of %d seed entries were not inserted", failures, len(report.Results))
	}
	return nil
}
