// Package seed loads YAML seed plans and inserts them in dependency order.
//
// FILE: run.go
// PURPOSE: Inserts a plan table by table, parents before children, and
// records the outcome of every entry.
//
// A failed insert is recorded and the run continues with the next entry.
// Entries that refer by key to a failed entry are skipped rather than sent
// with a bogus foreign key.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/willfong/newsdb/internal/models"
)

// ErrDependencyFailed marks entries skipped because a referenced entry failed
var ErrDependencyFailed = errors.New("referenced entry was not inserted")

// Inserter is the set of typed inserts a plan needs.
// *database.Queries satisfies it.
type Inserter interface {
	InsertCategory(ctx context.Context, c *models.Category) (int64, error)
	InsertReporter(ctx context.Context, r *models.Reporter) (int64, error)
	InsertPublisher(ctx context.Context, p *models.Publisher) (int64, error)
	InsertNews(ctx context.Context, n *models.News) (int64, error)
	InsertImage(ctx context.Context, img *models.Image) (int64, error)
	InsertSummary(ctx context.Context, s *models.Summary) (int64, error)
}

// Status is the outcome of a single entry
type Status string

const (
	StatusInserted Status = "inserted"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
)

// EntryResult describes what happened to one plan entry
type EntryResult struct {
	Table  string
	Index  int
	Key    string
	ID     int64
	Status Status
	Err    error
}

// Observer is called after every entry. It may be nil.
type Observer func(EntryResult)

// TableSummary counts outcomes for one table
type TableSummary struct {
	Inserted int
	Failed   int
	Skipped  int
}

// Report holds the results of a run
type Report struct {
	Results  []EntryResult
	Duration time.Duration
}

// Summary returns per-table outcome counts, keyed by table name
func (r *Report) Summary() map[string]TableSummary {
	out := make(map[string]TableSummary, len(models.Tables))
	for _, res := range r.Results {
		s := out[res.Table]
		switch res.Status {
		case StatusInserted:
			s.Inserted++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
		out[res.Table] = s
	}
	return out
}

// Failures returns the failed and skipped entries, in run order
func (r *Report) Failures() []EntryResult {
	var out []EntryResult
	for _, res := range r.Results {
		if res.Status != StatusInserted {
			out = append(out, res)
		}
	}
	return out
}

// OK reports whether every entry was inserted
func (r *Report) OK() bool {
	return len(r.Failures()) == 0
}

// runner carries key-to-id state across tables
type runner struct {
	ins    Inserter
	obs    Observer
	log    *zerolog.Logger
	report *Report

	ids map[string]map[string]int64 // table -> key -> id
}

// Run inserts plan through ins. The plan is validated first; an invalid plan
// inserts nothing. Per-entry failures do not stop the run and are returned in
// the Report. A non-nil error means the run did not complete (invalid plan or
// cancelled context).
//
// The logger is taken from ctx (zerolog.Ctx).
func Run(ctx context.Context, ins Inserter, plan *Plan, obs Observer) (*Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	r := &runner{
		ins:    ins,
		obs:    obs,
		log:    zerolog.Ctx(ctx),
		report: &Report{Results: make([]EntryResult, 0, plan.Len())},
		ids:    make(map[string]map[string]int64),
	}

	steps := []func(context.Context, *Plan) error{
		r.categories,
		r.reporters,
		r.publishers,
		r.news,
		r.images,
		r.summaries,
	}
	for _, step := range steps {
		if err := step(ctx, plan); err != nil {
			r.report.Duration = time.Since(start)
			return r.report, err
		}
	}

	r.report.Duration = time.Since(start)
	r.log.Info().
		Int("entries", len(r.report.Results)).
		Int("failed", len(r.report.Failures())).
		Dur("duration", r.report.Duration).
		Msg("seed run complete")
	return r.report, nil
}

func (r *runner) categories(ctx context.Context, p *Plan) error {
	for i, e := range p.Categories {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := e.Category
		id, err := r.ins.InsertCategory(ctx, &c)
		r.record(models.TableCategories, i, e.Key, id, err)
	}
	return nil
}

func (r *runner) reporters(ctx context.Context, p *Plan) error {
	for i, e := range p.Reporters {
		if err := ctx.Err(); err != nil {
			return err
		}
		rep := e.Reporter
		id, err := r.ins.InsertReporter(ctx, &rep)
		r.record(models.TableReporters, i, e.Key, id, err)
	}
	return nil
}

func (r *runner) publishers(ctx context.Context, p *Plan) error {
	for i, e := range p.Publishers {
		if err := ctx.Err(); err != nil {
			return err
		}
		pub := e.Publisher
		id, err := r.ins.InsertPublisher(ctx, &pub)
		r.record(models.TablePublishers, i, e.Key, id, err)
	}
	return nil
}

func (r *runner) news(ctx context.Context, p *Plan) error {
	for i, e := range p.News {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := e.News

		var err error
		if n.CategoryID, err = r.resolve(models.TableCategories, e.Category, n.CategoryID); err == nil {
			if n.ReporterID, err = r.resolve(models.TableReporters, e.Reporter, n.ReporterID); err == nil {
				n.PublisherID, err = r.resolve(models.TablePublishers, e.Publisher, n.PublisherID)
			}
		}
		if err != nil {
			r.skip(models.TableNews, i, e.Key, err)
			continue
		}

		id, err := r.ins.InsertNews(ctx, &n)
		r.record(models.TableNews, i, e.Key, id, err)
	}
	return nil
}

func (r *runner) images(ctx context.Context, p *Plan) error {
	for i, e := range p.Images {
		if err := ctx.Err(); err != nil {
			return err
		}
		img := e.Image

		var err error
		if img.NewsID, err = r.resolve(models.TableNews, e.News, img.NewsID); err != nil {
			r.skip(models.TableImages, i, "", err)
			continue
		}

		id, err := r.ins.InsertImage(ctx, &img)
		r.record(models.TableImages, i, "", id, err)
	}
	return nil
}

func (r *runner) summaries(ctx context.Context, p *Plan) error {
	for i, e := range p.Summaries {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := e.Summary

		var err error
		if s.NewsID, err = r.resolve(models.TableNews, e.News, s.NewsID); err != nil {
			r.skip(models.TableSummaries, i, "", err)
			continue
		}

		id, err := r.ins.InsertSummary(ctx, &s)
		r.record(models.TableSummaries, i, "", id, err)
	}
	return nil
}

// resolve returns the id for key in table, or fallback when key is empty
func (r *runner) resolve(table, key string, fallback int64) (int64, error) {
	if key == "" {
		return fallback, nil
	}
	if id, ok := r.ids[table][key]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("%w: %s %q", ErrDependencyFailed, table, key)
}

func (r *runner) record(table string, index int, key string, id int64, err error) {
	res := EntryResult{Table: table, Index: index, Key: key, ID: id, Status: StatusInserted}
	if err != nil {
		res.Status = StatusFailed
		res.ID = 0
		res.Err = err
		r.log.Warn().Err(err).Str("table", table).Int("index", index).Str("key", key).Msg("seed entry failed")
	} else if key != "" {
		if r.ids[table] == nil {
			r.ids[table] = make(map[string]int64)
		}
		r.ids[table][key] = id
	}
	r.emit(res)
}

func (r *runner) skip(table string, index int, key string, err error) {
	r.log.Warn().Err(err).Str("table", table).Int("index", index).Str("key", key).Msg("seed entry skipped")
	r.emit(EntryResult{Table: table, Index: index, Key: key, Status: StatusSkipped, Err: err})
}

func (r *runner) emit(res EntryResult) {
	r.report.Results = append(r.report.Results, res)
	if r.obs != nil {
		r.obs(res)
	}
}
