// Package seed loads YAML seed plans and inserts them in dependency order.
//
// FILE: plan.go
// PURPOSE: Seed plan types, YAML loading and validation.
//
// A plan lists rows per table. Parent rows may carry a key; child rows refer
// to a parent either by that key or by a literal id already in the database.
//
// RELATED FILES:
// - run.go: Inserts a plan and reports per-entry outcomes
// - generate.go: Synthetic plans for load testing
// - sample.yaml: Default plan
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/willfong/newsdb/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleYAML []byte

// ErrInvalidPlan is wrapped by every plan validation failure
var ErrInvalidPlan = errors.New("invalid seed plan")

// Plan is the full set of rows to insert
type Plan struct {
	Categories []CategoryEntry  `yaml:"categories"`
	Reporters  []ReporterEntry  `yaml:"reporters"`
	Publishers []PublisherEntry `yaml:"publishers"`
	News       []NewsEntry      `yaml:"news"`
	Images     []ImageEntry     `yaml:"images"`
	Summaries  []SummaryEntry   `yaml:"summaries"`
}

// CategoryEntry is a category row with an optional key
type CategoryEntry struct {
	Key             string `yaml:"key,omitempty"`
	models.Category `yaml:",inline"`
}

// ReporterEntry is a reporter row with an optional key
type ReporterEntry struct {
	Key             string `yaml:"key,omitempty"`
	models.Reporter `yaml:",inline"`
}

// PublisherEntry is a publisher row with an optional key
type PublisherEntry struct {
	Key              string `yaml:"key,omitempty"`
	models.Publisher `yaml:",inline"`
}

// NewsEntry is a news row. Category, Reporter and Publisher are keys of
// entries in the same plan; when set they take precedence over literal ids.
type NewsEntry struct {
	Key         string `yaml:"key,omitempty"`
	Category    string `yaml:"category,omitempty"`
	Reporter    string `yaml:"reporter,omitempty"`
	Publisher   string `yaml:"publisher,omitempty"`
	models.News `yaml:",inline"`
}

// ImageEntry is an image row referring to news by key or news_id
type ImageEntry struct {
	News         string `yaml:"news,omitempty"`
	models.Image `yaml:",inline"`
}

// SummaryEntry is a summary row referring to news by key or news_id
type SummaryEntry struct {
	News           string `yaml:"news,omitempty"`
	models.Summary `yaml:",inline"`
}

// LoadPlan decodes a plan from r. Unknown fields are rejected.
func LoadPlan(r io.Reader) (*Plan, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidPlan)
		}
		return nil, fmt.Errorf("failed to decode seed plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPlanFile reads a plan from path
func LoadPlanFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed plan: %w", err)
	}
	defer f.Close()

	p, err := LoadPlan(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// DefaultPlan returns the embedded sample plan
func DefaultPlan() *Plan {
	var p Plan
	if err := yaml.Unmarshal(sampleYAML, &p); err != nil {
		panic(fmt.Sprintf("seed: embedded sample.yaml is invalid: %v", err))
	}
	return &p
}

// WriteYAML encodes the plan in the format LoadPlan reads
func (p *Plan) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode seed plan: %w", err)
	}
	return enc.Close()
}

// Len returns the number of rows in the plan
func (p *Plan) Len() int {
	return len(p.Categories) + len(p.Reporters) + len(p.Publishers) +
		len(p.News) + len(p.Images) + len(p.Summaries)
}

// Validate checks that keys are unique per table and that every reference
// names a key defined in the plan or falls back to a literal id.
// Required column values are left to the inserter.
func (p *Plan) Validate() error {
	var errs []error

	categories := collectKeys(models.TableCategories, p.Categories, func(e CategoryEntry) string { return e.Key }, &errs)
	reporters := collectKeys(models.TableReporters, p.Reporters, func(e ReporterEntry) string { return e.Key }, &errs)
	publishers := collectKeys(models.TablePublishers, p.Publishers, func(e PublisherEntry) string { return e.Key }, &errs)
	news := collectKeys(models.TableNews, p.News, func(e NewsEntry) string { return e.Key }, &errs)

	for i, e := range p.News {
		checkRef(&errs, models.TableNews, i, "category", e.Category, e.CategoryID, categories)
		checkRef(&errs, models.TableNews, i, "reporter", e.Reporter, e.ReporterID, reporters)
		checkRef(&errs, models.TableNews, i, "publisher", e.Publisher, e.PublisherID, publishers)
	}
	for i, e := range p.Images {
		checkRef(&errs, models.TableImages, i, "news", e.News, e.NewsID, news)
	}
	for i, e := range p.Summaries {
		checkRef(&errs, models.TableSummaries, i, "news", e.News, e.NewsID, news)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidPlan, errors.Join(errs...))
}

func collectKeys[E any](table string, entries []E, key func(E) string, errs *[]error) map[string]bool {
	keys := make(map[string]bool, len(entries))
	for i, e := range entries {
		k := key(e)
		if k == "" {
			continue
		}
		if keys[k] {
			*errs = append(*errs, fmt.Errorf("%s[%d]: duplicate key %q", table, i, k))
			continue
		}
		keys[k] = true
	}
	return keys
}

func checkRef(errs *[]error, table string, i int, field, ref string, id int64, keys map[string]bool) {
	switch {
	case ref != "" && !keys[ref]:
		*errs = append(*errs, fmt.Errorf("%s[%d]: %s %q is not defined", table, i, field, ref))
	case ref == "" && id == 0:
		*errs = append(*errs, fmt.Errorf("%s[%d]: %s key or %s_id is required", table, i, field, field))
	}
}
