package seed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willfong/newsdb/internal/models"
)

// fakeInserter hands out sequential ids per table and fails any row whose
// name or title is listed in failOn
type fakeInserter struct {
	nextID map[string]int64
	failOn map[string]bool

	categories []models.Category
	reporters  []models.Reporter
	publishers []models.Publisher
	news       []models.News
	images     []models.Image
	summaries  []models.Summary
}

var errBoom = errors.New("boom")

func newFakeInserter(failOn ...string) *fakeInserter {
	f := &fakeInserter{nextID: map[string]int64{}, failOn: map[string]bool{}}
	for _, name := range failOn {
		f.failOn[name] = true
	}
	return f
}

func (f *fakeInserter) id(table, name string) (int64, error) {
	if f.failOn[name] {
		return 0, errBoom
	}
	f.nextID[table]++
	return f.nextID[table] * 10, nil
}

func (f *fakeInserter) InsertCategory(_ context.Context, c *models.Category) (int64, error) {
	id, err := f.id(models.TableCategories, c.Name)
	if err == nil {
		c.ID = id
		f.categories = append(f.categories, *c)
	}
	return id, err
}

func (f *fakeInserter) InsertReporter(_ context.Context, r *models.Reporter) (int64, error) {
	id, err := f.id(models.TableReporters, r.Name)
	if err == nil {
		r.ID = id
		f.reporters = append(f.reporters, *r)
	}
	return id, err
}

func (f *fakeInserter) InsertPublisher(_ context.Context, p *models.Publisher) (int64, error) {
	id, err := f.id(models.TablePublishers, p.Name)
	if err == nil {
		p.ID = id
		f.publishers = append(f.publishers, *p)
	}
	return id, err
}

func (f *fakeInserter) InsertNews(_ context.Context, n *models.News) (int64, error) {
	id, err := f.id(models.TableNews, n.Title)
	if err == nil {
		n.ID = id
		f.news = append(f.news, *n)
	}
	return id, err
}

func (f *fakeInserter) InsertImage(_ context.Context, img *models.Image) (int64, error) {
	id, err := f.id(models.TableImages, img.ImageURL)
	if err == nil {
		img.ID = id
		f.images = append(f.images, *img)
	}
	return id, err
}

func (f *fakeInserter) InsertSummary(_ context.Context, s *models.Summary) (int64, error) {
	id, err := f.id(models.TableSummaries, s.SummaryText)
	if err == nil {
		s.ID = id
		f.summaries = append(f.summaries, *s)
	}
	return id, err
}

const planYAML = `
categories:
  - key: politics
    name: Politics
    description: All news related to politics
  - key: sports
    name: Sports
reporters:
  - key: jonny
    name: jonny
    email: jonny@mail.com
publishers:
  - key: star
    name: The Daily Star
    email: info@thedailystar.net
    phone_number: 8809610222222
    head_office_address: Dhaka
news:
  - key: cricket
    category: sports
    reporter: jonny
    publisher: star
    datetime: 2024-05-08 23:29:00
    title: Hyderabad win
    body: Openers smoked half-centuries.
    link: https://example.com/cricket
  - category_id: 4
    reporter_id: 4
    publisher_id: 1
    datetime: 2024-05-09 08:00:00
    title: Literal ids
    body: Uses existing rows.
    link: https://example.com/literal
images:
  - news: cricket
    image_url: https://example.com/cricket.jpg
summaries:
  - news: cricket
    summary_text: Hyderabad beat Lucknow by 10 wickets.
  - news_id: 2
    summary_text: A weather bulletin.
`

func mustLoad(t *testing.T, doc string) *Plan {
	t.Helper()
	p, err := LoadPlan(strings.NewReader(doc))
	require.NoError(t, err)
	return p
}

func TestLoadPlan(t *testing.T) {
	p := mustLoad(t, planYAML)

	assert.Equal(t, 9, p.Len())
	require.Len(t, p.News, 2)
	assert.Equal(t, "sports", p.News[0].Category)
	assert.Equal(t, time.Date(2024, 5, 8, 23, 29, 0, 0, time.UTC), p.News[0].Datetime)
	assert.Equal(t, int64(4), p.News[1].CategoryID)
	assert.Equal(t, int64(8809610222222), p.Publishers[0].PhoneNumber)
	assert.Equal(t, int64(2), p.Summaries[1].NewsID)
}

func TestLoadPlanRejectsUnknownField(t *testing.T) {
	_, err := LoadPlan(strings.NewReader("categories:\n  - nmae: Politics\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nmae")
}

func TestLoadPlanEmpty(t *testing.T) {
	_, err := LoadPlan(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "duplicate key",
			doc: `
categories:
  - {key: a, name: A}
  - {key: a, name: B}
`,
			want: []string{`categories[1]: duplicate key "a"`},
		},
		{
			name: "undefined reference",
			doc: `
news:
  - {category: nope, reporter_id: 1, publisher_id: 1, title: t}
images:
  - {news: missing, image_url: x}
`,
			want: []string{
				`news[0]: category "nope" is not defined`,
				`images[0]: news "missing" is not defined`,
			},
		},
		{
			name: "neither key nor id",
			doc: `
summaries:
  - {summary_text: orphan}
`,
			want: []string{`summaries[0]: news key or news_id is required`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPlan(strings.NewReader(tt.doc))
			require.ErrorIs(t, err, ErrInvalidPlan)
			for _, w := range tt.want {
				assert.Contains(t, err.Error(), w)
			}
		})
	}
}

func TestDefaultPlan(t *testing.T) {
	p := DefaultPlan()
	require.NoError(t, p.Validate())

	require.Len(t, p.Categories, 1)
	assert.Equal(t, "Politics", p.Categories[0].Name)
	assert.Equal(t, "All news related to politics", p.Categories[0].Description)
	require.Len(t, p.Reporters, 1)
	assert.Equal(t, "jonny", p.Reporters[0].Name)
	require.Len(t, p.News, 1)
	assert.Equal(t, time.Date(2024, 5, 8, 23, 29, 0, 0, time.UTC), p.News[0].Datetime)
	assert.Len(t, p.Images, 1)
	assert.Len(t, p.Summaries, 1)
}

func TestRunResolvesKeys(t *testing.T) {
	ins := newFakeInserter()
	var seen []EntryResult

	report, err := Run(context.Background(), ins, mustLoad(t, planYAML), func(r EntryResult) {
		seen = append(seen, r)
	})
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Len(t, seen, 9)

	// Sports is the second category, so its id is 20
	want := []models.News{
		{ID: 10, CategoryID: 20, ReporterID: 10, PublisherID: 10, Title: "Hyderabad win"},
		{ID: 20, CategoryID: 4, ReporterID: 4, PublisherID: 1, Title: "Literal ids"},
	}
	if diff := cmp.Diff(want, ins.news, cmpopts.IgnoreFields(models.News{}, "Datetime", "Body", "Link")); diff != "" {
		t.Errorf("news mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, ins.images, 1)
	assert.Equal(t, int64(10), ins.images[0].NewsID)
	require.Len(t, ins.summaries, 2)
	assert.Equal(t, int64(10), ins.summaries[0].NewsID)
	assert.Equal(t, int64(2), ins.summaries[1].NewsID)

	assert.Equal(t, map[string]TableSummary{
		models.TableCategories: {Inserted: 2},
		models.TableReporters:  {Inserted: 1},
		models.TablePublishers: {Inserted: 1},
		models.TableNews:       {Inserted: 2},
		models.TableImages:     {Inserted: 1},
		models.TableSummaries:  {Inserted: 2},
	}, report.Summary())
}

func TestRunContinuesAfterFailureAndSkipsDependents(t *testing.T) {
	ins := newFakeInserter("Sports")

	report, err := Run(context.Background(), ins, mustLoad(t, planYAML), nil)
	require.NoError(t, err)
	assert.False(t, report.OK())

	// The failed category takes down the cricket item and its image and summary,
	// while the literal-id news item and its summary still go in
	assert.Equal(t, map[string]TableSummary{
		models.TableCategories: {Inserted: 1, Failed: 1},
		models.TableReporters:  {Inserted: 1},
		models.TablePublishers: {Inserted: 1},
		models.TableNews:       {Inserted: 1, Skipped: 1},
		models.TableImages:     {Skipped: 1},
		models.TableSummaries:  {Inserted: 1, Skipped: 1},
	}, report.Summary())

	failures := report.Failures()
	require.Len(t, failures, 4)
	assert.Equal(t, StatusFailed, failures[0].Status)
	assert.ErrorIs(t, failures[0].Err, errBoom)
	for _, f := range failures[1:] {
		assert.Equal(t, StatusSkipped, f.Status)
		assert.ErrorIs(t, f.Err, ErrDependencyFailed)
	}

	require.Len(t, ins.news, 1)
	assert.Equal(t, "Literal ids", ins.news[0].Title)
}

func TestRunInvalidPlanInsertsNothing(t *testing.T) {
	ins := newFakeInserter()
	plan := &Plan{Images: []ImageEntry{{News: "ghost"}}}

	report, err := Run(context.Background(), ins, plan, nil)
	require.ErrorIs(t, err, ErrInvalidPlan)
	assert.Nil(t, report)
	assert.Empty(t, ins.nextID)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, newFakeInserter(), mustLoad(t, planYAML), nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)
}
