// Package seed loads YAML seed plans and inserts them in dependency order.
//
// FILE: generate.go
// PURPOSE: Builds synthetic plans of any size for load testing.
//
// The same seed and options always produce the same plan. Names that the
// schema keeps unique carry a run tag so repeated runs against one database
// do not collide.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/willfong/newsdb/internal/models"
	"github.com/willfong/newsdb/internal/utils"
)

// GenerateOptions sizes a synthetic plan
type GenerateOptions struct {
	News       int
	Reporters  int
	Publishers int

	// Chance that an article gets images (1-3) and a summary
	ImageRatio   float64
	SummaryRatio float64

	// Articles are dated within Window before End; zero End means DefaultEnd
	End    time.Time
	Window time.Duration

	// Tag is appended to unique names; empty means no tag
	Tag string
}

// DefaultEnd is the default latest article date of a synthetic plan. It is
// fixed so that a seed alone reproduces a plan.
var DefaultEnd = time.Date(2024, 5, 8, 23, 59, 0, 0, time.UTC)

// DefaultGenerateOptions returns options for n articles
func DefaultGenerateOptions(n int) GenerateOptions {
	return GenerateOptions{
		News:         n,
		Reporters:    max(1, n/10),
		Publishers:   max(1, n/50),
		ImageRatio:   0.8,
		SummaryRatio: 0.6,
		End:          DefaultEnd,
		Window:       30 * 24 * time.Hour,
	}
}

// topic is a category with its relative frequency and headline vocabulary
type topic struct {
	name     string
	weight   int
	subjects []string
	verbs    []string
	objects  []string
}

var topics = []topic{
	{
		name:     "Politics",
		weight:   25,
		subjects: []string{"Parliament", "Opposition", "Cabinet", "Election Commission", "Prime Minister"},
		verbs:    []string{"approves", "rejects", "debates", "announces", "delays"},
		objects:  []string{"new budget", "electoral reform", "tax bill", "coalition talks", "cabinet reshuffle"},
	},
	{
		name:     "Sports",
		weight:   25,
		subjects: []string{"Hyderabad", "Lucknow", "Tigers", "National squad", "Openers"},
		verbs:    []string{"clinch", "crush", "edge past", "stun", "power past"},
		objects:  []string{"Lucknow inside 10 overs", "title rivals", "defending champions", "play-off hopefuls", "visitors"},
	},
	{
		name:     "Business",
		weight:   15,
		subjects: []string{"Central bank", "Exporters", "Stock market", "Garment makers", "Startups"},
		verbs:    []string{"brace for", "report", "warn of", "welcome", "expect"},
		objects:  []string{"rate cut", "record quarter", "slowing demand", "new tariffs", "foreign investment"},
	},
	{
		name:     "Technology",
		weight:   10,
		subjects: []string{"Researchers", "Telecom operators", "Regulators", "Chipmakers", "Developers"},
		verbs:    []string{"unveil", "roll out", "scrutinise", "test", "adopt"},
		objects:  []string{"5G coverage", "open-source tools", "data rules", "satellite internet", "AI models"},
	},
	{
		name:     "Weather",
		weight:   15,
		subjects: []string{"Met office", "Coastal districts", "Dhaka", "Farmers", "Khepupara"},
		verbs:    []string{"forecasts", "braces for", "records", "reports", "warns of"},
		objects:  []string{"heavy rainfall", "35 degrees Celsius", "cyclone signal", "cold wave", "early monsoon"},
	},
	{
		name:     "Health",
		weight:   10,
		subjects: []string{"Hospitals", "Health ministry", "Doctors", "Vaccine makers", "Clinics"},
		verbs:    []string{"launch", "expand", "warn of", "report", "begin"},
		objects:  []string{"dengue surge", "vaccine trial", "free check-ups", "bed shortages", "screening drive"},
	},
}

var (
	firstNames = []string{"jonny", "Ayesha", "Rahim", "Nadia", "Tanvir", "Farzana", "Imran", "Sadia", "Arif", "Priya", "Kamal", "Leena"}
	lastNames  = []string{"Ahmed", "Rahman", "Hossain", "Chowdhury", "Islam", "Karim", "Sarkar", "Das", "Khan", "Roy"}

	publisherPrefixes = []string{"The Daily", "The Morning", "The Evening", "The Weekly", "The National"}
	publisherNouns    = []string{"Star", "Herald", "Observer", "Chronicle", "Tribune", "Sun", "Post"}
	cities            = []string{"Dhaka", "Chattogram", "Khulna", "Sylhet", "Rajshahi"}
)

// Generate builds a synthetic plan from rng. Each table draws from its own
// forked stream.
func Generate(rng *utils.Random, opts GenerateOptions) *Plan {
	opts.News = max(opts.News, 0)
	opts.Reporters = max(opts.Reporters, 1)
	opts.Publishers = max(opts.Publishers, 1)
	if opts.End.IsZero() {
		opts.End = DefaultEnd
	}

	g := generator{opts: opts}
	p := &Plan{}
	g.categories(p)
	g.reporters(rng.Fork(), p)
	g.publishers(rng.Fork(), p)
	g.news(rng.Fork(), p)
	return p
}

type generator struct {
	opts GenerateOptions
}

// tagged appends the run tag to a value the schema keeps unique
func (g generator) tagged(s string) string {
	if g.opts.Tag == "" {
		return s
	}
	return s + " [" + g.opts.Tag + "]"
}

func (g generator) categories(p *Plan) {
	for _, t := range topics {
		p.Categories = append(p.Categories, CategoryEntry{
			Key: slug(t.name),
			Category: models.Category{
				Name:        g.tagged(t.name),
				Description: "All news related to " + strings.ToLower(t.name),
			},
		})
	}
}

func (g generator) reporters(rng *utils.Random, p *Plan) {
	domain := "newsdb.example"
	if g.opts.Tag != "" {
		domain = g.opts.Tag + "." + domain
	}

	for i := range g.opts.Reporters {
		first := rng.PickString(firstNames)
		last := rng.PickString(lastNames)
		p.Reporters = append(p.Reporters, ReporterEntry{
			Key: fmt.Sprintf("reporter-%d", i+1),
			Reporter: models.Reporter{
				Name:  first + " " + last,
				Email: fmt.Sprintf("%s.%s.%d@%s", strings.ToLower(first), strings.ToLower(last), i+1, domain),
			},
		})
	}
}

func (g generator) publishers(rng *utils.Random, p *Plan) {
	for i := range g.opts.Publishers {
		name := fmt.Sprintf("%s %s", rng.PickString(publisherPrefixes), rng.PickString(publisherNouns))
		if g.opts.Publishers > 1 {
			name = fmt.Sprintf("%s %d", name, i+1)
		}
		handle := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(name, "The "), " ", ""))

		pub := models.Publisher{
			Name:              g.tagged(name),
			Email:             "info@" + handle + ".example",
			PhoneNumber:       rng.Int64Range(8801000000000, 8801999999999),
			HeadOfficeAddress: fmt.Sprintf("%d Kazi Nazrul Islam Avenue, %s", rng.IntRange(1, 200), rng.PickString(cities)),
		}
		// Social handles are optional; leave some empty
		if rng.Probability(0.7) {
			pub.Facebook = handle
		}
		if rng.Probability(0.5) {
			pub.Twitter = handle
		}

		p.Publishers = append(p.Publishers, PublisherEntry{Key: fmt.Sprintf("publisher-%d", i+1), Publisher: pub})
	}
}

func (g generator) news(rng *utils.Random, p *Plan) {
	weights := make([]int, len(topics))
	for i, t := range topics {
		weights[i] = t.weight
	}

	for i := range g.opts.News {
		t := topics[rng.WeightedPick(weights)]
		key := fmt.Sprintf("news-%d", i+1)
		title := fmt.Sprintf("%s %s %s", rng.PickString(t.subjects), rng.PickString(t.verbs), rng.PickString(t.objects))
		when := rng.TimeBefore(g.opts.End, g.opts.Window)
		id := rng.NumericString(7)

		body := fmt.Sprintf("%s, officials and observers said on %s. %s The story is developing.",
			title, when.Weekday(), firstSentence(t, rng))

		p.News = append(p.News, NewsEntry{
			Key:       key,
			Category:  slug(t.name),
			Reporter:  fmt.Sprintf("reporter-%d", rng.IntN(g.opts.Reporters)+1),
			Publisher: fmt.Sprintf("publisher-%d", rng.IntN(g.opts.Publishers)+1),
			News: models.News{
				Datetime: when,
				Title:    title,
				Body:     body,
				Link:     fmt.Sprintf("https://news.example/%s/%s-%s", slug(t.name), slug(title), id),
			},
		})

		if rng.Probability(g.opts.ImageRatio) {
			for j := range rng.IntRange(1, 3) {
				p.Images = append(p.Images, ImageEntry{
					News: key,
					Image: models.Image{
						ImageURL: fmt.Sprintf("https://img.news.example/%s/%s_%d.jpg", when.Format("2006/01/02"), id, j+1),
					},
				})
			}
		}
		if rng.Probability(g.opts.SummaryRatio) {
			p.Summaries = append(p.Summaries, SummaryEntry{
				News:    key,
				Summary: models.Summary{SummaryText: title + "."},
			})
		}
	}
}

func firstSentence(t topic, rng *utils.Random) string {
	return fmt.Sprintf("%s also %s %s.", rng.PickString(t.subjects), rng.PickString(t.verbs), rng.PickString(t.objects))
}

// slug lowercases s and joins its alphanumeric runs with hyphens
func slug(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			dash = false
		case sb.Len() > 0 && !dash:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
