package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainOutput(t *testing.T) {
	u := NewPlain(&bytes.Buffer{})

	assert.Equal(t, "=== newsdb seed ===", u.Header("newsdb seed"))
	assert.Equal(t, "[OK] category inserted", u.Success("category inserted"))
	assert.Equal(t, "[FAILED] connection refused", u.Error("connection refused"))
	assert.Equal(t, "[WARN] 1 entry skipped", u.Warning("1 entry skipped"))
	assert.Equal(t, "Title:         Hyderabad win", u.KeyValue("Title", "Hyderabad win"))
	assert.Equal(t, "  news:           FAILED: 1 failed", u.TableRow("news", "1 failed", StatusError))
	assert.Equal(t, "  images:         0 inserted, 2 skipped", u.TableRow("images", "0 inserted, 2 skipped", StatusWarning))
	assert.Equal(t, "  summaries:      1 inserted", u.TableRow("summaries", "1 inserted", StatusNone))
}

func TestPlainSummaryBox(t *testing.T) {
	u := NewPlain(&bytes.Buffer{})

	got := u.SummaryBox("Seed Complete", []KV{
		{Key: "Status", Value: "Success"},
		{Key: "Inserted", Value: "6"},
	})
	assert.Equal(t, "\n=== Seed Complete ===\nStatus:        Success\nInserted:      6\n", got)
}

func TestPlainProgressReportsTally(t *testing.T) {
	var buf bytes.Buffer
	u := NewPlain(&buf)

	bar := u.NewProgressBar("seed", 3)
	bar.Step(true)
	bar.Step(false)
	bar.Step(true)
	bar.Done()

	assert.Equal(t, "seed: 2/3 done, 1 failed\n", buf.String())
}

func TestPlainSpinner(t *testing.T) {
	var buf bytes.Buffer
	u := NewPlain(&buf)

	s := u.NewSpinner("Connecting to localhost:3306")
	s.Start()
	s.Error(errors.New("connection refused").Error())
	// A second stop is a no-op
	s.Success("connected")

	assert.Equal(t, "Connecting to localhost:3306... connection refused\n", buf.String())
}

func TestSpinnerNotStarted(t *testing.T) {
	var buf bytes.Buffer
	s := NewPlain(&buf).NewSpinner("idle")
	s.Success("never shown")
	assert.Empty(t, buf.String())
}
