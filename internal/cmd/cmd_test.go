package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns its output.
// Flag values are reset afterwards since commands are package globals.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { resetFlags(rootCmd) })

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--env-file=", "--no-color"))

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func clearDBEnv(t *testing.T) {
	t.Helper()
	// Empty values count as unset for viper
	for _, env := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASS", "DB_NAME", "NEWSDB_LOG_LEVEL"} {
		t.Setenv(env, "")
	}
}

func TestInsertPublisherRequiresAllFields(t *testing.T) {
	clearDBEnv(t)

	_, err := run(t, "insert", "publisher", "--name", "The Daily Star", "--email", "info@thedailystar.net")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s)")
	assert.Contains(t, err.Error(), `"phone-number"`)
	assert.Contains(t, err.Error(), `"head-office-address"`)
	assert.NotContains(t, err.Error(), `"twitter"`)
}

func TestInsertRequiresConfiguration(t *testing.T) {
	clearDBEnv(t)

	_, err := run(t, "insert", "category", "--name", "Politics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.user (DB_USER) is required")
	assert.Contains(t, err.Error(), "database.name (DB_NAME) is required")
}

func TestInsertNewsRejectsBadDatetime(t *testing.T) {
	clearDBEnv(t)

	_, err := run(t, "insert", "news",
		"--category-id", "1", "--reporter-id", "1", "--publisher-id", "1",
		"--datetime", "yesterday", "--title", "t", "--body", "b", "--link", "l")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --datetime "yesterday"`)
}

func TestShowNewsRejectsBadID(t *testing.T) {
	clearDBEnv(t)

	for _, arg := range []string{"abc", "0"} {
		_, err := run(t, "show", "news", arg)
		require.Error(t, err, arg)
		assert.Contains(t, err.Error(), "invalid news id", arg)
	}
}

func TestSchemaPrintsEmbeddedSQL(t *testing.T) {
	out, err := run(t, "schema")
	require.NoError(t, err)

	for _, table := range []string{"categories", "reporters", "publishers", "news", "images", "summaries"} {
		assert.Contains(t, out, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestSchemaWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "schema.sql")

	_, err := run(t, "schema", "-o", path)
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, schemaSQL, string(got))
}

func TestSplitStatements(t *testing.T) {
	stmts := splitStatements(schemaSQL)
	require.Len(t, stmts, 6)

	names := make([]string, 0, len(stmts))
	for _, s := range stmts {
		assert.NotContains(t, s, "--")
		names = append(names, statementName(s))
	}
	assert.Equal(t, []string{
		"table categories",
		"table reporters",
		"table publishers",
		"table news",
		"table images",
		"table summaries",
	}, names)
}

func TestParseDatetime(t *testing.T) {
	want := time.Date(2024, 5, 8, 23, 29, 0, 0, time.UTC)

	for _, in := range []string{"2024-05-08 23:29", "2024-05-08 23:29:00", "2024-05-08T23:29:00Z"} {
		got, err := parseDatetime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s: got %s", in, got)
	}

	_, err := parseDatetime("08/05/2024")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "=== newsdb ===")
	assert.Contains(t, out, "Version:")
}

func TestSeedDumpDefaultPlan(t *testing.T) {
	out, err := run(t, "seed", "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Politics")
	assert.Contains(t, out, "email: jonny@mail.com")
}

func TestSeedGenerateDumpIsReproducible(t *testing.T) {
	first, err := run(t, "seed", "--generate", "5", "--rand-seed", "99", "--dump")
	require.NoError(t, err)
	second, err := run(t, "seed", "--generate", "5", "--rand-seed", "99", "--dump")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "key: news-5")
	assert.Contains(t, first, "[2r]", "names carry the seed tag")
}

func TestSeedGenerateEnd(t *testing.T) {
	out, err := run(t, "seed", "--generate", "3", "--rand-seed", "7", "--end", "2023-03-31", "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "datetime: 2023-03-")
	assert.NotContains(t, out, "datetime: 2024-")

	_, err = run(t, "seed", "--generate", "3", "--end", "soon", "--dump")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid --end "soon"`)
}

func TestSeedFileAndGenerateConflict(t *testing.T) {
	_, err := run(t, "seed", "--file", "plan.yaml", "--generate", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}
