package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

//go:embed schemas/schema.sql
var schemaSQL string

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or apply the database schema",
	Long: `Print the SQL that creates the six news tables, or run it.

Tables: categories, reporters, publishers, news, images, summaries.
news references categories, reporters and publishers; images and
summaries reference news.

Every statement is CREATE TABLE IF NOT EXISTS, so --apply is safe to
repeat. It does not alter tables that already exist.

The schema targets MySQL 8+ and MariaDB 10.6+.

Examples:
  newsdb schema                        # Print to stdout
  newsdb schema -o schema.sql          # Save to a file
  newsdb schema | mysql -u root news   # Pipe into the mysql client
  newsdb schema --apply                # Create tables using DB_* settings`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

var (
	schemaOutputFile string
	schemaApply      bool
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
	schemaCmd.Flags().BoolVar(&schemaApply, "apply", false, "execute the statements against the configured database")
	schemaCmd.MarkFlagsMutuallyExclusive("output", "apply")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	u := newUI(cmd)

	if schemaApply {
		ctx := cmd.Context()
		pool, err := connect(ctx, u)
		if err != nil {
			return err
		}
		defer pool.Close()

		for _, stmt := range splitStatements(schemaSQL) {
			if _, err := pool.Execute(ctx, stmt); err != nil {
				return fmt.Errorf("applying schema: %w", err)
			}
			u.Println(u.Success("Created " + statementName(stmt)))
		}
		return nil
	}

	if schemaOutputFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), schemaSQL)
		return nil
	}

	if dir := filepath.Dir(schemaOutputFile); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}
	if err := os.WriteFile(schemaOutputFile, []byte(schemaSQL), 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), u.Success("Schema written to: "+schemaOutputFile))
	return nil
}

// splitStatements drops "--" comment lines and splits on semicolons.
// The embedded schema has no semicolons inside literals.
func splitStatements(script string) []string {
	var sb strings.Builder
	for line := range strings.Lines(script) {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		sb.WriteString(line)
	}

	var out []string
	for stmt := range strings.SplitSeq(sb.String(), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// statementName returns "table <name>" for a CREATE TABLE statement
func statementName(stmt string) string {
	fields := strings.Fields(stmt)
	for i, f := range fields {
		if strings.EqualFold(f, "EXISTS") && i+1 < len(fields) {
			return "table " + fields[i+1]
		}
	}
	return "statement"
}
