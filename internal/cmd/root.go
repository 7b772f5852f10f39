package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willfong/newsdb/internal/config"
	"github.com/willfong/newsdb/internal/database"
	"github.com/willfong/newsdb/internal/logger"
	"github.com/willfong/newsdb/internal/ui"
)

var (
	cfgFile string
	envFile string
	verbose bool
	noColor bool

	v   = viper.New()
	cfg = config.DefaultConfig()
	log = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newsdb",
	Short: "Insert news articles and their related records into MySQL",
	Long: `newsdb writes categories, reporters, publishers, news articles,
images and summaries into a MySQL/MariaDB database.

Connection settings come from DB_HOST, DB_USER, DB_PASS and DB_NAME
(optionally loaded from a .env file), a YAML config file, or flags.
Flags win over the environment, which wins over the config file.

Every insert runs in its own transaction and is committed immediately.

Example usage:
  newsdb schema --apply
  newsdb insert category --name Politics --description "All news related to politics"
  newsdb seed
  newsdb show news 1`,
	PersistentPreRunE: initConfig,
}

// Execute adds all child commands to the root command and runs it.
// Failures are printed to stderr; the caller sets the exit code.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), newUI(rootCmd).Error(err.Error()))
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "YAML config file with a database: block")
	pf.StringVar(&envFile, "env-file", config.EnvFile, "KEY=VALUE file loaded into the environment if present")
	pf.String("db-host", config.DBHost, "database host (DB_HOST)")
	pf.Int("db-port", config.DBPort, "database port (DB_PORT)")
	pf.String("db-user", "", "database user (DB_USER)")
	pf.String("db-pass", "", "database password (DB_PASS)")
	pf.String("db-name", "", "database name (DB_NAME)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&noColor, "no-color", false, "disable colors and animations")

	for key, flag := range map[string]string{
		"database.host":     "db-host",
		"database.port":     "db-port",
		"database.user":     "db-user",
		"database.password": "db-pass",
		"database.name":     "db-name",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	// Errors are printed by Execute
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// initConfig loads .env, the config file and the environment into cfg and
// builds the logger. It does not touch the database.
func initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}
	if err := config.BindEnv(v); err != nil {
		return err
	}
	if err := config.ReadFile(v, cfgFile); err != nil {
		return err
	}

	loaded, err := config.Load(v)
	if err != nil {
		return err
	}
	cfg = loaded

	log = logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Verbose: verbose || cfg.Verbose,
		NoColor: noColor,
	})
	cmd.SetContext(log.WithContext(cmd.Context()))

	log.Debug().Str("dsn", cfg.Database.MaskedDSN()).Msg("configuration loaded")
	return nil
}

// newUI returns a UI writing to the command's output
func newUI(cmd *cobra.Command) *ui.UI {
	u := ui.New()
	if out := cmd.OutOrStdout(); out != os.Stdout {
		u.Out = out
		u.IsTTY = false
	}
	if noColor {
		u.SetNoColor(true)
	}
	return u
}

// connect validates the configuration and opens the single connection.
// Callers must Close the returned pool.
func connect(ctx context.Context, u *ui.UI) (*database.Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	spin := u.NewSpinner("Connecting to " + cfg.Database.Addr())
	spin.Start()

	pool, err := database.Connect(ctx, cfg.Database, &log)
	if err != nil {
		spin.Error("failed")
		return nil, err
	}
	spin.Success("connected")
	return pool, nil
}
