package main

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/honeynil/sqlnorm"
)

// App holds the CLI application state.
type App struct {
	config    *Config
	processor *sqlnorm.Processor
	clock     clockwork.Clock
	rootCmd   *cobra.Command
	logger    sqlnorm.Logger
}

// Run starts the CLI. This is the entry point called from main.
func Run() {
	app := &App{
		config:    &Config{},
		processor: sqlnorm.NewProcessor(),
		clock:     clockwork.NewRealClock(),
	}

	app.rootCmd = &cobra.Command{
		Use:   "sqlnormctl",
		Short: "sqlnorm diagnostic CLI",
		Long: `sqlnormctl - inspect SQL placeholder normalization.

Configuration priority:
  1. Command-line flags (highest)
  2. Environment variables (SQLNORM_DRIVER, SQLNORM_DIALECT)
  3. Config file .sqlnormctl.yaml (lowest, requires --use-config)

Examples:
  # List the placeholders in a statement
  sqlnormctl lex "SELECT * FROM t WHERE a = ? AND b = :name"

  # Compile a statement for a driver
  sqlnormctl compile --driver postgres --params '[1, 2]' \
    "SELECT * FROM t WHERE a = ? AND b = ?"

  # Show cache hit rates after a benchmark run
  sqlnormctl bench --driver mysql --iterations 10000 \
    "SELECT * FROM t WHERE id = ?"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.addGlobalFlags()
	app.addCommands()

	if err := app.rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// addGlobalFlags adds flags that are available to all commands.
func (app *App) addGlobalFlags() {
	flags := app.rootCmd.PersistentFlags()

	flags.StringVar(&app.config.Driver, "driver", "", "Driver profile (postgres, mysql, sqlite, mssql, clickhouse, ydb, cockroachdb, oracle)")
	flags.StringVar(&app.config.Dialect, "dialect", "", "SQL dialect hint passed to the parser (defaults to the driver name)")
	flags.BoolVar(&app.config.UseConfig, "use-config", false, "Enable config file (.sqlnormctl.yaml)")
	flags.StringVar(&app.config.Env, "env", "", "Environment from config file (development, staging, production)")
	flags.BoolVar(&app.config.JSON, "json", false, "Output in JSON format")
	flags.BoolVar(&app.config.Verbose, "verbose", false, "Verbose output")
}

// addCommands registers all CLI commands.
func (app *App) addCommands() {
	app.rootCmd.AddCommand(
		app.lexCmd(),
		app.compileCmd(),
		app.cacheStatsCmd(),
		app.benchCmd(),
		app.versionCmd(),
	)
}

// setup loads configuration and resolves the driver profile. Commands
// that don't need a driver (lex, cache-stats) call loadConfig directly
// instead; version loads no configuration.
func (app *App) setup() (sqlnorm.DriverConfig, error) {
	if err := app.loadConfig(); err != nil {
		return sqlnorm.DriverConfig{}, err
	}
	if app.config.Driver == "" {
		return sqlnorm.DriverConfig{}, fmt.Errorf("driver is required (use --driver or SQLNORM_DRIVER)")
	}
	return driverConfigByName(app.config.Driver)
}

// dialect returns the parser dialect hint, defaulting to the driver
// name when unset.
func (app *App) dialect() string {
	if app.config.Dialect != "" {
		return app.config.Dialect
	}
	return app.config.Driver
}
