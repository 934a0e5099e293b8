package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeynil/sqlnorm"
)

func (app *App) benchCmd() *cobra.Command {
	var (
		iterations int
		paramsJSON string
	)

	cmd := &cobra.Command{
		Use:   "bench <sql>",
		Short: "Benchmark repeated compiles of one statement",
		Long: `Compile the same statement repeatedly against the selected driver
and report total and per-iteration timing plus cache statistics. The
first iteration is a cold compile; every subsequent one should hit the
compiled-statement cache.

Examples:
  sqlnormctl bench --driver postgres --iterations 10000 --params '[1]' \
    "SELECT * FROM t WHERE id = ?"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.setup()
			if err != nil {
				return err
			}

			params, err := parseParamsJSON(paramsJSON)
			if err != nil {
				return err
			}

			if iterations < 1 {
				return fmt.Errorf("--iterations must be at least 1, got %d", iterations)
			}

			app.logger.InfoContext(cmd.Context(), "starting benchmark", "driver", cfg.Identity, "iterations", iterations)
			elapsed, err := app.runBench(args[0], params, cfg, iterations)
			if err != nil {
				return err
			}

			fmt.Printf("%d iterations in %v (%v/op)\n", iterations, elapsed, elapsed/time.Duration(iterations))
			fmt.Println()
			return outputCacheStatsTable(app.processor.CacheStats())
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&iterations, "iterations", 1000, "Number of compile calls")
	flags.StringVar(&paramsJSON, "params", "", "Parameters as JSON (array for positional, object for named)")

	return cmd
}

// runBench times the compile loop on the app's injectable clock so
// tests can drive it with a fake.
func (app *App) runBench(sql string, params any, cfg sqlnorm.DriverConfig, iterations int) (time.Duration, error) {
	flags := sqlnorm.CompileFlags{IsParsed: true, Dialect: app.dialect()}

	start := app.clock.Now()
	for i := 0; i < iterations; i++ {
		if _, err := app.processor.Compile(sql, params, cfg, flags); err != nil {
			return 0, fmt.Errorf("compile failed on iteration %d: %w", i, err)
		}
	}
	return app.clock.Since(start), nil
}
