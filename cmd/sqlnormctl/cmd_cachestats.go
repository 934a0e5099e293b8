package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/honeynil/sqlnorm"
	"github.com/honeynil/sqlnorm/internal/lrucache"
)

func (app *App) cacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache-stats",
		Short: "Show hit/miss statistics for the three caches",
		Long: `Show hit, miss, and eviction counters for the lexer, AST, and
compiled-statement caches of this process's processor. Counters only
accumulate within one invocation, so this is mainly useful after bench
(which prints the same table) or when sqlnormctl is embedded as a
library probe.

Examples:
  sqlnormctl cache-stats
  sqlnormctl cache-stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(); err != nil {
				return err
			}

			stats := app.processor.CacheStats()
			if app.config.JSON {
				return outputCacheStatsJSON(stats)
			}
			return outputCacheStatsTable(stats)
		},
	}
}

func outputCacheStatsTable(stats sqlnorm.CacheStatsReport) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Cache", "Hits", "Misses", "Evictions", "Hit Rate"})

	rows := []struct {
		name string
		s    lrucache.Stats
	}{
		{"lexer", stats.Lexer},
		{"ast", stats.AST},
		{"compiled", stats.Compiled},
	}

	for _, r := range rows {
		if err := table.Append([]string{
			r.name,
			strconv.FormatUint(r.s.Hits, 10),
			strconv.FormatUint(r.s.Misses, 10),
			strconv.FormatUint(r.s.Evictions, 10),
			fmt.Sprintf("%.1f%%", r.s.HitRate()*100),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func outputCacheStatsJSON(stats sqlnorm.CacheStatsReport) error {
	type entry struct {
		Hits      uint64  `json:"hits"`
		Misses    uint64  `json:"misses"`
		Evictions uint64  `json:"evictions"`
		HitRate   float64 `json:"hit_rate"`
	}
	conv := func(s lrucache.Stats) entry {
		return entry{Hits: s.Hits, Misses: s.Misses, Evictions: s.Evictions, HitRate: s.HitRate()}
	}

	output := map[string]entry{
		"lexer":    conv(stats.Lexer),
		"ast":      conv(stats.AST),
		"compiled": conv(stats.Compiled),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
