package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func (app *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show sqlnormctl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("sqlnormctl %s\n", version)
			return nil
		},
	}
}
