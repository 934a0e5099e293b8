package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/honeynil/sqlnorm"
)

func (app *App) lexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex <sql>",
		Short: "List the placeholders in a SQL statement",
		Long: `Scan a SQL statement and list every placeholder found, with its
style, name, byte position, and exact source text. String literals,
quoted identifiers, comments, and dollar-quoted blocks are skipped.

Examples:
  # Mixed-style statement
  sqlnormctl lex "SELECT * FROM t WHERE a = ? AND b = :name"

  # JSON output for scripting
  sqlnormctl lex --json "SELECT * FROM t WHERE id = \$1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(); err != nil {
				return err
			}

			placeholders := sqlnorm.Lex(args[0])

			if app.config.JSON {
				return app.outputLexJSON(placeholders)
			}
			return app.outputLexTable(placeholders)
		},
	}
}

func (app *App) outputLexTable(placeholders sqlnorm.ParameterInfoList) error {
	if len(placeholders) == 0 {
		fmt.Println("No placeholders found.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Ordinal", "Style", "Name", "Position", "Text"})

	for _, p := range placeholders {
		name := p.Name
		if name == "" {
			name = "-"
		}
		if err := table.Append([]string{
			strconv.Itoa(p.Ordinal),
			string(p.Style),
			name,
			strconv.Itoa(p.Position),
			p.PlaceholderText,
		}); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\n%d placeholder(s), dominant style: %s\n", len(placeholders), placeholders.DominantStyle())
	return nil
}

func (app *App) outputLexJSON(placeholders sqlnorm.ParameterInfoList) error {
	type entry struct {
		Ordinal  int    `json:"ordinal"`
		Style    string `json:"style"`
		Name     string `json:"name,omitempty"`
		Position int    `json:"position"`
		Text     string `json:"text"`
	}

	output := struct {
		Placeholders []entry `json:"placeholders"`
		Dominant     string  `json:"dominant_style"`
	}{
		Placeholders: make([]entry, 0, len(placeholders)),
		Dominant:     string(placeholders.DominantStyle()),
	}
	for _, p := range placeholders {
		output.Placeholders = append(output.Placeholders, entry{
			Ordinal:  p.Ordinal,
			Style:    string(p.Style),
			Name:     p.Name,
			Position: p.Position,
			Text:     p.PlaceholderText,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
