package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/honeynil/sqlnorm"
)

func (app *App) compileCmd() *cobra.Command {
	var (
		paramsJSON   string
		noParse      bool
		static       bool
		nullElision  bool
		parameterize bool
		safetyScan   bool
		many         bool
	)

	cmd := &cobra.Command{
		Use:   "compile <sql>",
		Short: "Compile a statement against a driver profile",
		Long: `Run a statement through the full normalization pipeline for the
selected driver: placeholder detection, optional parse-backed transforms,
IN-list expansion, type coercion, style conversion, and parameter
reshaping. Prints the final SQL and the final parameter container; the
analysis metadata is printed in JSON output, and in text output only
with --verbose.

Parameters are given as a JSON value: an array for positional input, an
object for named input.

Examples:
  # QMARK input rewritten for the PostgreSQL wire protocol
  sqlnormctl compile --driver postgres --params '[1, 2]' \
    "SELECT * FROM t WHERE a = ? AND b = ?"

  # Named input for Oracle
  sqlnormctl compile --driver oracle --params '{"id": 7}' \
    "SELECT * FROM u WHERE id = :id"

  # Inline every value as a SQL literal
  sqlnormctl compile --driver sqlite --static --params '{"n": "O'\''Brien"}' \
    "SELECT * FROM t WHERE name = :n"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.setup()
			if err != nil {
				return err
			}
			if static {
				cfg.DefaultParameterStyle = sqlnorm.STATIC
				cfg.DefaultExecutionParameterStyle = sqlnorm.STATIC
			}

			params, err := parseParamsJSON(paramsJSON)
			if err != nil {
				return err
			}

			processor := app.processor
			if app.config.CompiledCacheCapacity > 0 {
				processor = sqlnorm.NewProcessorWithConfig(sqlnorm.ProcessorConfig{
					CompiledCacheCapacity: app.config.CompiledCacheCapacity,
				})
			}

			state, err := processor.Compile(args[0], params, cfg, sqlnorm.CompileFlags{
				IsParsed:                      !noParse,
				Dialect:                       app.dialect(),
				EnableNullElision:             nullElision,
				EnableLiteralParameterization: parameterize,
				EnableSafetyScan:              safetyScan,
				IsMany:                        many,
			})
			if err != nil {
				return fmt.Errorf("compile failed: %w", err)
			}

			if state.AnalysisMetadata["parse_failed"] == true {
				app.logger.WarnContext(cmd.Context(), "statement could not be parsed, used the text-only pipeline", "driver", cfg.Identity)
			}

			if app.config.JSON {
				return app.outputCompileJSON(state)
			}
			return app.outputCompileText(state)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&paramsJSON, "params", "", "Parameters as JSON (array for positional, object for named)")
	flags.BoolVar(&noParse, "no-parse", false, "Skip the AST oracle; text-only pipeline")
	flags.BoolVar(&static, "static", false, "Inline parameter values as SQL literals")
	flags.BoolVar(&nullElision, "null-elision", false, "Replace NULL-valued binds with literal NULL")
	flags.BoolVar(&parameterize, "parameterize-literals", false, "Extract embedded literals into parameters")
	flags.BoolVar(&safetyScan, "safety-scan", false, "Emit validation warnings for suspicious SQL")
	flags.BoolVar(&many, "many", false, "Treat params as a list of parameter sets (executemany expansion)")

	return cmd
}

// parseParamsJSON decodes the --params flag into the container shapes
// the library understands: nil, []any, or map[string]any. json.Number
// is avoided deliberately so integers arrive as float64 the same way
// every encoding/json caller sees them.
func parseParamsJSON(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("invalid --params JSON: %w", err)
	}
	return v, nil
}

func (app *App) outputCompileText(state sqlnorm.ProcessedState) error {
	fmt.Println(state.FinalSQL)

	if state.FinalParameters != nil {
		enc, err := json.Marshal(normalizeForOutput(state.FinalParameters))
		if err != nil {
			return err
		}
		fmt.Printf("-- params: %s\n", enc)
	}

	if app.config.Verbose && len(state.AnalysisMetadata) > 0 {
		enc, err := json.MarshalIndent(state.AnalysisMetadata, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("-- metadata: %s\n", enc)
	}
	return nil
}

func (app *App) outputCompileJSON(state sqlnorm.ProcessedState) error {
	output := struct {
		SQL        string         `json:"sql"`
		Parameters any            `json:"parameters"`
		Metadata   map[string]any `json:"metadata,omitempty"`
	}{
		SQL:        state.FinalSQL,
		Parameters: normalizeForOutput(state.FinalParameters),
		Metadata:   state.AnalysisMetadata,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// normalizeForOutput unwraps TypedParameter values so the printed
// container shows plain runtime values rather than wrapper structs.
func normalizeForOutput(params any) any {
	switch p := params.(type) {
	case []any:
		out := make([]any, len(p))
		for i, v := range p {
			out[i] = unwrapForOutput(v)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(p))
		for k, v := range p {
			out[k] = unwrapForOutput(v)
		}
		return out
	default:
		return unwrapForOutput(params)
	}
}

func unwrapForOutput(v any) any {
	if tp, ok := v.(sqlnorm.TypedParameter); ok {
		return tp.Value
	}
	return v
}
