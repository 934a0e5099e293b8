// Command sqlnormctl is a diagnostic CLI over the sqlnorm normalization
// engine: lex a statement, compile it against a named driver profile,
// inspect cache statistics, or benchmark repeated compiles.
//
// Configuration priority:
//  1. Command-line flags (highest)
//  2. Environment variables (SQLNORM_DRIVER, SQLNORM_DIALECT)
//  3. Config file .sqlnormctl.yaml (lowest, requires --use-config)
package main

func main() {
	Run()
}
