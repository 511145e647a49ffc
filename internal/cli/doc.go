// Package cli turns command-line arguments into an app.Config. It validates
// flags, picks a log format for the terminal, and reports usage problems as
// ExitError values carrying the process exit code.
package cli
