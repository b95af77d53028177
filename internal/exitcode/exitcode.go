// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, blank text,
	// unconfirmed bulk delete).
	UserError = 1

	// ConfigError indicates a config file or storage setup error.
	ConfigError = 2
)
