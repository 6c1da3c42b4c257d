package tinytest

// Exit codes returned by the tinytest CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates every test passed or was skipped.
	ExitSuccess = 0

	// ExitFailure indicates failed tests, errors, or another runtime failure.
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config, validation failure, etc.).
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (unreadable input, unavailable database, etc.).
	ExitEnvError = 3
)

// ExitCodeFor returns ExitSuccess when results has no failures or errors and
// ExitFailure otherwise.
func ExitCodeFor(results TestResults) int {
	if results.OK() {
		return ExitSuccess
	}
	return ExitFailure
}
