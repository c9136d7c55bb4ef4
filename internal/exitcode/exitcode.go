// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, out of range, rejected input).
	UserError = 1

	// AuthError indicates a missing token or a 401/403 from the backend.
	AuthError = 2

	// BackendError indicates a backend, network, or response body failure.
	BackendError = 3
)
