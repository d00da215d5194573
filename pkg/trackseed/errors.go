package trackseed

import "errors"

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := generator.Generate(ctx, config)
//	if errors.Is(err, trackseed.ErrSourceRead) {
//	    // The dataset could not be opened or parsed
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrSourceRead indicates the dataset is missing or is not tabular data.
	ErrSourceRead = errors.New("source read failed")

	// ErrWriteFailed indicates the migration file could not be written.
	ErrWriteFailed = errors.New("write failed")

	// ErrUsage indicates invalid command line flags or arguments.
	ErrUsage = errors.New("usage error")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for everything else, including ErrSourceRead.
// Classification uses errors.Is only; messages may carry user paths.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrSourceRead), errors.Is(err, ErrWriteFailed):
		return ExitGeneralError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	}
	return ExitGeneralError
}
