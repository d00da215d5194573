package trackseed

import "context"

// RowLoader reads a dataset into rows in file order.
type RowLoader interface {
	// Load returns every data row of the dataset at location.
	// Failures wrap ErrSourceRead.
	Load(ctx context.Context, location string) ([]Row, error)
}

// ContentWriter replaces the file at path with content.
// Failures wrap ErrWriteFailed.
type ContentWriter func(path string, content []byte) error

// RunRecorder exports the outcome of a generation run.
type RunRecorder interface {
	ObserveRun(result Result)
	WriteTextfile(path string) error
}
