package ingest

import "fmt"

type ErrorKind string

const (
	KindUnreadable    ErrorKind = "unreadable"
	KindMissingSheet  ErrorKind = "missing_sheet"
	KindMissingColumn ErrorKind = "missing_column"
)

// DataLoadError is returned for every load failure. It is fatal: callers must
// not render anything from a table that failed to load.
type DataLoadError struct {
	Kind   ErrorKind
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", e.Source, e.Kind, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func loadErr(kind ErrorKind, source string, err error) *DataLoadError {
	return &DataLoadError{Kind: kind, Source: source, Err: err}
}
