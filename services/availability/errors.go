package availability

import "fmt"

// SourceUnavailableError signals that one of the busy-interval sources failed
// to read. Availability must not silently under-report busy time, so the
// whole aggregation fails with this error instead of degrading.
type SourceUnavailableError struct {
	Source  string
	Message string
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("busy source %s unavailable: %s", e.Source, e.Message)
}

func newSourceUnavailable(source string, err error) error {
	return &SourceUnavailableError{Source: source, Message: err.Error()}
}
