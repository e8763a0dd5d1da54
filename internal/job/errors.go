package job

import "fmt"

// SpecificationError reports a malformed or semantically invalid job
// specification. Field is empty for errors that concern the file as a whole.
type SpecificationError struct {
	File   string
	Field  string
	Reason string
}

func (e *SpecificationError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Reason)
}

func specErrorf(file, field, format string, args ...any) *SpecificationError {
	return &SpecificationError{File: file, Field: field, Reason: fmt.Sprintf(format, args...)}
}
