package leads

import "fmt"

// The core never fails a whole run. These typed errors name the degraded
// outcomes so callers can tell them apart without string matching.

// FieldFormatError reports that one field of one record could not be
// rendered; the flattener falls back to the raw value and keeps going.
type FieldFormatError struct {
	Path string
	Err  error
}

func (e *FieldFormatError) Error() string {
	return fmt.Sprintf("format field %q: %v", e.Path, e.Err)
}

func (e *FieldFormatError) Unwrap() error { return e.Err }

// RecordProcessingError reports that one record could not be flattened; the
// assembler substitutes a placeholder line and keeps going.
type RecordProcessingError struct {
	LeadID string
	Err    error
}

func (e *RecordProcessingError) Error() string {
	return fmt.Sprintf("process lead %q: %v", e.LeadID, e.Err)
}

func (e *RecordProcessingError) Unwrap() error { return e.Err }

// GroupAssemblyError reports that a whole group could not be assembled; the
// group is skipped and the run continues with the next one.
type GroupAssemblyError struct {
	Key string
	Err error
}

func (e *GroupAssemblyError) Error() string {
	return fmt.Sprintf("assemble group %q: %v", e.Key, e.Err)
}

func (e *GroupAssemblyError) Unwrap() error { return e.Err }
