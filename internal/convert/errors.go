package convert

import "fmt"

// InputError indicates the coverage input could not be read or
// decoded. It is raised before any output is produced.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid coverage input: %v", e.Err)
	}
	return fmt.Sprintf("failed to read coverage input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// OutputError indicates the LCOV destination could not be created or
// written. Output already emitted before the failure is not retracted.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to write LCOV output: %v", e.Err)
	}
	return fmt.Sprintf("failed to write LCOV output %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}
