// Package xccov models the JSON coverage report emitted by Xcode's
// xccov tool (xcrun xccov view --report --json).
package xccov

import (
	"encoding/json"
	"fmt"
	"io"
)

// FunctionCoverage is one instrumented function inside a source file.
type FunctionCoverage struct {
	Name           string
	LineNumber     int
	ExecutionCount int
}

// FileCoverage holds the per-file totals and the file's function list.
type FileCoverage struct {
	Path            string
	ExecutableLines int
	CoveredLines    int
	Functions       []FunctionCoverage
}

// Target is a named build unit owning a list of source files.
type Target struct {
	Name  string
	Files []FileCoverage
}

// Report is a fully materialized xccov report.
type Report struct {
	Targets []Target
}

// SchemaError reports a required field that is absent from the input
// document. Index fields locate the offending entry; -1 means the
// index does not apply at that nesting level.
type SchemaError struct {
	Field    string
	Target   int
	File     int
	Function int
}

func (e *SchemaError) Error() string {
	loc := fmt.Sprintf("targets[%d].files[%d]", e.Target, e.File)
	if e.Function >= 0 {
		loc = fmt.Sprintf("%s.functions[%d]", loc, e.Function)
	}
	return fmt.Sprintf("missing required field %q in %s", e.Field, loc)
}

// The raw* types mirror the wire format. Required scalar fields are
// pointers so that an absent field is distinguishable from a zero
// value; list fields and target names default to empty when absent.
// Unknown fields are ignored.
type rawReport struct {
	Targets []rawTarget `json:"targets"`
}

type rawTarget struct {
	Name  string    `json:"name"`
	Files []rawFile `json:"files"`
}

type rawFile struct {
	Path            *string       `json:"path"`
	ExecutableLines *int          `json:"executableLines"`
	CoveredLines    *int          `json:"coveredLines"`
	Functions       []rawFunction `json:"functions"`
}

type rawFunction struct {
	Name           *string `json:"name"`
	LineNumber     *int    `json:"lineNumber"`
	ExecutionCount *int    `json:"executionCount"`
}

// Parse decodes a complete xccov JSON document from r and validates
// that every required field is present. The whole report is
// materialized before it is returned; nothing is read lazily.
func Parse(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read xccov report: %w", err)
	}

	var raw rawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode xccov JSON: %w", err)
	}
	return raw.toReport()
}

func (raw *rawReport) toReport() (*Report, error) {
	report := &Report{Targets: make([]Target, 0, len(raw.Targets))}

	for ti, rt := range raw.Targets {
		target := Target{
			Name:  rt.Name,
			Files: make([]FileCoverage, 0, len(rt.Files)),
		}

		for fi, rf := range rt.Files {
			if rf.Path == nil {
				return nil, &SchemaError{Field: "path", Target: ti, File: fi, Function: -1}
			}
			if rf.ExecutableLines == nil {
				return nil, &SchemaError{Field: "executableLines", Target: ti, File: fi, Function: -1}
			}
			if rf.CoveredLines == nil {
				return nil, &SchemaError{Field: "coveredLines", Target: ti, File: fi, Function: -1}
			}

			file := FileCoverage{
				Path:            *rf.Path,
				ExecutableLines: *rf.ExecutableLines,
				CoveredLines:    *rf.CoveredLines,
				Functions:       make([]FunctionCoverage, 0, len(rf.Functions)),
			}

			for ni, rfn := range rf.Functions {
				if rfn.Name == nil {
					return nil, &SchemaError{Field: "name", Target: ti, File: fi, Function: ni}
				}
				if rfn.LineNumber == nil {
					return nil, &SchemaError{Field: "lineNumber", Target: ti, File: fi, Function: ni}
				}
				if rfn.ExecutionCount == nil {
					return nil, &SchemaError{Field: "executionCount", Target: ti, File: fi, Function: ni}
				}

				file.Functions = append(file.Functions, FunctionCoverage{
					Name:           *rfn.Name,
					LineNumber:     *rfn.LineNumber,
					ExecutionCount: *rfn.ExecutionCount,
				})
			}

			target.Files = append(target.Files, file)
		}

		report.Targets = append(report.Targets, target)
	}

	return report, nil
}
