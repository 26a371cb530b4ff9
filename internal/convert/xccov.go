package convert

import (
	"errors"
	"io"

	"github.com/ipedro/lcovify/internal/lcov"
	"github.com/ipedro/lcovify/internal/xccov"
)

func init() {
	Register(FormatXccov, XccovConverter{})
}

// XccovConverter converts Xcode xccov JSON reports.
type XccovConverter struct{}

// Parse decodes and validates an xccov JSON document. Schema
// violations surface as *xccov.SchemaError; anything else that keeps
// the document from decoding is an *InputError.
func (XccovConverter) Parse(r io.Reader) (Report, error) {
	report, err := xccov.Parse(r)
	if err != nil {
		var schemaErr *xccov.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, err
		}
		return nil, &InputError{Err: err}
	}
	return &xccovReport{report: report}, nil
}

type xccovReport struct {
	report *xccov.Report
}

// WriteLCOV flattens the target/file nesting into a flat record
// sequence; LCOV has no target concept. Files appear in encounter
// order, and a path listed under several targets yields one record
// per occurrence.
func (x *xccovReport) WriteLCOV(w io.Writer) error {
	lw := lcov.NewWriter(w)
	for _, target := range x.report.Targets {
		for _, file := range target.Files {
			if err := lw.WriteRecord(fileRecord(file)); err != nil {
				return err
			}
		}
	}
	return nil
}

// fileRecord maps one xccov file entry onto an LCOV record.
//
// xccov has no per-line data, only per-function declaration lines and
// execution counts, so each function doubles as its own DA entry. The
// LF/LH totals come verbatim from the file's executableLines and
// coveredLines and are not recomputed from the DA entries.
func fileRecord(file xccov.FileCoverage) *lcov.Record {
	rec := &lcov.Record{
		SourceFile: file.Path,
		Functions:  make([]lcov.FuncEntry, 0, len(file.Functions)),
		Lines:      make([]lcov.LineEntry, 0, len(file.Functions)),
		LinesFound: file.ExecutableLines,
		LinesHit:   file.CoveredLines,
	}

	for _, fn := range file.Functions {
		rec.Functions = append(rec.Functions, lcov.FuncEntry{
			Name:  fn.Name,
			Line:  fn.LineNumber,
			Count: fn.ExecutionCount,
		})
		rec.Lines = append(rec.Lines, lcov.LineEntry{
			Line:  fn.LineNumber,
			Count: fn.ExecutionCount,
		})
	}

	return rec
}
