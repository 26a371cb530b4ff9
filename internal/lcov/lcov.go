// Package lcov emits coverage data as LCOV tracefile records.
//
// A record covers exactly one source file:
//
//	TN:
//	SF:<path>
//	FN:<line>,<name>
//	FNDA:<count>,<name>
//	FNF:<functions found>
//	FNH:<functions hit>
//	DA:<line>,<count>
//	LF:<lines found>
//	LH:<lines hit>
//	end_of_record
package lcov

import (
	"fmt"
	"io"
)

// FuncEntry is one function's declaration line and execution count.
// It renders as an FN/FNDA directive pair.
type FuncEntry struct {
	Name  string
	Line  int
	Count int
}

// LineEntry is one DA directive: a source line and its execution count.
type LineEntry struct {
	Line  int
	Count int
}

// Record is one file-scoped LCOV block, SF: through end_of_record.
//
// LinesFound and LinesHit are carried explicitly rather than derived
// from Lines: report formats that track per-file line totals
// separately from per-line detail (xccov does) emit the totals
// verbatim, so LF/LH may legitimately disagree with the DA entries.
type Record struct {
	SourceFile string
	Functions  []FuncEntry
	Lines      []LineEntry
	LinesFound int
	LinesHit   int
}

// FunctionsFound returns the FNF value.
func (r *Record) FunctionsFound() int {
	return len(r.Functions)
}

// FunctionsHit returns the FNH value: the number of functions entered
// at least once.
func (r *Record) FunctionsHit() int {
	hit := 0
	for _, fn := range r.Functions {
		if fn.Count > 0 {
			hit++
		}
	}
	return hit
}

// Writer emits records sequentially to an underlying stream. It does
// no buffering of its own.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteRecord writes one complete record. Function entries render as
// interleaved FN/FNDA pairs in slice order; DA entries follow in
// slice order. The test name marker TN is always empty.
func (w *Writer) WriteRecord(rec *Record) error {
	if err := w.writef("TN:\n"); err != nil {
		return err
	}
	if err := w.writef("SF:%s\n", rec.SourceFile); err != nil {
		return err
	}

	for _, fn := range rec.Functions {
		if err := w.writef("FN:%d,%s\n", fn.Line, fn.Name); err != nil {
			return err
		}
		if err := w.writef("FNDA:%d,%s\n", fn.Count, fn.Name); err != nil {
			return err
		}
	}

	if err := w.writef("FNF:%d\n", rec.FunctionsFound()); err != nil {
		return err
	}
	if err := w.writef("FNH:%d\n", rec.FunctionsHit()); err != nil {
		return err
	}

	for _, line := range rec.Lines {
		if err := w.writef("DA:%d,%d\n", line.Line, line.Count); err != nil {
			return err
		}
	}

	if err := w.writef("LF:%d\n", rec.LinesFound); err != nil {
		return err
	}
	if err := w.writef("LH:%d\n", rec.LinesHit); err != nil {
		return err
	}

	return w.writef("end_of_record\n")
}

func (w *Writer) writef(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w.w, format, args...)
	return err
}
