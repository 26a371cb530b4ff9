package convert

import (
	"io"
	"sort"

	"golang.org/x/tools/cover"

	"github.com/ipedro/lcovify/internal/lcov"
)

func init() {
	Register(FormatGoCover, GoCoverConverter{})
}

// GoCoverConverter converts profiles written by "go test
// -coverprofile". Supports all three modes (set, count, atomic).
type GoCoverConverter struct{}

func (GoCoverConverter) Parse(r io.Reader) (Report, error) {
	profiles, err := cover.ParseProfilesFromReader(r)
	if err != nil {
		return nil, &InputError{Err: err}
	}
	return goCoverReport(profiles), nil
}

type goCoverReport []*cover.Profile

// WriteLCOV emits one record per profile. ParseProfilesFromReader
// returns profiles sorted by file name, so record order is stable
// across runs.
func (g goCoverReport) WriteLCOV(w io.Writer) error {
	lw := lcov.NewWriter(w)
	for _, profile := range g {
		if err := lw.WriteRecord(profileRecord(profile)); err != nil {
			return err
		}
	}
	return nil
}

// profileRecord maps one Go cover profile onto an LCOV record.
//
// Cover profiles carry block spans, not line hits. Every line of a
// block takes the block's count; where blocks overlap on a line
// (block boundaries split mid-line) the line keeps the highest count,
// since each execution pass runs through all of them. Go profiles
// carry no function names, so the record has no FN/FNDA entries and
// LF/LH are derived from the expanded lines.
func profileRecord(profile *cover.Profile) *lcov.Record {
	counts := make(map[int]int)
	for _, block := range profile.Blocks {
		for line := block.StartLine; line <= block.EndLine; line++ {
			if count, ok := counts[line]; !ok || block.Count > count {
				counts[line] = block.Count
			}
		}
	}

	lines := make([]int, 0, len(counts))
	for line := range counts {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	rec := &lcov.Record{
		SourceFile: profile.FileName,
		Lines:      make([]lcov.LineEntry, 0, len(lines)),
		LinesFound: len(lines),
	}
	for _, line := range lines {
		count := counts[line]
		rec.Lines = append(rec.Lines, lcov.LineEntry{Line: line, Count: count})
		if count > 0 {
			rec.LinesHit++
		}
	}

	return rec
}
