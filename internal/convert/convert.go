// Package convert turns native coverage reports into LCOV tracefiles.
//
// Each supported input format registers a Converter under its format
// name. A conversion runs in two phases: Parse materializes the whole
// native report in memory, then WriteLCOV streams it out record by
// record. Nothing is written until parsing has fully succeeded.
package convert

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Format names accepted by Get and the --format flag.
const (
	FormatXccov   = "xccov"
	FormatGoCover = "gocover"
)

// Report is a fully materialized native coverage report that can
// write itself out as a sequence of LCOV records.
type Report interface {
	// WriteLCOV writes one record per source file to w, in the
	// report's own file order.
	WriteLCOV(w io.Writer) error
}

// Converter parses one native coverage format.
type Converter interface {
	// Parse reads a complete report from r. Implementations must
	// consume and validate the whole input before returning; a
	// returned Report is safe to write out without further reads.
	Parse(r io.Reader) (Report, error)
}

var registry = make(map[string]Converter)

// Register adds a converter to the registry under the given format
// name. Converters register themselves at init time.
func Register(name string, c Converter) {
	registry[name] = c
}

// Get returns the converter registered under name.
func Get(name string) (Converter, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown input format: %s (supported formats: %s)",
			name, strings.Join(Formats(), ", "))
	}
	return c, nil
}

// Formats returns the registered format names, sorted.
func Formats() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
