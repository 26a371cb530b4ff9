package convert

import (
	"bufio"
	"os"

	"github.com/ipedro/lcovify/internal/logger"
)

// File converts the report at inputPath into an LCOV tracefile at
// outputPath using the converter registered under format.
//
// The input is parsed and fully materialized before the destination
// is created, so read and schema failures never touch it. Write
// failures can leave a partial tracefile behind; nothing is
// retracted.
func File(format, inputPath, outputPath string) error {
	conv, err := Get(format)
	if err != nil {
		return err
	}

	logger.Debug("Parsing %s report from %s", format, inputPath)

	in, err := os.Open(inputPath)
	if err != nil {
		return &InputError{Path: inputPath, Err: err}
	}

	report, err := conv.Parse(in)
	in.Close()
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return &OutputError{Path: outputPath, Err: err}
	}

	logger.Debug("Writing LCOV records to %s", outputPath)

	bw := bufio.NewWriter(out)
	if err := report.WriteLCOV(bw); err != nil {
		out.Close()
		return &OutputError{Path: outputPath, Err: err}
	}
	if err := bw.Flush(); err != nil {
		out.Close()
		return &OutputError{Path: outputPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return &OutputError{Path: outputPath, Err: err}
	}

	return nil
}
