// Package report formats the per-case comparison lines.
package report

import (
	"fmt"
	"io"

	"github.com/banshee-data/jitter.report/internal/jitter"
)

// lineFormat is: case ID, reference σ pair, projected σ pair, discrepancy.
const lineFormat = "%-24s [%4.0f,%4.0f]  [%4.0f,%4.0f] (%4.3f)"

// FormatLine renders one case, e.g.
//
//	b2019_0z_0az_os_2ms      [   2,   1]  [   2,   1] (0.056)
func FormatLine(caseID string, r jitter.Result) string {
	return fmt.Sprintf(lineFormat,
		caseID,
		r.Reference[0], r.Reference[1],
		r.Projected[0], r.Projected[1],
		r.Discrepancy,
	)
}

// Writer prints one line per case.
type Writer struct {
	w     io.Writer
	lines int
}

// NewWriter creates a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteCase prints the line of one case.
func (w *Writer) WriteCase(caseID string, r jitter.Result) error {
	if _, err := fmt.Fprintln(w.w, FormatLine(caseID, r)); err != nil {
		return fmt.Errorf("failed to write report line for %s: %w", caseID, err)
	}
	w.lines++
	return nil
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int {
	return w.lines
}
