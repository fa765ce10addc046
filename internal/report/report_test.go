package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/jitter.report/internal/jitter"
)

func TestFormatLine(t *testing.T) {
	testCases := []struct {
		name   string
		caseID string
		result jitter.Result
		want   string
	}{
		{
			name:   "small_values",
			caseID: "b2019_0z_0az_os_2ms",
			result: jitter.Result{Reference: jitter.Pair{2.2, 1.1}, Projected: jitter.Pair{2.18, 1.05}, Discrepancy: 0.0561},
			want:   "b2019_0z_0az_os_2ms      [   2,   1]  [   2,   1] (0.056)",
		},
		{
			name:   "rounding",
			caseID: "b2019_0z_180az_cd_17ms",
			result: jitter.Result{Reference: jitter.Pair{42.6, 24.6}, Projected: jitter.Pair{41.9, 23.5}, Discrepancy: 1.5384},
			want:   "b2019_0z_180az_cd_17ms   [  43,  25]  [  42,  24] (1.538)",
		},
		{
			name:   "three_digit_values",
			caseID: "b2019_60z_0az_cd_17ms",
			result: jitter.Result{Reference: jitter.Pair{170.2, 62.4}, Projected: jitter.Pair{169.9, 61.8}, Discrepancy: 0.52},
			want:   "b2019_60z_0az_cd_17ms    [ 170,  62]  [ 170,  62] (0.520)",
		},
		{
			name:   "zero_projection",
			caseID: "b2019_60z_180az_os_2ms",
			result: jitter.Result{Reference: jitter.Pair{0.03, 0}, Projected: jitter.Pair{}, Discrepancy: 0.03},
			want:   "b2019_60z_180az_os_2ms   [   0,   0]  [   0,   0] (0.030)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, FormatLine(tc.caseID, tc.result)); diff != "" {
				t.Errorf("FormatLine mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.WriteCase("b2019_0z_0az_os_2ms", jitter.Result{Reference: jitter.Pair{2, 1}, Projected: jitter.Pair{2, 1}}); err != nil {
		t.Fatalf("WriteCase failed: %v", err)
	}
	if err := w.WriteCase("b2019_0z_0az_os_7ms", jitter.Result{Reference: jitter.Pair{25, 11}, Projected: jitter.Pair{25, 11}, Discrepancy: 0.3}); err != nil {
		t.Fatalf("WriteCase failed: %v", err)
	}

	want := []string{
		"b2019_0z_0az_os_2ms      [   2,   1]  [   2,   1] (0.000)",
		"b2019_0z_0az_os_7ms      [  25,  11]  [  25,  11] (0.300)",
		"",
	}
	if diff := cmp.Diff(want, strings.Split(buf.String(), "\n")); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if w.Lines() != 2 {
		t.Errorf("expected 2 lines, got %d", w.Lines())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriterError(t *testing.T) {
	w := NewWriter(failingWriter{})
	err := w.WriteCase("b2019_0z_0az_os_2ms", jitter.Result{})
	if err == nil || !strings.Contains(err.Error(), "b2019_0z_0az_os_2ms") {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
	if w.Lines() != 0 {
		t.Errorf("expected no lines counted, got %d", w.Lines())
	}
}
