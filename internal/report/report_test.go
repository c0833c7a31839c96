package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ironsheep/shape-count/internal/detection"
)

func sampleEntries() []Entry {
	return []Entry{
		{Path: "a.pbm", Width: 14, Height: 8, Result: &detection.Result{Width: 14, Height: 8, Total: 2, WithHoles: 1, WithoutHoles: 1}},
		{Path: "missing.pbm", Err: errors.New("failed to open image: no such file")},
		{Path: "b.pbm", Width: 5, Height: 5, Result: &detection.Result{Width: 5, Height: 5, Total: 4, WithHoles: 0, WithoutHoles: 4}},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleEntries()); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}

	want := `Image read: "a.pbm" (Width: 14, Height: 8)
Total shapes: 2
Shapes with holes: 1
Shapes without holes: 1

Error reading "missing.pbm": failed to open image: no such file

Image read: "b.pbm" (Width: 5, Height: 5)
Total shapes: 4
Shapes with holes: 0
Shapes without holes: 4
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteText_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, nil); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleEntries())

	if s.Images != 3 || s.Failed != 1 {
		t.Errorf("Images/Failed: got %d/%d, want 3/1", s.Images, s.Failed)
	}
	if s.Total != 6 || s.WithHoles != 1 || s.WithoutHoles != 5 {
		t.Errorf("totals: got %d/%d/%d, want 6/1/5", s.Total, s.WithHoles, s.WithoutHoles)
	}
	if s.MeanShapes != 3 {
		t.Errorf("MeanShapes: got %v, want 3", s.MeanShapes)
	}
	if math.Abs(s.StdDevShapes-math.Sqrt2) > 1e-9 {
		t.Errorf("StdDevShapes: got %v, want %v", s.StdDevShapes, math.Sqrt2)
	}
}

func TestSummarize_FewImages(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Entry
		wantMean float64
	}{
		{"none", nil, 0},
		{"all failed", []Entry{{Path: "x", Err: errors.New("boom")}}, 0},
		{"single", sampleEntries()[:1], 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.entries)
			if s.MeanShapes != tt.wantMean {
				t.Errorf("MeanShapes: got %v, want %v", s.MeanShapes, tt.wantMean)
			}
			if s.StdDevShapes != 0 {
				t.Errorf("StdDevShapes: got %v, want 0", s.StdDevShapes)
			}
		})
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, Summarize(sampleEntries())); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Images: 3 (failed: 1)",
		"Total shapes: 6",
		"Shapes per image: mean 3.00, stddev 1.41",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleEntries()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var doc struct {
		Images  []map[string]any `json:"images"`
		Summary Summary          `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if len(doc.Images) != 3 {
		t.Fatalf("images: got %d, want 3", len(doc.Images))
	}
	if doc.Images[0]["total"] != float64(2) || doc.Images[0]["with_holes"] != float64(1) {
		t.Errorf("first image: got %v", doc.Images[0])
	}
	if _, ok := doc.Images[1]["total"]; ok {
		t.Error("failed image should not carry counts")
	}
	if doc.Images[1]["error"] != "failed to open image: no such file" {
		t.Errorf("error field: got %v", doc.Images[1]["error"])
	}
	// Zero counts are still reported for successful images.
	if doc.Images[2]["with_holes"] != float64(0) {
		t.Errorf("zero with_holes should be present: %v", doc.Images[2])
	}
	if doc.Summary.Total != 6 {
		t.Errorf("summary total: got %d, want 6", doc.Summary.Total)
	}
}
