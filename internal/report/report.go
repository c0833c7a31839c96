// Package report formats per-image shape counts for the console and for JSON consumers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/shape-count/internal/detection"
)

// Entry is the outcome of processing one image. Exactly one of Result and Err is set.
type Entry struct {
	Path   string
	Width  int
	Height int
	Result *detection.Result
	Err    error
}

// OK reports whether the image was analyzed successfully.
func (e Entry) OK() bool { return e.Err == nil && e.Result != nil }

// Summary aggregates the successful entries of a run.
type Summary struct {
	Images       int     `json:"images"`
	Failed       int     `json:"failed"`
	Total        int     `json:"total"`
	WithHoles    int     `json:"with_holes"`
	WithoutHoles int     `json:"without_holes"`
	MeanShapes   float64 `json:"mean_shapes"`
	StdDevShapes float64 `json:"stddev_shapes"`
}

// Summarize totals the counts of every successful entry and computes the
// mean and sample standard deviation of shapes per image. With fewer than
// two successful images the standard deviation is 0.
func Summarize(entries []Entry) Summary {
	var s Summary
	totals := make([]float64, 0, len(entries))
	for _, e := range entries {
		s.Images++
		if !e.OK() {
			s.Failed++
			continue
		}
		s.Total += e.Result.Total
		s.WithHoles += e.Result.WithHoles
		s.WithoutHoles += e.Result.WithoutHoles
		totals = append(totals, float64(e.Result.Total))
	}

	switch len(totals) {
	case 0:
	case 1:
		s.MeanShapes = totals[0]
	default:
		s.MeanShapes, s.StdDevShapes = stat.MeanStdDev(totals, nil)
		if math.IsNaN(s.StdDevShapes) {
			s.StdDevShapes = 0
		}
	}
	return s
}

// WriteText prints one block per entry:
//
//	Image read: "shapes.pbm" (Width: 14, Height: 8)
//	Total shapes: 2
//	Shapes with holes: 1
//	Shapes without holes: 1
//
// Failed entries print a single error line in place of the block.
func WriteText(w io.Writer, entries []Entry) error {
	for i, e := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeEntry(w, e); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(w io.Writer, e Entry) error {
	if !e.OK() {
		err := e.Err
		if err == nil {
			err = fmt.Errorf("no result")
		}
		_, werr := fmt.Fprintf(w, "Error reading %q: %v\n", e.Path, err)
		return werr
	}
	_, err := fmt.Fprintf(w,
		"Image read: %q (Width: %d, Height: %d)\nTotal shapes: %d\nShapes with holes: %d\nShapes without holes: %d\n",
		e.Path, e.Width, e.Height, e.Result.Total, e.Result.WithHoles, e.Result.WithoutHoles)
	return err
}

// WriteSummary prints the aggregate block used by the -summary flag.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"Images: %d (failed: %d)\nTotal shapes: %d\nShapes with holes: %d\nShapes without holes: %d\nShapes per image: mean %.2f, stddev %.2f\n",
		s.Images, s.Failed, s.Total, s.WithHoles, s.WithoutHoles, s.MeanShapes, s.StdDevShapes)
	return err
}

// Image is the JSON form of an Entry; errors become strings.
type Image struct {
	Path         string `json:"path"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	Total        *int   `json:"total,omitempty"`
	WithHoles    *int   `json:"with_holes,omitempty"`
	WithoutHoles *int   `json:"without_holes,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Document is the JSON output of a run.
type Document struct {
	Images  []Image `json:"images"`
	Summary Summary `json:"summary"`
}

// NewDocument converts entries to their JSON form together with their summary.
func NewDocument(entries []Entry) Document {
	doc := Document{
		Images:  make([]Image, 0, len(entries)),
		Summary: Summarize(entries),
	}
	for _, e := range entries {
		je := Image{Path: e.Path, Width: e.Width, Height: e.Height}
		if e.OK() {
			r := *e.Result
			je.Total, je.WithHoles, je.WithoutHoles = &r.Total, &r.WithHoles, &r.WithoutHoles
		} else if e.Err != nil {
			je.Error = e.Err.Error()
		} else {
			je.Error = "no result"
		}
		doc.Images = append(doc.Images, je)
	}
	return doc
}

// WriteJSON writes the entries and their summary as indented JSON.
func WriteJSON(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(entries)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
