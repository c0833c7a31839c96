package detection

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/shape-count/internal/bitmap"
)

// Result contains the shape counts for one image.
type Result struct {
	// Width and Height are the analyzed grid dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Total is the number of shapes (envelope components).
	Total int `json:"total"`

	// WithHoles is the number of hole components.
	WithHoles int `json:"with_holes"`

	// WithoutHoles is Total - WithHoles.
	WithoutHoles int `json:"without_holes"`
}

// Stages holds every intermediate grid of one pipeline run.
type Stages struct {
	Holes       *bitmap.Grid
	Solid       *bitmap.Grid
	Transformed *bitmap.Grid
	Envelope    *bitmap.Grid
}

// Analyzer runs the shape counting pipeline with a fixed Config.
//
// An Analyzer is immutable after construction and safe for concurrent use
// on different grids.
type Analyzer struct {
	cfg    Config
	logger logrus.FieldLogger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for per-stage debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer validates cfg and returns an Analyzer.
func NewAnalyzer(cfg Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Analyzer{cfg: cfg, logger: discardLogger()}
	for _, opt := range opts {
		opt(a)
	}
	for name, m := range map[string]bitmap.Mask{
		"structuring": cfg.StructuringMask,
		"total":       cfg.TotalMask,
		"hole":        cfg.HoleMask,
	} {
		if !m.Symmetric() {
			a.logger.WithField("mask", name).Debug("asymmetric mask: components are followed in the mask's direction only")
		}
	}
	return a, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Stages runs the pipeline up to the envelope and returns every
// intermediate grid. The input grid is not modified.
func (a *Analyzer) Stages(image *bitmap.Grid) (*Stages, error) {
	if image == nil {
		return nil, ErrNilGrid
	}

	holes := ExtractHoles(image, a.cfg.StructuringMask)

	solid, err := FillHoles(image, holes)
	if err != nil {
		return nil, fmt.Errorf("fill holes: %w", err)
	}

	transformed, err := a.cfg.Operation.Apply(solid, a.cfg.StructuringMask)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.cfg.Operation, err)
	}

	envelope, err := a.cfg.Operation.Boundary(solid, transformed)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	return &Stages{
		Holes:       holes,
		Solid:       solid,
		Transformed: transformed,
		Envelope:    envelope,
	}, nil
}

// Analyze counts the shapes of image, and how many of them have holes.
//
// Either all three counts are returned or an error; there are no partial
// results.
func (a *Analyzer) Analyze(image *bitmap.Grid) (*Result, error) {
	st, err := a.Stages(image)
	if err != nil {
		return nil, err
	}
	return a.count(st), nil
}

// Count computes the counts from stages previously returned by Stages.
func (a *Analyzer) Count(st *Stages) (*Result, error) {
	if st == nil || st.Holes == nil || st.Envelope == nil {
		return nil, ErrNilGrid
	}
	return a.count(st), nil
}

func (a *Analyzer) count(st *Stages) *Result {
	var total, withHoles, components int
	if a.cfg.MinShapeArea > 1 && st.Solid != nil {
		total, withHoles, components = a.countFiltered(st)
	} else {
		components = CountComponents(st.Envelope, a.cfg.TotalMask)
		total = components
		withHoles = CountComponents(st.Holes, a.cfg.HoleMask)
	}

	a.logger.WithFields(logrus.Fields{
		"operation":       a.cfg.Operation.String(),
		"hole_pixels":     st.Holes.Count(),
		"envelope_pixels": st.Envelope.Count(),
		"components":      components,
		"total":           total,
		"with_holes":      withHoles,
	}).Debug("pipeline counts")

	return &Result{
		Width:        st.Envelope.Width(),
		Height:       st.Envelope.Height(),
		Total:        total,
		WithHoles:    withHoles,
		WithoutHoles: total - withHoles,
	}
}

// countFiltered counts envelope components of at least MinShapeArea pixels
// and only the holes that belong to one of them.
//
// A hole belongs to a shape when both fall in the same component of
// Solid OR Envelope under the total mask. Kept shapes erase their component
// from that union; a hole counts if its first pixel was erased. Both scans
// run in ColumnMajor order, like CountComponents.
func (a *Analyzer) countFiltered(st *Stages) (total, withHoles, components int) {
	union := st.Solid.Clone()
	w, h := union.Width(), union.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if st.Envelope.Get(x, y) == 1 {
				union.Set(x, y, 1)
			}
		}
	}
	unkept := union.Clone()

	envelope := st.Envelope.Clone()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if envelope.Get(x, y) == 0 {
				continue
			}
			components++
			if EraseComponent(envelope, x, y, a.cfg.TotalMask) >= a.cfg.MinShapeArea {
				total++
				EraseComponent(unkept, x, y, a.cfg.TotalMask)
			}
		}
	}

	holes := st.Holes.Clone()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if holes.Get(x, y) == 0 {
				continue
			}
			kept := union.Get(x, y) == 1 && unkept.Get(x, y) == 0
			EraseComponent(holes, x, y, a.cfg.HoleMask)
			if kept {
				withHoles++
			}
		}
	}
	return total, withHoles, components
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
