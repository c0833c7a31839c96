// Package batch counts shapes in many image files concurrently.
//
// Each worker processes whole files; the pixel pipeline for a single image
// stays sequential. Results come back in input order regardless of which
// worker finished first.
package batch

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/shape-count/internal/detection"
	"github.com/ironsheep/shape-count/internal/imaging"
	"github.com/ironsheep/shape-count/internal/report"
)

// ErrNoAnalyzer is returned in every entry when Runner.Analyzer is nil.
var ErrNoAnalyzer = errors.New("batch: runner has no analyzer")

// Runner processes image files with a shared cache and analyzer.
//
// The zero value is not usable; Analyzer must be set. A nil Cache gets a
// private cache per Run, Workers <= 0 means runtime.NumCPU(), and a nil
// Logger discards output.
type Runner struct {
	Cache    *imaging.ImageCache
	Analyzer *detection.Analyzer
	Binarize imaging.BinarizeOptions
	Workers  int
	Logger   logrus.FieldLogger
}

// Process loads and analyzes a single file.
func (r *Runner) Process(path string) report.Entry {
	return r.process(r.cache(), r.logger(), path)
}

// Run processes every path and returns one entry per path in input order.
//
// Cancelling ctx stops workers from starting new files; files not started
// carry ctx.Err() as their error.
func (r *Runner) Run(ctx context.Context, paths []string) []report.Entry {
	entries := make([]report.Entry, len(paths))
	if len(paths) == 0 {
		return entries
	}

	cache := r.cache()
	logger := r.logger()

	numWorkers := r.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(paths) {
		numWorkers = len(paths)
	}

	start := time.Now()
	done := make([]bool, len(paths))

	var wg sync.WaitGroup
	jobs := make(chan int, len(paths))

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				entries[i] = r.process(cache, logger, paths[i])
				done[i] = true
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for i := range entries {
		if !done[i] {
			entries[i] = report.Entry{Path: paths[i], Err: ctx.Err()}
		}
		if !entries[i].OK() {
			failed++
		}
	}

	logger.WithFields(logrus.Fields{
		"files":      len(paths),
		"failed":     failed,
		"workers":    numWorkers,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Info("batch complete")

	return entries
}

func (r *Runner) process(cache *imaging.ImageCache, logger logrus.FieldLogger, path string) report.Entry {
	entry := report.Entry{Path: path}
	log := logger.WithField("path", path)

	if r.Analyzer == nil {
		entry.Err = ErrNoAnalyzer
		return entry
	}

	g, err := cache.Load(path, r.Binarize)
	if err != nil {
		log.WithError(err).Warn("failed to load image")
		entry.Err = err
		return entry
	}
	entry.Width, entry.Height = g.Width(), g.Height()

	res, err := r.Analyzer.Analyze(g)
	if err != nil {
		log.WithError(err).Warn("failed to analyze image")
		entry.Err = err
		return entry
	}
	entry.Result = res

	log.WithFields(logrus.Fields{
		"width":         res.Width,
		"height":        res.Height,
		"total":         res.Total,
		"with_holes":    res.WithHoles,
		"without_holes": res.WithoutHoles,
	}).Debug("image analyzed")
	return entry
}

func (r *Runner) cache() *imaging.ImageCache {
	if r.Cache != nil {
		return r.Cache
	}
	return imaging.NewImageCache()
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Logger != nil {
		return r.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
