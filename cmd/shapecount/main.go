package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/shape-count/internal/batch"
	"github.com/ironsheep/shape-count/internal/detection"
	"github.com/ironsheep/shape-count/internal/imaging"
	"github.com/ironsheep/shape-count/internal/report"
	"github.com/ironsheep/shape-count/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// logLevelEnv overrides the default log level (debug, info, warn, error).
const logLevelEnv = "SHAPECOUNT_LOG_LEVEL"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code:
// 0 on success, 1 if any image failed, 2 for usage errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			fmt.Fprintf(stdout, "shapecount %s\n", Version)
			fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
			return 0
		case "--help", "-h", "help":
			printHelp(stdout)
			return 0
		case "serve":
			return serve(args[1:], stderr)
		}
	}

	fs := flag.NewFlagSet("shapecount", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printHelp(stderr) }

	var (
		op        = fs.String("op", "erode", "envelope operation: erode or dilate")
		totalConn = fs.Int("total-conn", 8, "connectivity for counting shapes: 4 or 8")
		holeConn  = fs.Int("hole-conn", 4, "connectivity for counting holes: 4 or 8")
		minArea   = fs.Int("min-area", 0, "ignore shape borders with fewer pixels")
		threshold = fs.Int("threshold", 128, "luminance cutoff for raster images (0-255)")
		ink       = fs.String("ink", "", "count pixels close to this #RRGGBB color instead of thresholding")
		tolerance = fs.Float64("tolerance", 0.1, "CIEDE2000 distance from -ink still counted as foreground")
		invert    = fs.Bool("invert", false, "swap foreground and background (light shapes on dark)")
		asJSON    = fs.Bool("json", false, "write results as JSON")
		summary   = fs.Bool("summary", false, "print totals across all images")
		workers   = fs.Int("workers", 0, "images processed in parallel (0 = number of CPUs)")
		debug     = fs.Bool("debug", false, "enable debug logging")
	)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "Invalid number of arguments.")
		fmt.Fprintln(stderr, "Usage: shapecount [flags] <image>...")
		return 2
	}

	logger := initLogger(*debug, os.Getenv(logLevelEnv), stderr)

	cfg, err := detection.ParseConfig(*op, *totalConn, *holeConn, *minArea)
	if err != nil {
		fmt.Fprintf(stderr, "shapecount: %v\n", err)
		return 2
	}
	analyzer, err := detection.NewAnalyzer(cfg, detection.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stderr, "shapecount: %v\n", err)
		return 2
	}

	opts, err := binarizeOptions(*threshold, *ink, *tolerance, *invert)
	if err != nil {
		fmt.Fprintf(stderr, "shapecount: %v\n", err)
		return 2
	}

	logger.WithFields(logrus.Fields{
		"version":   Version,
		"files":     len(paths),
		"operation": cfg.Operation.String(),
		"mode":      opts.Mode.String(),
	}).Debug("starting")

	runner := &batch.Runner{
		Cache:    imaging.NewImageCache(),
		Analyzer: analyzer,
		Binarize: opts,
		Workers:  *workers,
		Logger:   logger,
	}
	entries := runner.Run(ctx, paths)

	if *asJSON {
		err = report.WriteJSON(stdout, entries)
	} else {
		err = report.WriteText(stdout, entries)
		if err == nil && *summary {
			fmt.Fprintln(stdout)
			err = report.WriteSummary(stdout, report.Summarize(entries))
		}
	}
	if err != nil {
		logger.WithError(err).Error("failed to write report")
		return 1
	}

	for _, e := range entries {
		if !e.OK() {
			return 1
		}
	}
	return 0
}

func binarizeOptions(threshold int, ink string, tolerance float64, invert bool) (imaging.BinarizeOptions, error) {
	opts := imaging.DefaultBinarizeOptions()
	if threshold < 0 || threshold > 255 {
		return opts, fmt.Errorf("-threshold must be between 0 and 255, got %d", threshold)
	}
	opts.Level = uint8(threshold)
	if ink != "" {
		opts.Mode = imaging.ModeInk
		opts.Ink = ink
	}
	opts.Tolerance = tolerance
	opts.Invert = invert
	return opts, nil
}

// serve runs the MCP server on stdin/stdout. Logs go to stderr because
// stdout carries the protocol.
func serve(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := initLogger(*debug, os.Getenv(logLevelEnv), stderr)
	logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"commit":     GitCommit,
	}).Info("starting MCP server")

	srv := server.New(logger)
	if err := srv.Run(); err != nil {
		logger.WithError(err).Error("server error")
		return 1
	}
	return 0
}

// initLogger builds the process logger. -debug wins over the environment;
// an unknown level falls back to warn.
func initLogger(debug bool, envLevel string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	level := logrus.WarnLevel
	if envLevel != "" {
		if l, err := logrus.ParseLevel(strings.TrimSpace(envLevel)); err == nil {
			level = l
		}
	}
	if debug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "shapecount - count shapes and shapes with holes in black-and-white images")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  shapecount [flags] <image>...   Analyze PBM (P1/P4) or raster images")
	fmt.Fprintln(w, "  shapecount serve [-debug]       Run as an MCP server over stdin/stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -op erode|dilate       Envelope operation (default erode)")
	fmt.Fprintln(w, "  -total-conn 4|8        Connectivity for counting shapes (default 8)")
	fmt.Fprintln(w, "  -hole-conn 4|8         Connectivity for counting holes (default 4)")
	fmt.Fprintln(w, "  -min-area N            Ignore shape borders with fewer than N pixels")
	fmt.Fprintln(w, "  -threshold N           Luminance cutoff for raster images (default 128)")
	fmt.Fprintln(w, "  -ink #RRGGBB           Foreground is this color instead of dark pixels")
	fmt.Fprintln(w, "  -tolerance F           Color distance allowed with -ink (default 0.1)")
	fmt.Fprintln(w, "  -invert                Light shapes on a dark background")
	fmt.Fprintln(w, "  -json                  Write results as JSON")
	fmt.Fprintln(w, "  -summary               Print totals across all images")
	fmt.Fprintln(w, "  -workers N             Images processed in parallel (default: CPUs)")
	fmt.Fprintln(w, "  -debug                 Enable debug logging")
	fmt.Fprintln(w, "  --version, -v          Print version information")
	fmt.Fprintln(w, "  --help, -h             Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintf(w, "  %s=debug    Set the log level (debug, info, warn, error)\n", logLevelEnv)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 1 if any image could not be read or analyzed.")
}
