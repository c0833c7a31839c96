package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/shape-count/internal/batch"
	"github.com/ironsheep/shape-count/internal/bitmap"
	"github.com/ironsheep/shape-count/internal/detection"
	"github.com/ironsheep/shape-count/internal/imaging"
	"github.com/ironsheep/shape-count/internal/report"
)

// maxRenderCells bounds the grids shapes_holes will return as text.
const maxRenderCells = 64 * 1024

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "shapes_count").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.WithField("tool", params.Name).WithError(err).Warn("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate imaging/detection/batch function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)

	// Shape Counting
	case "shapes_count":
		return s.handleShapesCount(args)
	case "shapes_count_batch":
		return s.handleShapesCountBatch(args)
	case "shapes_holes":
		return s.handleShapesHoles(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared Arguments ===

type binarizeArgs struct {
	Mode      string   `json:"mode"`
	Threshold *int     `json:"threshold"`
	Ink       string   `json:"ink"`
	Tolerance *float64 `json:"tolerance"`
	Invert    bool     `json:"invert"`
}

func (a binarizeArgs) options() (imaging.BinarizeOptions, error) {
	opts := imaging.DefaultBinarizeOptions()
	if a.Mode != "" {
		mode, err := imaging.ParseMode(a.Mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = mode
	}
	if a.Threshold != nil {
		if *a.Threshold < 0 || *a.Threshold > 255 {
			return opts, fmt.Errorf("threshold must be between 0 and 255, got %d", *a.Threshold)
		}
		opts.Level = uint8(*a.Threshold)
	}
	if a.Ink != "" {
		opts.Ink = a.Ink
	}
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	opts.Invert = a.Invert
	return opts, nil
}

type analysisArgs struct {
	Operation         string `json:"operation"`
	TotalConnectivity int    `json:"total_connectivity"`
	HoleConnectivity  int    `json:"hole_connectivity"`
	MinArea           int    `json:"min_area"`
}

func (a analysisArgs) analyzer(s *Server) (*detection.Analyzer, error) {
	cfg, err := detection.ParseConfig(a.Operation, a.TotalConnectivity, a.HoleConnectivity, a.MinArea)
	if err != nil {
		return nil, err
	}
	return detection.NewAnalyzer(cfg, detection.WithLogger(s.logger))
}

type regionArgs struct {
	Region string `json:"region"`
	X1     *int   `json:"x1"`
	Y1     *int   `json:"y1"`
	X2     *int   `json:"x2"`
	Y2     *int   `json:"y2"`
}

// apply crops g to the requested region. With no region it returns g unchanged.
func (a regionArgs) apply(g *bitmap.Grid) (*bitmap.Grid, *imaging.Region, error) {
	coords := a.X1 != nil || a.Y1 != nil || a.X2 != nil || a.Y2 != nil
	switch {
	case a.Region != "" && coords:
		return nil, nil, fmt.Errorf("use either region or x1/y1/x2/y2, not both")
	case a.Region != "":
		r, err := imaging.NamedRegion(a.Region, g.Width(), g.Height())
		if err != nil {
			return nil, nil, err
		}
		out, err := imaging.Crop(g, r)
		return out, &r, err
	case coords:
		if a.X1 == nil || a.Y1 == nil || a.X2 == nil || a.Y2 == nil {
			return nil, nil, fmt.Errorf("x1, y1, x2 and y2 must all be given")
		}
		r := imaging.Region{X1: *a.X1, Y1: *a.Y1, X2: *a.X2, Y2: *a.Y2}
		out, err := imaging.Crop(g, r)
		return out, &r, err
	default:
		return g, nil, nil
	}
}

type shapesArgs struct {
	Path string `json:"path"`
	regionArgs
	analysisArgs
	binarizeArgs
}

// prepare loads the image, crops it and builds the analyzer for a single-image tool.
func (s *Server) prepare(args json.RawMessage) (*shapesArgs, *bitmap.Grid, *imaging.Region, *detection.Analyzer, error) {
	var a shapesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, nil, nil, nil, err
	}
	if a.Path == "" {
		return nil, nil, nil, nil, fmt.Errorf("path is required")
	}
	opts, err := a.options()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	analyzer, err := a.analyzer(s)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	g, err := s.cache.Load(a.Path, opts)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	g, region, err := a.apply(g)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return &a, g, region, analyzer, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	binarizeArgs
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path, opts)
}

// === Shape Counting Handlers ===

// ShapesCountResult is the output of shapes_count.
type ShapesCountResult struct {
	Path      string          `json:"path"`
	Region    *imaging.Region `json:"region,omitempty"`
	Operation string          `json:"operation"`
	detection.Result
}

func (s *Server) handleShapesCount(args json.RawMessage) (interface{}, error) {
	a, g, region, analyzer, err := s.prepare(args)
	if err != nil {
		return nil, err
	}
	res, err := analyzer.Analyze(g)
	if err != nil {
		return nil, err
	}
	return &ShapesCountResult{
		Path:      a.Path,
		Region:    region,
		Operation: analyzer.Config().Operation.String(),
		Result:    *res,
	}, nil
}

type shapesCountBatchArgs struct {
	Paths   []string `json:"paths"`
	Workers int      `json:"workers"`
	analysisArgs
	binarizeArgs
}

func (s *Server) handleShapesCountBatch(args json.RawMessage) (interface{}, error) {
	var a shapesCountBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must contain at least one image")
	}
	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	analyzer, err := a.analyzer(s)
	if err != nil {
		return nil, err
	}

	runner := &batch.Runner{
		Cache:    s.cache,
		Analyzer: analyzer,
		Binarize: opts,
		Workers:  a.Workers,
		Logger:   s.logger,
	}
	return report.NewDocument(runner.Run(context.Background(), a.Paths)), nil
}

// ShapesHolesResult is the output of shapes_holes. Holes and Envelope hold
// one string of '0'/'1' per grid row.
type ShapesHolesResult struct {
	ShapesCountResult
	HolePixels     int      `json:"hole_pixels"`
	EnvelopePixels int      `json:"envelope_pixels"`
	Holes          []string `json:"holes"`
	Envelope       []string `json:"envelope"`
}

func (s *Server) handleShapesHoles(args json.RawMessage) (interface{}, error) {
	a, g, region, analyzer, err := s.prepare(args)
	if err != nil {
		return nil, err
	}
	if cells := g.Width() * g.Height(); cells > maxRenderCells {
		return nil, fmt.Errorf("image has %d pixels, more than %d; select a region first", cells, maxRenderCells)
	}

	st, err := analyzer.Stages(g)
	if err != nil {
		return nil, err
	}
	res, err := analyzer.Count(st)
	if err != nil {
		return nil, err
	}

	return &ShapesHolesResult{
		ShapesCountResult: ShapesCountResult{
			Path:      a.Path,
			Region:    region,
			Operation: analyzer.Config().Operation.String(),
			Result:    *res,
		},
		HolePixels:     st.Holes.Count(),
		EnvelopePixels: st.Envelope.Count(),
		Holes:          st.Holes.Lines(),
		Envelope:       st.Envelope.Lines(),
	}, nil
}
