package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// regionNames lists the named regions accepted by the "region" argument.
var regionNames = []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"}

// pathProperty is the schema of the single-image "path" argument.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file (PBM P1/P4, or PNG, JPEG, GIF, BMP, TIFF, WebP)",
	}
}

// binarizeProperties describes how raster images are reduced to black and white.
// They are ignored for PBM input.
func binarizeProperties() map[string]interface{} {
	return map[string]interface{}{
		"mode": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"threshold", "ink"},
			"description": "How raster pixels become foreground: luminance threshold or distance to an ink color. Default threshold",
			"default":     "threshold",
		},
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Luminance cutoff 1-255; darker pixels are foreground. Default 128",
			"default":     128,
		},
		"ink": map[string]interface{}{
			"type":        "string",
			"description": "Foreground color for ink mode as #RRGGBB. Default #000000",
			"default":     "#000000",
		},
		"tolerance": map[string]interface{}{
			"type":        "number",
			"description": "Largest CIEDE2000 distance from the ink color (0-1 scale) still counted as foreground. Default 0.1",
			"default":     0.1,
		},
		"invert": map[string]interface{}{
			"type":        "boolean",
			"description": "Swap foreground and background, for light shapes on a dark background",
			"default":     false,
		},
	}
}

// analysisProperties describes the pipeline settings shared by the counting tools.
func analysisProperties() map[string]interface{} {
	return map[string]interface{}{
		"operation": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"erode", "dilate"},
			"description": "Envelope operation: erode traces each shape's inner border, dilate its outer border. Default erode",
			"default":     "erode",
		},
		"total_connectivity": map[string]interface{}{
			"type":        "integer",
			"enum":        []int{4, 8},
			"description": "Pixel connectivity when counting shapes. Default 8",
			"default":     8,
		},
		"hole_connectivity": map[string]interface{}{
			"type":        "integer",
			"enum":        []int{4, 8},
			"description": "Pixel connectivity when counting holes. Default 4",
			"default":     4,
		},
		"min_area": map[string]interface{}{
			"type":        "integer",
			"description": "Ignore shape borders with fewer pixels than this. Default 0 (keep all)",
			"default":     0,
		},
	}
}

// regionProperties describes the optional sub-image selection.
func regionProperties() map[string]interface{} {
	return map[string]interface{}{
		"region": map[string]interface{}{
			"type":        "string",
			"enum":        regionNames,
			"description": "Analyze only this named part of the image",
		},
		"x1": map[string]interface{}{
			"type":        "integer",
			"description": "Left edge X coordinate (0-based); with y1, x2, y2 selects a rectangle",
		},
		"y1": map[string]interface{}{
			"type":        "integer",
			"description": "Top edge Y coordinate (0-based)",
		},
		"x2": map[string]interface{}{
			"type":        "integer",
			"description": "Right edge X coordinate (exclusive)",
		},
		"y2": map[string]interface{}{
			"type":        "integer",
			"description": "Bottom edge Y coordinate (exclusive)",
		},
	}
}

func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and number of foreground pixels after binarization.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{"path": pathProperty()},
					binarizeProperties(),
				),
				"required": []string{"path"},
			},
		},

		// Shape Counting
		{
			Name:        "shapes_count",
			Description: "Count the distinct shapes in a black-and-white image, and how many of them enclose a hole. Returns total, with_holes and without_holes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{"path": pathProperty()},
					regionProperties(),
					analysisProperties(),
					binarizeProperties(),
				),
				"required": []string{"path"},
			},
		},
		{
			Name:        "shapes_count_batch",
			Description: "Count shapes in several images concurrently. Returns per-image counts in input order plus totals and the mean and standard deviation of shapes per image. A failing image does not stop the batch.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{
						"paths": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Absolute paths to the image files",
						},
						"workers": map[string]interface{}{
							"type":        "integer",
							"description": "Number of images processed in parallel. Default: number of CPUs",
						},
					},
					analysisProperties(),
					binarizeProperties(),
				),
				"required": []string{"paths"},
			},
		},
		{
			Name:        "shapes_holes",
			Description: "Show where the holes and shape borders are. Returns the hole map and the border (envelope) map as rows of 0/1 text, with the counts. Large images must be narrowed with a region first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": merge(
					map[string]interface{}{"path": pathProperty()},
					regionProperties(),
					analysisProperties(),
					binarizeProperties(),
				),
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
