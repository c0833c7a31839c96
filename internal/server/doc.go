// Package server implements the MCP (Model Context Protocol) server for shape counting.
//
// This package provides a JSON-RPC 2.0 server that exposes the shape counting
// pipeline through the MCP protocol, so MCP-compatible clients can count
// shapes and holes in image files.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load image and get metadata, including foreground pixel count
//   - shapes_count: Count shapes, shapes with holes and shapes without holes
//   - shapes_count_batch: Count shapes in many images concurrently, with a summary
//   - shapes_holes: Return the hole and envelope maps as 0/1 text rows
//
// The counting tools accept the same pipeline arguments (operation,
// total_connectivity, hole_connectivity, min_area) and binarization arguments
// (mode, threshold, ink, tolerance, invert). Single-image tools also accept a
// named region or x1/y1/x2/y2 to analyze part of the image.
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
