// Package server implements the MCP (Model Context Protocol) server for the
// icon tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the icon pipeline
// through the MCP protocol, so an AI client can turn a logo file into a clean
// transparent icon set.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_dominant_colors: Extract color palette
//   - icon_background_color: Guess the background from the corners
//
// Icon Operations:
//   - icon_detect_bounds: Content bounding box and crop statistics
//   - icon_generate: Run the pipeline and return the icon
//   - icon_sizes: Render the icon at a set of square sizes
//   - icon_audit: Grade an icon and optionally apply a fix
//
// # Pipeline Options
//
// icon_generate, icon_sizes and icon_audit share one set of pipeline
// options. Arguments are decoded on top of the configured defaults, so an
// omitted option keeps the server's default rather than the zero value.
//
// # Image Caching
//
// Decoded images are cached by path and reused across tool calls. The cache
// size is bounded by the cache_limit setting.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params), -32601 (unknown method) or -32700 (unparseable request)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	cfg := config.Default()
//	cfg.Resolve(config.Flags{})
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
