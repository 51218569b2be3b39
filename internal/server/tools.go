package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// pipelineProperties are the icon pipeline options shared by icon_generate,
// icon_sizes and icon_audit. Omitted options fall back to the server's
// configured defaults.
func pipelineProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"masking": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"none", "autocrop", "color_whole", "color_border"},
			"description": "Foreground selection. color_border (Magic Wand) only removes background connected to the image edge, so interior details of the same color survive. Default none",
			"default":     "none",
		},
		"reference": map[string]interface{}{
			"type":        "string",
			"description": "Background color to mask as #RRGGBB or #RRGGBBAA, or 'auto' to take the most common corner color. Default auto",
			"default":     "auto",
		},
		"extra_colors": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": "Additional colors removed in color_whole mode",
		},
		"tolerance": map[string]interface{}{
			"type":        "integer",
			"description": "Color match tolerance (0-255)",
		},
		"crop_after": map[string]interface{}{
			"type":        "boolean",
			"description": "Crop to the content after masking. Default true",
			"default":     true,
		},
		"crop_padding": map[string]interface{}{
			"type":        "integer",
			"description": "Pixels of margin kept around the content when cropping (0-256)",
		},
		"mask_adjust": map[string]interface{}{
			"type":        "integer",
			"description": "Grow (positive) or shrink (negative) the mask in pixels (-5 to 5). Default 0",
			"default":     0,
		},
		"defringe": map[string]interface{}{
			"type":        "boolean",
			"description": "Darken semi-transparent edge pixels to remove light halos",
		},
		"defringe_strength": map[string]interface{}{
			"type":        "number",
			"description": "Defringe strength (0-1). 0 uses the proportional formula",
			"default":     0,
		},
		"edge_threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Alpha below which edge pixels are removed as debris (0-50)",
		},
		"smart_cleanup": map[string]interface{}{
			"type":        "boolean",
			"description": "Rebuild smooth anti-aliased edges by supersampling the mask",
		},
		"smart": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"factor":        map[string]interface{}{"type": "integer", "description": "Supersampling factor (2-8, default 4)"},
				"median_radius": map[string]interface{}{"type": "integer", "description": "Noise removal radius (0-3, default 1)"},
				"blur_radius":   map[string]interface{}{"type": "number", "description": "Smoothing radius (0-8, default 2)"},
				"stroke_weight": map[string]interface{}{"type": "integer", "description": "Thicken (positive) or thin (negative) strokes (-10 to 10)"},
				"smoothing":     map[string]interface{}{"type": "integer", "description": "Shave small bumps off the outline (0-100, default 0)"},
				"sharpen":       map[string]interface{}{"type": "integer", "description": "Firm up the anti-aliased edge (0-100, default 0)"},
			},
			"description": "Options for smart_cleanup",
		},
		"remove_matte": map[string]interface{}{
			"type":        "string",
			"description": "Optional #RRGGBB matte color to un-blend from semi-transparent pixels",
		},
		"glow": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"color":   map[string]interface{}{"type": "string", "description": "Glow color as #RRGGBB (default #000000)"},
				"opacity": map[string]interface{}{"type": "integer", "description": "Peak glow opacity (0-255, default 180)"},
				"radius":  map[string]interface{}{"type": "number", "description": "Glow blur radius in pixels (0-32, default 3)"},
			},
			"description": "Draw a soft glow or shadow behind the content",
		},
		"fill_background": map[string]interface{}{
			"type":        "string",
			"description": "Optional #RRGGBB color to flatten the result onto, removing transparency",
		},
	}
}

func withProperties(base map[string]interface{}, extra map[string]interface{}) map[string]interface{} {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file (PNG, JPEG, GIF, BMP, TIFF, WebP or TGA) and return its dimensions, format and whether it has an alpha channel.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate. Use it to pick a masking reference color.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "image_sample_colors_multi",
			Description: "Get color values at multiple pixel coordinates in a single call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Array of points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "Return the N most common visible colors of an image (color palette extraction). Transparent pixels are ignored.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to return (default 5)",
						"default":     5,
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional region to analyze. If omitted, analyzes entire image.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_background_color",
			Description: "Guess the background color of a logo from its four corners. The result can be passed as the masking reference.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Icon Operations
		{
			Name:        "icon_detect_bounds",
			Description: "Find the tightest box around the visible content and report how much of the image a crop would discard. Optionally return the cropped image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels of margin added on every side, clamped to the image (default 0)",
						"default":     0,
					},
					"alpha_threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Alpha a pixel must exceed to count as content (0-254, default 0)",
						"default":     0,
					},
					"background": map[string]interface{}{
						"type":        "string",
						"description": "For images without transparency: #RRGGBB background, or 'auto'. Pixels not matching it count as content",
					},
					"tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Background match tolerance (0-255)",
					},
					"include_image": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the cropped image as base64 PNG",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_generate",
			Description: "Turn a logo into a clean transparent icon: mask the background, crop to content, adjust and clean the edges. Returns the image, its bounds in source coordinates and the stage trace.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(pipelineProperties(), map[string]interface{}{
					"binary_alpha": map[string]interface{}{
						"type":        "integer",
						"description": "Optional threshold: alpha above it becomes 255, the rest 0. For targets without alpha blending",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "webp"},
						"description": "Output encoding (default from server config)",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_sizes",
			Description: "Generate an icon and render it as a set of square sizes (default 16, 32, 48, 64, 100, 128, 256, 512, 1024).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(pipelineProperties(), map[string]interface{}{
					"sizes": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Square sizes to render (1-4096)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Zoom applied after fitting. 0.9 leaves a 10% margin. Default 1.0",
						"default":     1.0,
					},
					"fit": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"contain", "cover"},
						"description": "contain pads non-square icons, cover crops them to the most interesting square. Default contain",
						"default":     "contain",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"png", "webp"},
						"description": "Output encoding (default from server config)",
					},
				}),
				"required": []string{"path"},
			},
		},
		{
			Name:        "icon_audit",
			Description: "Grade an icon for aspect ratio, resolution, transparency, edge quality and stray pixels. With generate=true the pipeline result is audited instead of the file. With fix, the named fix action is applied and the repaired image returned.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": withProperties(pipelineProperties(), map[string]interface{}{
					"generate": map[string]interface{}{
						"type":        "boolean",
						"description": "Run the icon pipeline first and audit its output (default false)",
						"default":     false,
					},
					"fix": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"crop_square", "smart_cleanup", "sharpen", "clean_debris"},
						"description": "Optional fix action to apply after auditing",
					},
				}),
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
