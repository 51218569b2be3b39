package server

import (
	"encoding/json"
	"fmt"
	"image"
	"log"

	"github.com/ironsheep/icon-factory-mcp/internal/iconkit"
	"github.com/ironsheep/icon-factory-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "icon_generate").
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
		if s.cfg.Debug() {
			log.Printf("%s failed: %v", params.Name, err)
		}
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
//  1. Unmarshals arguments from JSON over the configured defaults
//  2. Loads images from cache as needed
//  3. Calls the appropriate imaging/iconkit function
//  4. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)
	case "image_sample_colors_multi":
		return s.handleImageSampleColorsMulti(args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(args)
	case "icon_background_color":
		return s.handleIconBackgroundColor(args)

	// Icon Operations
	case "icon_detect_bounds":
		return s.handleIconDetectBounds(args)
	case "icon_generate":
		return s.handleIconGenerate(args)
	case "icon_sizes":
		return s.handleIconSizes(args)
	case "icon_audit":
		return s.handleIconAudit(args)

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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}

type imageSampleColorsMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleImageSampleColorsMulti(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorsMultiArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type imageDominantColorsArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

func (s *Server) handleImageDominantColors(args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region *imaging.Region
	if a.Region != nil {
		region = &imaging.Region{X1: a.Region.X1, Y1: a.Region.Y1, X2: a.Region.X2, Y2: a.Region.Y2}
	}
	return imaging.DominantColors(img, a.Count, region)
}

func (s *Server) handleIconBackgroundColor(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.BackgroundColor(img)
}

// === Icon Operation Handlers ===

type iconDetectBoundsArgs struct {
	Path           string `json:"path"`
	Padding        int    `json:"padding"`
	AlphaThreshold int    `json:"alpha_threshold"`
	Background     string `json:"background"`
	Tolerance      int    `json:"tolerance"`
	IncludeImage   bool   `json:"include_image"`
}

type iconDetectBoundsResult struct {
	Bounds iconkit.BoundingBox   `json:"bounds"`
	Empty  bool                  `json:"empty"`
	Crop   imaging.CropInfo      `json:"crop"`
	Image  *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleIconDetectBounds(args json.RawMessage) (interface{}, error) {
	a := iconDetectBoundsArgs{Tolerance: s.cfg.Defaults.Tolerance}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Padding < 0 || a.Padding > iconkit.MaxCropPadding {
		return nil, fmt.Errorf("padding %d out of range [0,%d]", a.Padding, iconkit.MaxCropPadding)
	}
	if a.AlphaThreshold < 0 || a.AlphaThreshold > 254 {
		return nil, fmt.Errorf("alpha_threshold %d out of range [0,254]", a.AlphaThreshold)
	}
	if a.Tolerance < 0 || a.Tolerance > iconkit.MaxTolerance {
		return nil, fmt.Errorf("tolerance %d out of range [0,%d]", a.Tolerance, iconkit.MaxTolerance)
	}

	grid, err := s.cache.LoadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	img := grid.Image()

	opts := iconkit.BoundsOptions{
		Padding:        a.Padding,
		AlphaThreshold: uint8(a.AlphaThreshold),
		Tolerance:      a.Tolerance,
	}
	if a.Background != "" {
		bg, err := resolveColor(img, a.Background)
		if err != nil {
			return nil, err
		}
		opts.Background = &bg
	}

	b := img.Bounds()
	box := iconkit.DetectBounds(grid, opts)
	result := &iconDetectBoundsResult{
		Bounds: box,
		Empty:  box.Empty(),
		Crop:   imaging.NewCropInfo(b.Dx(), b.Dy(), box),
	}
	if a.IncludeImage && !box.Empty() {
		cropped, err := imaging.CropToBox(img, box, 1.0)
		if err != nil {
			return nil, err
		}
		if result.Image, err = imaging.EncodeImage(cropped, imaging.FormatPNG); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// pipelineArgs are the icon pipeline options shared by the generating tools.
type pipelineArgs struct {
	Path             string               `json:"path"`
	Masking          string               `json:"masking"`
	Reference        string               `json:"reference"`
	ExtraColors      []string             `json:"extra_colors"`
	Tolerance        int                  `json:"tolerance"`
	CropAfter        bool                 `json:"crop_after"`
	CropPadding      int                  `json:"crop_padding"`
	MaskAdjust       int                  `json:"mask_adjust"`
	Defringe         bool                 `json:"defringe"`
	DefringeStrength float64              `json:"defringe_strength"`
	EdgeThreshold    int                  `json:"edge_threshold"`
	SmartCleanup     bool                 `json:"smart_cleanup"`
	Smart            iconkit.SmartOptions `json:"smart"`
	RemoveMatte      string               `json:"remove_matte"`
	Glow             *glowArgs            `json:"glow"`
	FillBackground   string               `json:"fill_background"`
}

type glowArgs struct {
	Color   string  `json:"color"`
	Opacity *int    `json:"opacity"`
	Radius  float64 `json:"radius"`
}

// defaultGlowOpacity matches a dark drop shadow.
const defaultGlowOpacity = 180

func (g glowArgs) glow() (iconkit.Glow, error) {
	c := iconkit.RGB(0, 0, 0)
	if g.Color != "" {
		var err error
		if c, err = iconkit.ParseHexColor(g.Color); err != nil {
			return iconkit.Glow{}, err
		}
	}
	opacity := defaultGlowOpacity
	if g.Opacity != nil {
		opacity = *g.Opacity
	}
	if opacity < 0 || opacity > 255 {
		return iconkit.Glow{}, fmt.Errorf("glow opacity %d out of range [0,255]", opacity)
	}
	if g.Radius < 0 || g.Radius > iconkit.MaxGlowRadius {
		return iconkit.Glow{}, fmt.Errorf("glow radius %g out of range [0,%g]", g.Radius, iconkit.MaxGlowRadius)
	}
	c.A = uint8(opacity)
	return iconkit.Glow{Color: c, Radius: g.Radius}, nil
}

// defaultPipelineArgs seeds tool arguments with the configured defaults so
// that unmarshalling only overrides what the caller sent.
func (s *Server) defaultPipelineArgs() pipelineArgs {
	d := s.cfg.Defaults
	return pipelineArgs{
		Masking:       iconkit.ModeNone.String(),
		Reference:     "auto",
		Tolerance:     d.Tolerance,
		CropAfter:     true,
		CropPadding:   d.CropPadding,
		Defringe:      d.Defringe,
		EdgeThreshold: d.EdgeThreshold,
		SmartCleanup:  d.SmartCleanup,
		Smart:         d.Smart,
	}
}

// pipelineConfig turns tool arguments into a pipeline configuration.
// Range checks are left to iconkit.Generate.
func (s *Server) pipelineConfig(a pipelineArgs, img image.Image) (iconkit.Config, error) {
	cfg := s.cfg.Defaults.Pipeline()
	cfg.CropPadding = a.CropPadding
	cfg.Edges.MaskAdjust = a.MaskAdjust
	cfg.Edges.Defringe = a.Defringe
	cfg.Edges.DefringeStrength = a.DefringeStrength
	cfg.Edges.EdgeThreshold = a.EdgeThreshold
	cfg.Edges.SmartCleanup = a.SmartCleanup
	cfg.Edges.Smart = a.Smart

	switch a.Masking {
	case "", iconkit.ModeNone.String():
		cfg.Masking = iconkit.NoMasking{}
	case iconkit.ModeAutoCrop.String():
		cfg.Masking = iconkit.AutoCrop{}
	case iconkit.ModeColorMaskWhole.String(), iconkit.ModeColorMaskBorder.String():
		ref, err := resolveColor(img, a.Reference)
		if err != nil {
			return cfg, err
		}
		if a.Masking == iconkit.ModeColorMaskBorder.String() {
			if len(a.ExtraColors) > 0 {
				return cfg, fmt.Errorf("extra_colors requires color_whole masking")
			}
			cfg.Masking = iconkit.ColorMaskBorder{Reference: ref, Tolerance: a.Tolerance, CropAfter: a.CropAfter}
			break
		}
		extra := make([]iconkit.Color, 0, len(a.ExtraColors))
		for _, hex := range a.ExtraColors {
			c, err := iconkit.ParseHexColor(hex)
			if err != nil {
				return cfg, err
			}
			extra = append(extra, c)
		}
		cfg.Masking = iconkit.ColorMaskWhole{Reference: ref, Tolerance: a.Tolerance, CropAfter: a.CropAfter, Extra: extra}
	default:
		return cfg, fmt.Errorf("unknown masking mode: %s", a.Masking)
	}
	return cfg, nil
}

// resolveColor parses a hex color, or detects the background when s is
// empty or "auto".
func resolveColor(img image.Image, s string) (iconkit.Color, error) {
	if s == "" || s == "auto" {
		bg, err := imaging.BackgroundColor(img)
		if err != nil {
			return iconkit.Color{}, err
		}
		return iconkit.ParseHexColor(bg.Color.Hex)
	}
	return iconkit.ParseHexColor(s)
}

// generate loads the source, runs the pipeline over it and applies the
// finishing effects in order: matte removal, glow, background fill.
func (s *Server) generate(a pipelineArgs) (*iconkit.Result, error) {
	src, err := s.cache.LoadGrid(a.Path)
	if err != nil {
		return nil, err
	}
	cfg, err := s.pipelineConfig(a, src.Image())
	if err != nil {
		return nil, err
	}

	res, err := iconkit.Generate(src, cfg)
	if err != nil {
		return nil, err
	}
	if a.RemoveMatte != "" {
		matte, err := iconkit.ParseHexColor(a.RemoveMatte)
		if err != nil {
			return nil, err
		}
		res.Grid = iconkit.RemoveMatte(res.Grid, matte)
	}
	if a.Glow != nil {
		glow, err := a.Glow.glow()
		if err != nil {
			return nil, err
		}
		res.Grid = iconkit.AddGlow(res.Grid, glow)
	}
	if a.FillBackground != "" {
		bg, err := iconkit.ParseHexColor(a.FillBackground)
		if err != nil {
			return nil, err
		}
		bg.A = 0xff
		res.Grid = iconkit.AddBackground(res.Grid, bg)
	}
	if s.cfg.Debug() {
		log.Printf("generated %s: %s masking, %dx%d, bounds %+v", a.Path, cfg.Masking.Mode(), res.Grid.Width(), res.Grid.Height(), res.Bounds)
	}
	return res, nil
}

type iconGenerateArgs struct {
	pipelineArgs
	BinaryAlpha *int   `json:"binary_alpha"`
	Format      string `json:"format"`
}

type iconGenerateResult struct {
	Width  int                   `json:"width"`
	Height int                   `json:"height"`
	Bounds iconkit.BoundingBox   `json:"bounds"`
	Crop   iconkit.BoundingBox   `json:"crop"`
	Trace  []iconkit.StageRecord `json:"trace"`
	Image  *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleIconGenerate(args json.RawMessage) (interface{}, error) {
	a := iconGenerateArgs{pipelineArgs: s.defaultPipelineArgs(), Format: s.cfg.OutputFormat}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.BinaryAlpha != nil && (*a.BinaryAlpha < 0 || *a.BinaryAlpha > 254) {
		return nil, fmt.Errorf("binary_alpha %d out of range [0,254]", *a.BinaryAlpha)
	}

	res, err := s.generate(a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	grid := res.Grid
	if a.BinaryAlpha != nil {
		grid = iconkit.BinaryAlpha(grid, uint8(*a.BinaryAlpha))
	}

	enc, err := imaging.EncodeImage(grid.Image(), a.Format)
	if err != nil {
		return nil, err
	}
	return &iconGenerateResult{
		Width:  grid.Width(),
		Height: grid.Height(),
		Bounds: res.Bounds,
		Crop:   res.Crop,
		Trace:  res.Trace,
		Image:  enc,
	}, nil
}

type iconSizesArgs struct {
	pipelineArgs
	Sizes  []int   `json:"sizes"`
	Scale  float64 `json:"scale"`
	Fit    string  `json:"fit"`
	Format string  `json:"format"`
}

type iconSizesResult struct {
	Bounds iconkit.BoundingBox `json:"bounds"`
	Icons  []imaging.SizedIcon `json:"icons"`
}

func (s *Server) handleIconSizes(args json.RawMessage) (interface{}, error) {
	a := iconSizesArgs{pipelineArgs: s.defaultPipelineArgs(), Scale: 1.0, Format: s.cfg.OutputFormat}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	fit, err := imaging.ParseFitMode(a.Fit)
	if err != nil {
		return nil, err
	}

	res, err := s.generate(a.pipelineArgs)
	if err != nil {
		return nil, err
	}
	icons, err := imaging.IconSizes(res.Grid.Image(), a.Sizes, a.Scale, fit, a.Format)
	if err != nil {
		return nil, err
	}
	return &iconSizesResult{Bounds: res.Bounds, Icons: icons}, nil
}

type iconAuditArgs struct {
	pipelineArgs
	Generate bool   `json:"generate"`
	Fix      string `json:"fix"`
}

type iconAuditResult struct {
	*imaging.AuditReport
	Passed bool                  `json:"passed"`
	Fixes  []string              `json:"fixes,omitempty"`
	Fixed  *imaging.EncodedImage `json:"fixed_image,omitempty"`
}

func (s *Server) handleIconAudit(args json.RawMessage) (interface{}, error) {
	a := iconAuditArgs{pipelineArgs: s.defaultPipelineArgs()}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var img image.Image
	if a.Generate {
		res, err := s.generate(a.pipelineArgs)
		if err != nil {
			return nil, err
		}
		img = res.Grid.Image()
	} else {
		var err error
		if img, err = s.cache.Load(a.Path); err != nil {
			return nil, err
		}
	}

	report := imaging.Audit(img)
	result := &iconAuditResult{AuditReport: report, Passed: report.Passed(), Fixes: report.Fixes()}
	if a.Fix != "" {
		fixed, err := imaging.ApplyFix(img, a.Fix)
		if err != nil {
			return nil, err
		}
		if result.Fixed, err = imaging.EncodeImage(fixed, s.cfg.OutputFormat); err != nil {
			return nil, err
		}
	}
	return result, nil
}
