package iconkit

import "math"

// Configuration ranges.
const (
	MaxTolerance     = 255
	MaxCropPadding   = 256
	MaxEdgeThreshold = 50
	MaxMaskAdjust    = 5
	MinSmartFactor   = 2
	MaxSmartFactor   = 8
	MaxSmartMedian   = 3
	MaxSmartBlur     = 8.0
	MaxSmartStroke   = 10
	MaxSmartStrength = 100
)

// DefaultEdgeThreshold is the debris cutoff used by DefaultConfig.
const DefaultEdgeThreshold = 10

// MaskingMode names the foreground selection policy.
type MaskingMode int

const (
	// ModeNone keeps every pixel.
	ModeNone MaskingMode = iota
	// ModeAutoCrop keeps every pixel and crops to the existing alpha content.
	ModeAutoCrop
	// ModeColorMaskWhole removes matching pixels anywhere in the image.
	ModeColorMaskWhole
	// ModeColorMaskBorder removes matching pixels connected to the border.
	ModeColorMaskBorder
)

func (m MaskingMode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAutoCrop:
		return "autocrop"
	case ModeColorMaskWhole:
		return "color_whole"
	case ModeColorMaskBorder:
		return "color_border"
	default:
		return "unknown"
	}
}

// Masking selects how the foreground is decided. The concrete types are
// NoMasking, AutoCrop, ColorMaskWhole and ColorMaskBorder; the interface is
// sealed so a color mask always carries its reference color.
type Masking interface {
	Mode() MaskingMode
	masking()
}

// NoMasking leaves the alpha channel as decoded.
type NoMasking struct{}

// AutoCrop leaves the alpha channel as decoded and crops to its content.
type AutoCrop struct{}

// ColorMaskWhole removes every pixel within Tolerance of Reference, and of
// each Extra color in turn.
type ColorMaskWhole struct {
	Reference Color
	Tolerance int
	CropAfter bool
	Extra     []Color
}

// ColorMaskBorder removes pixels within Tolerance of Reference that are
// connected to the image border (Magic Wand).
type ColorMaskBorder struct {
	Reference Color
	Tolerance int
	CropAfter bool
}

func (NoMasking) Mode() MaskingMode       { return ModeNone }
func (AutoCrop) Mode() MaskingMode        { return ModeAutoCrop }
func (ColorMaskWhole) Mode() MaskingMode  { return ModeColorMaskWhole }
func (ColorMaskBorder) Mode() MaskingMode { return ModeColorMaskBorder }

func (NoMasking) masking()       {}
func (AutoCrop) masking()        {}
func (ColorMaskWhole) masking()  {}
func (ColorMaskBorder) masking() {}

// EdgeConfig controls boundary adjustment and repair. The edge cleaner has no
// switch: it always runs with EdgeThreshold.
type EdgeConfig struct {
	Defringe         bool
	DefringeStrength float64
	EdgeThreshold    int
	MaskAdjust       int
	SmartCleanup     bool
	Smart            SmartOptions
}

// Config is the full pipeline configuration. It is read-only for the
// duration of a run.
type Config struct {
	Masking     Masking
	CropPadding int
	Edges       EdgeConfig
}

// DefaultConfig returns a configuration that keeps the source as decoded and
// only runs the edge cleaner at its default threshold.
func DefaultConfig() Config {
	return Config{
		Masking: NoMasking{},
		Edges: EdgeConfig{
			EdgeThreshold: DefaultEdgeThreshold,
			Smart:         DefaultSmartOptions(),
		},
	}
}

// cropAfterMasking reports whether the masking step is followed by a crop to
// content.
func (c Config) cropAfterMasking() bool {
	switch m := c.Masking.(type) {
	case AutoCrop:
		return true
	case ColorMaskWhole:
		return m.CropAfter
	case ColorMaskBorder:
		return m.CropAfter
	default:
		return false
	}
}

// Validate checks every numeric option against its range. The first
// violation is returned as an *InvalidConfigError.
func (c Config) Validate() error {
	switch m := c.Masking.(type) {
	case nil, NoMasking, AutoCrop:
	case ColorMaskWhole:
		if err := checkTolerance(m.Tolerance); err != nil {
			return err
		}
	case ColorMaskBorder:
		if err := checkTolerance(m.Tolerance); err != nil {
			return err
		}
	}

	if c.CropPadding < 0 || c.CropPadding > MaxCropPadding {
		return &InvalidConfigError{Field: "crop_padding", Value: c.CropPadding, Reason: "must be in [0,256]"}
	}

	e := c.Edges
	if e.EdgeThreshold < 0 || e.EdgeThreshold > MaxEdgeThreshold {
		return &InvalidConfigError{Field: "edge_threshold", Value: e.EdgeThreshold, Reason: "must be in [0,50]"}
	}
	if e.MaskAdjust < -MaxMaskAdjust || e.MaskAdjust > MaxMaskAdjust {
		return &InvalidConfigError{Field: "mask_adjust", Value: e.MaskAdjust, Reason: "must be in [-5,5]"}
	}
	if math.IsNaN(e.DefringeStrength) || e.DefringeStrength < 0 || e.DefringeStrength > 1 {
		return &InvalidConfigError{Field: "defringe_strength", Value: e.DefringeStrength, Reason: "must be in [0,1]"}
	}

	if !e.SmartCleanup {
		return nil
	}
	s := e.Smart.withDefaults()
	if s.Factor < MinSmartFactor || s.Factor > MaxSmartFactor {
		return &InvalidConfigError{Field: "smart.factor", Value: s.Factor, Reason: "must be in [2,8]"}
	}
	if s.MedianRadius < 0 || s.MedianRadius > MaxSmartMedian {
		return &InvalidConfigError{Field: "smart.median_radius", Value: s.MedianRadius, Reason: "must be in [0,3]"}
	}
	if math.IsNaN(s.BlurRadius) || s.BlurRadius <= 0 || s.BlurRadius > MaxSmartBlur {
		return &InvalidConfigError{Field: "smart.blur_radius", Value: s.BlurRadius, Reason: "must be in (0,8]"}
	}
	if s.StrokeWeight < -MaxSmartStroke || s.StrokeWeight > MaxSmartStroke {
		return &InvalidConfigError{Field: "smart.stroke_weight", Value: s.StrokeWeight, Reason: "must be in [-10,10]"}
	}
	if s.Smoothing < 0 || s.Smoothing > MaxSmartStrength {
		return &InvalidConfigError{Field: "smart.smoothing", Value: s.Smoothing, Reason: "must be in [0,100]"}
	}
	if s.Sharpen < 0 || s.Sharpen > MaxSmartStrength {
		return &InvalidConfigError{Field: "smart.sharpen", Value: s.Sharpen, Reason: "must be in [0,100]"}
	}
	return nil
}

func checkTolerance(t int) error {
	if t < 0 || t > MaxTolerance {
		return &InvalidConfigError{Field: "tolerance", Value: t, Reason: "must be in [0,255]"}
	}
	return nil
}
