package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/icon-factory-mcp/internal/iconkit"
)

// Severity grades an audit finding.
type Severity string

const (
	SeverityPass    Severity = "pass"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Fix actions an audit can recommend. ApplyFix knows how to perform each.
const (
	FixCropSquare   = "crop_square"
	FixSmartCleanup = "smart_cleanup"
	FixSharpen      = "sharpen"
	FixCleanDebris  = "clean_debris"
)

// Audit thresholds.
const (
	RecommendedMinSize = 512
	jaggedRatio        = 0.01
	blurryRatio        = 0.20
	dirtyAlpha         = 10
	dirtyPixelLimit    = 10
)

// AuditIssue is one line of the icon report card.
type AuditIssue struct {
	Check     string   `json:"check"`
	Severity  Severity `json:"severity"`
	Message   string   `json:"message"`
	FixAction string   `json:"fix_action,omitempty"`
}

// AuditReport is the full report card for an image.
type AuditReport struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Issues []AuditIssue `json:"issues"`

	// SmoothingRatio is the share of visible pixels with partial alpha.
	SmoothingRatio float64 `json:"smoothing_ratio"`

	// DirtyPixels counts nearly invisible pixels (0 < alpha < 10).
	DirtyPixels int `json:"dirty_pixels"`
}

// Passed reports whether no check produced a warning or error.
func (r *AuditReport) Passed() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning || issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Fixes lists the distinct fix actions recommended by the report, in check
// order.
func (r *AuditReport) Fixes() []string {
	var fixes []string
	seen := map[string]bool{}
	for _, issue := range r.Issues {
		if issue.FixAction != "" && !seen[issue.FixAction] {
			seen[issue.FixAction] = true
			fixes = append(fixes, issue.FixAction)
		}
	}
	return fixes
}

// Audit checks an icon source for common quality problems.
//
// # Checks
//
//   - Aspect Ratio: icons must be square (error, fix crop_square).
//   - Resolution: sides below 512px are a warning.
//   - Transparency: a fully opaque image is reported as info, since a logo
//     usually needs its background masked.
//   - Edge Quality: among visible pixels, the share with partial alpha.
//     Below 1% the edges are jagged (error, fix smart_cleanup); above 20%
//     they are blurry (warning, fix sharpen). Only run when alpha varies.
//   - Cleanliness: more than 10 pixels with 0 < alpha < 10 is a warning
//     (fix clean_debris).
func Audit(img image.Image) *AuditReport {
	g := iconkit.FromImage(img)
	w, h := g.Width(), g.Height()
	report := &AuditReport{Width: w, Height: h}
	add := func(check string, sev Severity, fix, format string, args ...any) {
		report.Issues = append(report.Issues, AuditIssue{
			Check:     check,
			Severity:  sev,
			Message:   fmt.Sprintf(format, args...),
			FixAction: fix,
		})
	}

	if w != h {
		add("Aspect Ratio", SeverityError, FixCropSquare, "Image is not square (%dx%d). Icons must be square.", w, h)
	} else {
		add("Aspect Ratio", SeverityPass, "", "Image is square")
	}

	if w < RecommendedMinSize {
		add("Resolution", SeverityWarning, "", "Resolution is low (%dpx). Recommended: 1024px for best quality.", w)
	} else {
		add("Resolution", SeverityPass, "", "High resolution (%dpx)", w)
	}

	var visible, partial, dirty int
	minA, maxA := uint8(0xff), uint8(0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := g.At(x, y).A
			minA, maxA = min(minA, a), max(maxA, a)
			if a == 0 {
				continue
			}
			visible++
			if a < 0xff {
				partial++
			}
			if a < dirtyAlpha {
				dirty++
			}
		}
	}
	if visible > 0 {
		report.SmoothingRatio = float64(partial) / float64(visible)
	}
	report.DirtyPixels = dirty

	switch {
	case w*h > 0 && minA == 0xff:
		add("Transparency", SeverityInfo, "", "Image is fully opaque. Mask the background if this is a logo or icon.")
	case minA != maxA:
		switch {
		case report.SmoothingRatio < jaggedRatio:
			add("Edge Quality", SeverityError, FixSmartCleanup, "Edges appear jagged/aliased (pixelated).")
		case report.SmoothingRatio > blurryRatio:
			add("Edge Quality", SeverityWarning, FixSharpen, "Edges appear blurry/soft.")
		default:
			add("Edge Quality", SeverityPass, "", "Edges look smooth and clean")
		}
	}

	if dirty > dirtyPixelLimit {
		add("Cleanliness", SeverityWarning, FixCleanDebris, "Found %d stray/dirty pixels.", dirty)
	} else {
		add("Cleanliness", SeverityPass, "", "No dirty pixels detected")
	}

	return report
}

// ApplyFix performs one recommended fix action and returns the repaired
// image.
//
//   - crop_square: contain the image in a square as wide as its longest side.
//   - smart_cleanup: run the pipeline with the smart edge reconstructor.
//   - sharpen: sharpen with a 1px sigma.
//   - clean_debris: run the pipeline's edge cleaner at the debris alpha.
func ApplyFix(img image.Image, action string) (image.Image, error) {
	switch action {
	case FixCropSquare:
		b := img.Bounds()
		return Compose(img, min(max(b.Dx(), b.Dy()), MaxIconSize), 1.0, FitContain)
	case FixSharpen:
		return imaging.Sharpen(img, 1.0), nil
	case FixSmartCleanup, FixCleanDebris:
		cfg := iconkit.DefaultConfig()
		cfg.Edges.EdgeThreshold = dirtyAlpha
		cfg.Edges.SmartCleanup = action == FixSmartCleanup
		res, err := iconkit.Generate(iconkit.FromImage(img), cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return res.Grid.Image(), nil
	default:
		return nil, fmt.Errorf("unknown fix action: %s", action)
	}
}
