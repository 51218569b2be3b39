package imaging

import (
	"image"
	"image/color"
	"slices"
	"testing"
)

func findIssue(r *AuditReport, check string) *AuditIssue {
	for i := range r.Issues {
		if r.Issues[i].Check == check {
			return &r.Issues[i]
		}
	}
	return nil
}

// dirtyLogo is a jagged logo with specks of near-invisible debris in the
// transparent margin.
func dirtyLogo(size int) *image.NRGBA {
	img := createLogoImage(size, size/2, color.NRGBA{}, color.NRGBA{200, 30, 30, 255})
	for i := 0; i < 20; i++ {
		img.SetNRGBA(2+i*(size-4)/20, 1, color.NRGBA{200, 30, 30, 5})
	}
	return img
}

func TestAudit_CleanOpaqueSquare(t *testing.T) {
	report := Audit(createInMemoryImage(512, 512, color.White))

	if !report.Passed() {
		t.Errorf("expected report to pass, got %+v", report.Issues)
	}
	if issue := findIssue(report, "Transparency"); issue == nil || issue.Severity != SeverityInfo {
		t.Errorf("expected transparency info, got %+v", issue)
	}
	if findIssue(report, "Edge Quality") != nil {
		t.Error("edge quality should not be checked for an opaque image")
	}
	if len(report.Fixes()) != 0 {
		t.Errorf("expected no fixes, got %v", report.Fixes())
	}
}

func TestAudit_NonSquareLowRes(t *testing.T) {
	report := Audit(createInMemoryImage(100, 50, color.White))

	aspect := findIssue(report, "Aspect Ratio")
	if aspect == nil || aspect.Severity != SeverityError || aspect.FixAction != FixCropSquare {
		t.Errorf("aspect ratio: got %+v", aspect)
	}
	res := findIssue(report, "Resolution")
	if res == nil || res.Severity != SeverityWarning {
		t.Errorf("resolution: got %+v", res)
	}
	if report.Passed() {
		t.Error("report should not pass")
	}
}

func TestAudit_EdgeQuality(t *testing.T) {
	blurry := createInMemoryImage(32, 32, color.NRGBA{0, 0, 255, 128})
	blurry.SetNRGBA(0, 0, color.NRGBA{})

	tests := []struct {
		name     string
		img      image.Image
		severity Severity
		fix      string
	}{
		{"jagged", createLogoImage(64, 32, color.NRGBA{}, color.NRGBA{200, 30, 30, 255}), SeverityError, FixSmartCleanup},
		{"blurry", blurry, SeverityWarning, FixSharpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issue := findIssue(Audit(tt.img), "Edge Quality")
			if issue == nil {
				t.Fatal("missing edge quality check")
			}
			if issue.Severity != tt.severity || issue.FixAction != tt.fix {
				t.Errorf("got %s/%s, want %s/%s", issue.Severity, issue.FixAction, tt.severity, tt.fix)
			}
		})
	}
}

func TestAudit_Dirty(t *testing.T) {
	report := Audit(dirtyLogo(64))

	if report.DirtyPixels != 20 {
		t.Errorf("DirtyPixels: got %d, want 20", report.DirtyPixels)
	}
	if !slices.Contains(report.Fixes(), FixCleanDebris) {
		t.Errorf("expected %s in fixes, got %v", FixCleanDebris, report.Fixes())
	}
}

func TestApplyFix(t *testing.T) {
	t.Run("crop_square", func(t *testing.T) {
		fixed, err := ApplyFix(createInMemoryImage(100, 50, color.White), FixCropSquare)
		if err != nil {
			t.Fatalf("ApplyFix failed: %v", err)
		}
		if b := fixed.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
			t.Errorf("bounds: got %v, want 100x100", b)
		}
	})

	t.Run("sharpen", func(t *testing.T) {
		fixed, err := ApplyFix(createPatternImage(20, 20), FixSharpen)
		if err != nil {
			t.Fatalf("ApplyFix failed: %v", err)
		}
		if b := fixed.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
			t.Errorf("bounds: got %v, want 20x20", b)
		}
	})

	t.Run("clean_debris", func(t *testing.T) {
		fixed, err := ApplyFix(dirtyLogo(64), FixCleanDebris)
		if err != nil {
			t.Fatalf("ApplyFix failed: %v", err)
		}
		if n := Audit(fixed).DirtyPixels; n != 0 {
			t.Errorf("DirtyPixels after fix: got %d, want 0", n)
		}
	})

	t.Run("smart_cleanup", func(t *testing.T) {
		fixed, err := ApplyFix(createLogoImage(64, 32, color.NRGBA{}, color.NRGBA{200, 30, 30, 255}), FixSmartCleanup)
		if err != nil {
			t.Fatalf("ApplyFix failed: %v", err)
		}
		if r := Audit(fixed).SmoothingRatio; r <= 0 {
			t.Errorf("smart cleanup should produce partial edges, ratio %f", r)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := ApplyFix(createPatternImage(4, 4), "polish"); err == nil {
			t.Error("ApplyFix should reject unknown actions")
		}
	})
}
