package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCompose_ContainCentersAndPads(t *testing.T) {
	img := createInMemoryImage(100, 50, color.NRGBA{200, 30, 30, 255})

	out, err := Compose(img, 64, 1.0, FitContain)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 64, 64) {
		t.Fatalf("bounds: got %v, want 64x64", out.Bounds())
	}
	// 100x50 fits as 64x32, centered vertically at rows 16..47.
	if a := out.NRGBAAt(32, 4).A; a != 0 {
		t.Errorf("top bar should be transparent, alpha %d", a)
	}
	if a := out.NRGBAAt(32, 32).A; a != 255 {
		t.Errorf("center should be opaque, alpha %d", a)
	}
	if a := out.NRGBAAt(32, 60).A; a != 0 {
		t.Errorf("bottom bar should be transparent, alpha %d", a)
	}
}

func TestCompose_ScaleLeavesMargin(t *testing.T) {
	img := createInMemoryImage(40, 40, color.NRGBA{0, 0, 255, 255})

	out, err := Compose(img, 100, 0.5, FitContain)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if a := out.NRGBAAt(10, 10).A; a != 0 {
		t.Errorf("margin should be transparent, alpha %d", a)
	}
	if a := out.NRGBAAt(50, 50).A; a != 255 {
		t.Errorf("center should be opaque, alpha %d", a)
	}
}

func TestCompose_CoverFillsSquare(t *testing.T) {
	img := createInMemoryImage(120, 60, color.NRGBA{0, 128, 0, 255})

	out, err := Compose(img, 32, 1.0, FitCover)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	for _, p := range []image.Point{{0, 0}, {31, 0}, {0, 31}, {31, 31}, {16, 16}} {
		if a := out.NRGBAAt(p.X, p.Y).A; a != 255 {
			t.Errorf("cover should leave no transparent bars, alpha %d at %v", a, p)
		}
	}
}

func TestCompose_Invalid(t *testing.T) {
	img := createInMemoryImage(4, 4, color.White)
	if _, err := Compose(img, 0, 1, FitContain); err == nil {
		t.Error("Compose should reject size 0")
	}
	if _, err := Compose(img, MaxIconSize+1, 1, FitContain); err == nil {
		t.Error("Compose should reject oversized canvas")
	}
	if _, err := Compose(img, 16, 0, FitContain); err == nil {
		t.Error("Compose should reject non-positive scale")
	}
}

func TestParseFitMode(t *testing.T) {
	for in, want := range map[string]FitMode{"": FitContain, "contain": FitContain, "cover": FitCover} {
		got, err := ParseFitMode(in)
		if err != nil || got != want {
			t.Errorf("ParseFitMode(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseFitMode("stretch"); err == nil {
		t.Error("ParseFitMode should reject unknown modes")
	}
}

func TestIconSizes(t *testing.T) {
	img := createLogoImage(64, 32, color.NRGBA{0, 0, 0, 0}, color.NRGBA{200, 30, 30, 255})

	icons, err := IconSizes(img, []int{16, 48, 32}, 1.0, FitContain, FormatPNG)
	if err != nil {
		t.Fatalf("IconSizes failed: %v", err)
	}
	if len(icons) != 3 {
		t.Fatalf("expected 3 icons, got %d", len(icons))
	}
	for i, want := range []int{16, 48, 32} {
		if icons[i].Size != want || icons[i].Image.Width != want || icons[i].Image.Height != want {
			t.Errorf("icon %d: got size %d (%dx%d), want %d", i, icons[i].Size, icons[i].Image.Width, icons[i].Image.Height, want)
		}
	}
}

func TestIconSizes_DefaultsAndErrors(t *testing.T) {
	img := createInMemoryImage(8, 8, color.White)

	icons, err := IconSizes(img, nil, 1.0, FitContain, FormatWebP)
	if err != nil {
		t.Fatalf("IconSizes failed: %v", err)
	}
	if len(icons) != len(StandardSizes) {
		t.Errorf("expected %d standard sizes, got %d", len(StandardSizes), len(icons))
	}

	if _, err := IconSizes(img, []int{16, 0}, 1.0, FitContain, FormatPNG); err == nil {
		t.Error("IconSizes should fail when any size is invalid")
	}
}
