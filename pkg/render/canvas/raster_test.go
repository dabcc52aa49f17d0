package canvas

import (
	"bytes"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/matzehuels/flowviz/pkg/fonts"
)

func TestRasterDrawsAndEncodes(t *testing.T) {
	r, err := NewRaster(120, 80, WithRasterBackground(color.White))
	if err != nil {
		t.Fatalf("NewRaster() error = %v", err)
	}
	defer r.Close()

	r.SetColor(color.NRGBA{B: 255, A: 255})
	r.FillRoundedRect(10, 10, 30, 60, 2.5)

	var p Path
	p.MoveTo(40, 20)
	p.CubicTo(60, 20, 80, 60, 100, 60)
	r.StrokePath(p, Dashed(4, 6))

	if got := color.NRGBAModel.Convert(r.Image().At(25, 40)).(color.NRGBA); got.B != 255 || got.R != 0 {
		t.Errorf("pixel inside box = %+v, want blue", got)
	}
	if got := color.NRGBAModel.Convert(r.Image().At(5, 5)).(color.NRGBA); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("background pixel = %+v, want white", got)
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("PNG size = %dx%d, want 120x80", b.Dx(), b.Dy())
	}

	buf.Reset()
	if err := r.EncodeJPEG(&buf, 0); err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}
	if _, err := jpeg.Decode(&buf); err != nil {
		t.Fatalf("jpeg.Decode() error = %v", err)
	}
}

func TestRasterRotateTracksTransform(t *testing.T) {
	r, err := NewRaster(10, 10)
	if err != nil {
		t.Fatalf("NewRaster() error = %v", err)
	}
	defer r.Close()

	r.Rotate(1, 5, 5)
	r.Rotate(-1, 5, 5)
	if !r.st.ctm.IsIdentity(1e-12) {
		t.Errorf("ctm = %+v, want identity", r.st.ctm)
	}
}

func TestRasterFontSizeTracksFace(t *testing.T) {
	r, err := NewRaster(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	for _, size := range []float64{8, 23, 48, 23} {
		r.SetFontSize(size)
		face, err := fonts.NewFace(size)
		if err != nil {
			t.Fatal(err)
		}
		want := fonts.Measure(face, "Crude")
		face.Close()
		if got := r.MeasureText("Crude"); got.Width != want.Width || got.LineHeight != want.LineHeight {
			t.Errorf("MeasureText at %v = %+v, want %+v", size, got, want)
		}
	}
}
