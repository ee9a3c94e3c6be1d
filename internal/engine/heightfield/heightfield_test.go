package heightfield

import (
	"image"
	"image/color"
	"testing"

	"github.com/chewxy/math32"
)

func TestProceduralDeterministic(t *testing.T) {
	p := NewProcedural(7, 50)

	a := p.Region(16, -32, 64, 2)
	b := p.Region(16, -32, 64, 2)

	if len(a) != 16*16 {
		t.Fatalf("expected 256 samples, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between identical calls: %f vs %f", i, a[i], b[i])
		}
	}
}

func TestProceduralSeedChangesTerrain(t *testing.T) {
	a := NewProcedural(1, 50).Region(8, 0, 0, 4)
	b := NewProcedural(2, 50).Region(8, 0, 0, 4)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical terrain")
	}
}

func TestProceduralAmplitudeBound(t *testing.T) {
	p := NewProcedural(3, 25)
	for _, h := range p.Region(32, -100, -100, 7) {
		if math32.Abs(h) > 25 {
			t.Fatalf("height %f exceeds amplitude 25", h)
		}
	}
}

func TestImageSourceFlatMap(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetGray16(x, y, color.Gray16{Y: 32768})
		}
	}

	src := FromImage(img, 8, 256, 100)
	for _, h := range src.Region(4, 0, 0, 16) {
		if math32.Abs(h-50.0) > 0.1 {
			t.Fatalf("flat mid-gray map should give ~50, got %f", h)
		}
	}
}

func TestImageSourceWrapsToroidally(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 4, 4))
	img.SetGray16(1, 2, color.Gray16{Y: 65535})

	src := FromImage(img, 4, 100, 10)

	h := src.HeightAt(30, 55)
	for _, mult := range []float32{1, 2, -1, -3} {
		hw := src.HeightAt(30+100*mult, 55+100*mult)
		if math32.Abs(h-hw) > 1e-4 {
			t.Errorf("wrap at %+f periods: got %f, want %f", mult, hw, h)
		}
	}
}

func TestDecodeTGAGrayscale(t *testing.T) {
	// 2x2 uncompressed grayscale, top-to-bottom.
	data := make([]byte, 18+4)
	data[2] = tgaGrayscale
	data[12] = 2 // width
	data[14] = 2 // height
	data[16] = 8 // bpp
	data[17] = 0x20
	copy(data[18:], []byte{10, 20, 30, 40})

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("expected *image.Gray, got %T", img)
	}
	if gray.GrayAt(0, 0).Y != 10 || gray.GrayAt(1, 1).Y != 40 {
		t.Errorf("unexpected pixel values: %v %v", gray.GrayAt(0, 0), gray.GrayAt(1, 1))
	}
}

func TestDecodeTGARejectsShortData(t *testing.T) {
	if _, err := DecodeTGA([]byte{1, 2, 3}); err == nil {
		t.Error("expected error for truncated header")
	}
}
