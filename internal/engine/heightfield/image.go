package heightfield

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // heightmaps are usually 8- or 16-bit PNG
	"os"
	"strings"

	"golang.org/x/image/draw"
)

// ImageSource samples elevation from a grayscale heightmap image. The
// map tiles infinitely: world coordinates wrap toroidally, matching the
// clipmap's wrap-around texture addressing.
type ImageSource struct {
	heights []float32
	res     int

	// WorldSize is the world-space extent one image repetition covers.
	WorldSize float32
	// Amplitude scales normalized [0,1] pixel values to world heights.
	Amplitude float32
}

// LoadImage reads a heightmap from disk. gridRes is the internal sample
// grid edge size; the decoded image is rescaled to it when they differ.
func LoadImage(path string, gridRes int, worldSize, amplitude float32) (*ImageSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("heightmap %s: %w", path, err)
	}

	var img image.Image
	if strings.HasSuffix(strings.ToLower(path), ".tga") {
		img, err = DecodeTGA(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decode heightmap %s: %w", path, err)
	}

	return FromImage(img, gridRes, worldSize, amplitude), nil
}

// FromImage builds a source from an already-decoded image.
func FromImage(img image.Image, gridRes int, worldSize, amplitude float32) *ImageSource {
	// Resample to the internal grid with 16-bit precision so 16-bit
	// PNG heightmaps keep their vertical resolution.
	gray := image.NewGray16(image.Rect(0, 0, gridRes, gridRes))
	draw.BiLinear.Scale(gray, gray.Bounds(), img, img.Bounds(), draw.Src, nil)

	heights := make([]float32, gridRes*gridRes)
	for y := 0; y < gridRes; y++ {
		for x := 0; x < gridRes; x++ {
			v := gray.Gray16At(x, y).Y
			heights[y*gridRes+x] = float32(v) / 65535.0
		}
	}

	return &ImageSource{
		heights:   heights,
		res:       gridRes,
		WorldSize: worldSize,
		Amplitude: amplitude,
	}
}

// Region implements Source.
func (s *ImageSource) Region(res int, originX, originZ, step float32) []float32 {
	out := make([]float32, res*res)
	for j := 0; j < res; j++ {
		wz := originZ + float32(j)*step
		for i := 0; i < res; i++ {
			wx := originX + float32(i)*step
			out[j*res+i] = s.HeightAt(wx, wz)
		}
	}
	return out
}

// HeightAt bilinearly samples the wrapped heightmap at a world position.
func (s *ImageSource) HeightAt(x, z float32) float32 {
	// World to grid space, wrapping into [0, res).
	gx := wrap(x/s.WorldSize, 1) * float32(s.res)
	gz := wrap(z/s.WorldSize, 1) * float32(s.res)

	x0 := int(gx) % s.res
	z0 := int(gz) % s.res
	x1 := (x0 + 1) % s.res
	z1 := (z0 + 1) % s.res
	fx := gx - float32(int(gx))
	fz := gz - float32(int(gz))

	h00 := s.heights[z0*s.res+x0]
	h10 := s.heights[z0*s.res+x1]
	h01 := s.heights[z1*s.res+x0]
	h11 := s.heights[z1*s.res+x1]

	top := h00 + (h10-h00)*fx
	bottom := h01 + (h11-h01)*fx
	return (top + (bottom-top)*fz) * s.Amplitude
}

// wrap maps v into [0, period).
func wrap(v, period float32) float32 {
	v = v - period*float32(int(v/period))
	if v < 0 {
		v += period
	}
	return v
}
