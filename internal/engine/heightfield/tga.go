package heightfield

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	tgaTrueColor     = 2  // uncompressed true-color
	tgaGrayscale     = 3  // uncompressed grayscale
	tgaTrueColorRLE  = 10 // RLE true-color
	tgaGrayscaleRLE  = 11 // RLE grayscale
)

// DecodeTGA decodes a TGA image. Grayscale (types 3/11) and true-color
// (types 2/10) variants are supported; grayscale is the common encoding
// for heightmaps.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}

	gray := imageType == tgaGrayscale || imageType == tgaGrayscaleRLE
	rle := imageType == tgaTrueColorRLE || imageType == tgaGrayscaleRLE
	if !gray && imageType != tgaTrueColor && imageType != tgaTrueColorRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if gray && bpp != 8 {
		return nil, fmt.Errorf("unsupported grayscale TGA bit depth %d (only 8 supported)", bpp)
	}
	if !gray && bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]
	bytesPerPixel := bpp / 8
	// Bit 5 of the descriptor flags top-to-bottom row order.
	topToBottom := (descriptor & 0x20) != 0

	dec := &tgaDecoder{
		width:         width,
		height:        height,
		bytesPerPixel: bytesPerPixel,
		topToBottom:   topToBottom,
		gray:          gray,
	}
	if gray {
		dec.grayImg = image.NewGray(image.Rect(0, 0, width, height))
	} else {
		dec.rgbaImg = image.NewRGBA(image.Rect(0, 0, width, height))
	}

	var err error
	if rle {
		err = dec.decodeRLE(pixelData)
	} else {
		err = dec.decodeRaw(pixelData)
	}
	if err != nil {
		return nil, err
	}

	if gray {
		return dec.grayImg, nil
	}
	return dec.rgbaImg, nil
}

type tgaDecoder struct {
	width, height int
	bytesPerPixel int
	topToBottom   bool
	gray          bool

	grayImg *image.Gray
	rgbaImg *image.RGBA
}

func (d *tgaDecoder) destY(y int) int {
	if d.topToBottom {
		return y
	}
	return d.height - 1 - y
}

func (d *tgaDecoder) setPixel(idx int, px []byte) {
	x := idx % d.width
	y := d.destY(idx / d.width)
	if d.gray {
		d.grayImg.SetGray(x, y, color.Gray{Y: px[0]})
		return
	}
	a := uint8(255)
	if d.bytesPerPixel == 4 {
		a = px[3]
	}
	// TGA stores BGR(A).
	d.rgbaImg.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
}

func (d *tgaDecoder) decodeRaw(pixelData []byte) error {
	expected := d.width * d.height * d.bytesPerPixel
	if len(pixelData) < expected {
		return fmt.Errorf("TGA pixel data truncated")
	}
	for idx := 0; idx < d.width*d.height; idx++ {
		i := idx * d.bytesPerPixel
		d.setPixel(idx, pixelData[i:i+d.bytesPerPixel])
	}
	return nil
}

func (d *tgaDecoder) decodeRLE(pixelData []byte) error {
	pixelCount := d.width * d.height
	pixelIdx := 0
	dataIdx := 0

	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet: one pixel repeated count times.
			if dataIdx+d.bytesPerPixel > len(pixelData) {
				break
			}
			px := pixelData[dataIdx : dataIdx+d.bytesPerPixel]
			dataIdx += d.bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				d.setPixel(pixelIdx, px)
				pixelIdx++
			}
		} else {
			// Raw packet: count literal pixels.
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				if dataIdx+d.bytesPerPixel > len(pixelData) {
					return nil
				}
				d.setPixel(pixelIdx, pixelData[dataIdx:dataIdx+d.bytesPerPixel])
				dataIdx += d.bytesPerPixel
				pixelIdx++
			}
		}
	}

	return nil
}
