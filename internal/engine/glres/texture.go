package glres

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// TextureArray is a reference-counted single-channel float 2D array
// texture, one layer per clipmap level.
type TextureArray struct {
	id     uint32
	size   int32
	layers int32
	rc     *refCount
}

// NewTextureArray allocates an R32F TEXTURE_2D_ARRAY of size×size×layers.
// A request above the platform maximum is clamped, not failed: lower
// elevation resolution beats no terrain at all.
func NewTextureArray(size, layers int32, caps Caps) *TextureArray {
	size = caps.ClampTextureSize(size)

	t := &TextureArray{size: size, layers: layers}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)

	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.R32F,
		size, size, layers,
		0, gl.RED, gl.FLOAT, nil)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	// REPEAT wrap is what makes the toroidal sample window work.
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)

	t.rc = newRefCount(func() {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	})
	return t
}

// ID returns the GL object name.
func (t *TextureArray) ID() uint32 { return t.id }

// Size returns the layer edge size in texels (after any clamping).
func (t *TextureArray) Size() int32 { return t.size }

// Layers returns the layer count.
func (t *TextureArray) Layers() int32 { return t.layers }

// UploadLayer replaces one full layer with single-channel float samples.
// data must hold Size()*Size() values; layer must be a valid index.
func (t *TextureArray) UploadLayer(layer int32, data []float32) error {
	if layer < 0 || layer >= t.layers {
		return fmt.Errorf("layer %d out of range [0,%d)", layer, t.layers)
	}
	if int32(len(data)) != t.size*t.size {
		return fmt.Errorf("layer %d: got %d samples, want %d", layer, len(data), t.size*t.size)
	}

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
	gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0,
		0, 0, layer,
		t.size, t.size, 1,
		gl.RED, gl.FLOAT, unsafe.Pointer(&data[0]))
	return nil
}

// Bind binds the texture to the given texture unit.
func (t *TextureArray) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
}

// Retain adds a reference and returns the same handle.
func (t *TextureArray) Retain() *TextureArray {
	t.rc.retain()
	return t
}

// Release drops a reference, deleting the GL texture at zero.
func (t *TextureArray) Release() {
	t.rc.releaseOne()
}
