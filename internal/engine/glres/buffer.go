package glres

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Buffer is a reference-counted OpenGL buffer object.
type Buffer struct {
	id     uint32
	target uint32
	size   int
	rc     *refCount
}

// NewArrayBuffer creates an ARRAY_BUFFER handle with one reference.
func NewArrayBuffer() *Buffer {
	return newBuffer(gl.ARRAY_BUFFER)
}

// NewElementBuffer creates an ELEMENT_ARRAY_BUFFER handle with one reference.
func NewElementBuffer() *Buffer {
	return newBuffer(gl.ELEMENT_ARRAY_BUFFER)
}

func newBuffer(target uint32) *Buffer {
	b := &Buffer{target: target}
	gl.GenBuffers(1, &b.id)
	b.rc = newRefCount(func() {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	})
	return b
}

// ID returns the GL object name.
func (b *Buffer) ID() uint32 { return b.id }

// Size returns the allocated size in bytes.
func (b *Buffer) Size() int { return b.size }

// Bind binds the buffer to its target.
func (b *Buffer) Bind() {
	gl.BindBuffer(b.target, b.id)
}

// Allocate binds the buffer and (re)allocates size bytes with the given
// usage hint, optionally filling from ptr (nil leaves contents undefined).
func (b *Buffer) Allocate(size int, ptr unsafe.Pointer, usage uint32) {
	gl.BindBuffer(b.target, b.id)
	gl.BufferData(b.target, size, ptr, usage)
	b.size = size
}

// Update overwrites size bytes at offset. The region must lie within the
// current allocation.
func (b *Buffer) Update(offset, size int, ptr unsafe.Pointer) {
	gl.BindBuffer(b.target, b.id)
	gl.BufferSubData(b.target, offset, size, ptr)
}

// Retain adds a reference and returns the same handle.
func (b *Buffer) Retain() *Buffer {
	b.rc.retain()
	return b
}

// Release drops a reference, deleting the GL buffer at zero.
func (b *Buffer) Release() {
	b.rc.releaseOne()
}

// VertexArray is a reference-counted vertex array object.
type VertexArray struct {
	id uint32
	rc *refCount
}

// NewVertexArray creates a VAO handle with one reference.
func NewVertexArray() *VertexArray {
	v := &VertexArray{}
	gl.GenVertexArrays(1, &v.id)
	v.rc = newRefCount(func() {
		gl.DeleteVertexArrays(1, &v.id)
		v.id = 0
	})
	return v
}

// ID returns the GL object name.
func (v *VertexArray) ID() uint32 { return v.id }

// Bind makes the VAO current.
func (v *VertexArray) Bind() {
	gl.BindVertexArray(v.id)
}

// Unbind clears the VAO binding.
func (v *VertexArray) Unbind() {
	gl.BindVertexArray(0)
}

// Retain adds a reference and returns the same handle.
func (v *VertexArray) Retain() *VertexArray {
	v.rc.retain()
	return v
}

// Release drops a reference, deleting the VAO at zero.
func (v *VertexArray) Release() {
	v.rc.releaseOne()
}
