// Package glres provides reference-counted OpenGL resource handles.
//
// All types here are confined to the thread owning the rendering context;
// counts are plain ints by design, there is no cross-thread sharing.
package glres

// refCount tracks shared ownership of a GPU allocation. The release
// function runs exactly once, when the count drops to zero.
type refCount struct {
	n       int
	release func()
}

func newRefCount(release func()) *refCount {
	return &refCount{n: 1, release: release}
}

// retain increments the count. Retaining an already-released handle is a
// programmer error and panics.
func (rc *refCount) retain() {
	if rc.n <= 0 {
		panic("glres: retain of released resource")
	}
	rc.n++
}

// releaseOne decrements the count, freeing the GPU allocation when it
// reaches zero. Extra releases panic rather than double-free.
func (rc *refCount) releaseOne() {
	if rc.n <= 0 {
		panic("glres: release of released resource")
	}
	rc.n--
	if rc.n == 0 && rc.release != nil {
		rc.release()
	}
}
