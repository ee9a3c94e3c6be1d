package glres

import "testing"

func TestRefCountReleasesOnce(t *testing.T) {
	released := 0
	rc := newRefCount(func() { released++ })

	rc.retain()
	rc.retain()

	rc.releaseOne()
	rc.releaseOne()
	if released != 0 {
		t.Fatalf("released too early, count %d", released)
	}

	rc.releaseOne()
	if released != 1 {
		t.Fatalf("expected exactly one release, got %d", released)
	}
}

func TestRefCountPanicsAfterRelease(t *testing.T) {
	rc := newRefCount(nil)
	rc.releaseOne()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on release of released resource")
		}
	}()
	rc.releaseOne()
}

func TestRefCountPanicsOnRetainAfterRelease(t *testing.T) {
	rc := newRefCount(nil)
	rc.releaseOne()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on retain of released resource")
		}
	}()
	rc.retain()
}
