package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSavePixelsFlipsRows(t *testing.T) {
	dir := t.TempDir()
	s := NewScreenshots(dir, "test")

	// 2x2 image: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 0, 0, 255, 255,
	}

	path, err := s.SavePixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("SavePixels: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "test_") {
		t.Errorf("filename %q missing prefix", filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Top-left of the PNG must be the GL bottom row's blue.
	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 65535 {
		t.Errorf("top-left = (%d,%d,%d), want blue", r, g, b)
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r != 65535 || b != 0 {
		t.Errorf("bottom-left = (%d,_,%d), want red", r, b)
	}
}

func TestSavePixelsSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "test")
	if _, err := s.SavePixels(make([]byte, 3), 2, 2); err == nil {
		t.Fatal("expected size mismatch error")
	}
}
