package glres

import "testing"

func TestCheckInstancing(t *testing.T) {
	tests := []struct {
		major, minor int32
		ok           bool
	}{
		{4, 1, true},
		{3, 3, true},
		{4, 0, true},
		{3, 2, false},
		{2, 1, false},
	}

	for _, tt := range tests {
		c := Caps{MajorVersion: tt.major, MinorVersion: tt.minor}
		err := c.CheckInstancing()
		if tt.ok && err != nil {
			t.Errorf("GL %d.%d: unexpected error %v", tt.major, tt.minor, err)
		}
		if !tt.ok && err == nil {
			t.Errorf("GL %d.%d: expected capability error", tt.major, tt.minor)
		}
	}
}

func TestClampTextureSize(t *testing.T) {
	c := Caps{MaxTextureSize: 4096}

	if got := c.ClampTextureSize(256); got != 256 {
		t.Errorf("small request should pass through, got %d", got)
	}
	if got := c.ClampTextureSize(16384); got != 4096 {
		t.Errorf("oversized request should clamp to 4096, got %d", got)
	}

	// Unknown maximum (no context queried) leaves the request alone.
	unqueried := Caps{}
	if got := unqueried.ClampTextureSize(512); got != 512 {
		t.Errorf("unqueried caps should not clamp, got %d", got)
	}
}
