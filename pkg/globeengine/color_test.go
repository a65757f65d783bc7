package globeengine

import "testing"

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		hex  string
		want RGB
	}{
		{"#9370DB", RGB{147, 112, 219}},
		{"#abc", RGB{170, 187, 204}},
		{"#000000", RGB{0, 0, 0}},
		{"#ffffff", RGB{255, 255, 255}},
		{"06b6d4", RGB{6, 182, 212}},
		{"not-a-color", RGB{255, 255, 255}},
		{"", RGB{255, 255, 255}},
		{"#12345", RGB{255, 255, 255}},
		{"#gggggg", RGB{255, 255, 255}},
	}
	for _, tt := range tests {
		if got := HexToRGB(tt.hex); got != tt.want {
			t.Errorf("HexToRGB(%q) = %+v; want %+v", tt.hex, got, tt.want)
		}
	}
}

func TestColorAt(t *testing.T) {
	c := RGB{147, 112, 219}

	opaque := ColorAt(c, 0)
	if opaque.R != 147 || opaque.G != 112 || opaque.B != 219 || opaque.A != 255 {
		t.Errorf("ColorAt(c, 0) = %+v; want opaque channels", opaque)
	}
	if got := ColorAt(c, 1).A; got != 0 {
		t.Errorf("ColorAt(c, 1).A = %d; want 0", got)
	}
	if got := ColorAt(c, 0.5).A; got != 127 {
		t.Errorf("ColorAt(c, 0.5).A = %d; want 127", got)
	}

	// Out-of-range progress clamps instead of wrapping.
	if got := ColorAt(c, -3).A; got != 255 {
		t.Errorf("ColorAt(c, -3).A = %d; want 255", got)
	}
	if got := ColorAt(c, 7).A; got != 0 {
		t.Errorf("ColorAt(c, 7).A = %d; want 0", got)
	}
}

func TestRGBAString(t *testing.T) {
	tests := []struct {
		t    float64
		want string
	}{
		{0, "rgba(147,112,219,1)"},
		{1, "rgba(147,112,219,0)"},
		{0.25, "rgba(147,112,219,0.75)"},
	}
	c := RGB{147, 112, 219}
	for _, tt := range tests {
		if got := RGBAString(c, tt.t); got != tt.want {
			t.Errorf("RGBAString(c, %v) = %q; want %q", tt.t, got, tt.want)
		}
	}
}
