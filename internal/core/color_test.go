package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightWhite, "15"},
		{ColorOrange, "208"},
		{ColorGray, "245"},
		{Color(200), ""},
	}
	for _, tt := range tests {
		if got := tt.c.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, expected %q", tt.c, got, tt.want)
		}
	}

	colors := Colors()
	if len(colors) != int(ColorGray)+1 || colors[0] != ColorDefault {
		t.Errorf("Colors() = %v", colors)
	}
	for _, c := range colors[1:] {
		if c.ANSI() == "" {
			t.Errorf("Color(%d) has no palette index", c)
		}
	}
}
