//go:build !mobile

package utils

import "testing"

func TestIsMobile(t *testing.T) {
	tests := []struct {
		name     string
		emulate  string
		want     bool
		wantVerb string
	}{
		{"桌面端", "", false, "Click"},
		{"其他取值不生效", "true", false, "Click"},
		{"模拟移动端", "1", true, "Tap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SHOOTER_MOBILE_EMULATE", tt.emulate)
			if got := IsMobile(); got != tt.want {
				t.Errorf("IsMobile() = %v, want %v", got, tt.want)
			}
			if got := PointerVerb(); got != tt.wantVerb {
				t.Errorf("PointerVerb() = %q, want %q", got, tt.wantVerb)
			}
		})
	}
}
