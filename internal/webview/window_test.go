package webview

import "testing"

func TestCornerPosition(t *testing.T) {
	tests := []struct {
		screenW, screenH int
		x, y             int
	}{
		{1920, 1080, 1510, 320},
		{1280, 800, 870, 40},
		{1024, 600, 614, 0},
		{300, 500, 0, 0},
	}
	for _, tt := range tests {
		x, y := cornerPosition(tt.screenW, tt.screenH, 400, 700)
		if x != tt.x || y != tt.y {
			t.Errorf("cornerPosition(%d, %d) = (%d, %d), want (%d, %d)",
				tt.screenW, tt.screenH, x, y, tt.x, tt.y)
		}
	}
}
