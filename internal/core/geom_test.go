package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 4, 4), NewRect(2, 2, 4, 4), true},
		{"apart", NewRect(0, 0, 4, 4), NewRect(8, 0, 4, 4), false},
		{"touching edge", NewRect(0, 0, 4, 4), NewRect(4, 0, 4, 4), false},
		{"single cell", NewRect(3, 3, 1, 1), NewRect(0, 0, 4, 4), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 2, 3, 3)
	if !r.Contains(2, 2) || !r.Contains(4, 4) {
		t.Error("corners inside the rect should be contained")
	}
	if r.Contains(5, 2) || r.Contains(2, 5) {
		t.Error("Right() and Bottom() are exclusive")
	}
}

func TestFollow(t *testing.T) {
	tests := []struct {
		name           string
		x, y           int
		worldW, worldH int
		expected       Rect
	}{
		{"centered", 50, 20, 200, 60, NewRect(40, 15, 20, 10)},
		{"clamped left top", 1, 1, 200, 60, NewRect(0, 0, 20, 10)},
		{"clamped right bottom", 199, 59, 200, 60, NewRect(180, 50, 20, 10)},
		{"world smaller than view", 3, 3, 8, 4, NewRect(0, 0, 20, 10)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Follow(tc.x, tc.y, 20, 10, tc.worldW, tc.worldH)
			if got != tc.expected {
				t.Errorf("Follow() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
