package metrics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/api/places/downtown-coffee-shop", "/api/places/{id}"},
		{"/api/records/5b6c2f1e-0b0a-4f49-9a53-1f2d3c4b5a69", "/api/records/{id}"},
		{"/api/places", "/api/places"},
		{"/api/stats", "/api/stats"},
		{"/health", "/health"},
	}
	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
