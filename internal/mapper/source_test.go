package mapper

import "testing"

func TestDetectSource(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    SourceKind
	}{
		{
			name:    "costar fingerprint columns",
			headers: []string{"Star Rating", "PropertyID", "Submarket Name"},
			want:    SourceCoStar,
		},
		{
			name:    "costar exactly at threshold",
			headers: []string{"Star Rating", "Building Class", "Address"},
			want:    SourceCoStar,
		},
		{
			name:    "crexi fingerprint columns",
			headers: []string{"Property Link", "Crexi"},
			want:    SourceCrexi,
		},
		{
			name:    "crexi marker column alone",
			headers: []string{"Address", "City", "Crexi"},
			want:    SourceCrexi,
		},
		{
			name:    "generic headers fall back to manual",
			headers: []string{"Address", "City", "State"},
			want:    SourceManual,
		},
		{
			name:    "single costar hit is below threshold",
			headers: []string{"Star Rating", "Address", "City"},
			want:    SourceManual,
		},
		{
			name:    "single crexi hit without marker is below threshold",
			headers: []string{"Brokerage", "Address", "City"},
			want:    SourceManual,
		},
		{
			name:    "case and whitespace insensitive",
			headers: []string{"  STAR  RATING ", "propertyid"},
			want:    SourceCoStar,
		},
		{
			name:    "costar checked before crexi",
			headers: []string{"Star Rating", "PropertyID", "Property Link", "Brokerage"},
			want:    SourceCoStar,
		},
		{
			name:    "empty header row",
			headers: []string{},
			want:    SourceManual,
		},
		{
			name:    "duplicate fingerprint column counts once",
			headers: []string{"Star Rating", "Star Rating"},
			want:    SourceManual,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSource(tt.headers)
			if got != tt.want {
				t.Errorf("DetectSource(%v) = %q, want %q", tt.headers, got, tt.want)
			}
		})
	}
}

// Reonomy is a recognized source kind but detection never produces it; files
// from Reonomy are imported with an explicit source override.
func TestDetectSourceNeverReturnsReonomy(t *testing.T) {
	headerSets := [][]string{
		{"Address", "City", "State"},
		{"Star Rating", "PropertyID"},
		{"Property Link", "Crexi"},
		{"Reonomy", "Reonomy ID", "Parcel Number"},
		{},
	}
	for _, headers := range headerSets {
		if got := DetectSource(headers); got == SourceReonomy {
			t.Errorf("DetectSource(%v) = %q; reonomy must never be detected", headers, got)
		}
	}
}
