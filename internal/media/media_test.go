package media

import (
	"context"
	"math"
	"testing"
)

func TestIsVideoExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{".mp4", true},
		{".MKV", true},
		{".webm", true},
		{".mp3", false},
		{".wav", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsVideoExtension(tt.ext); got != tt.want {
			t.Errorf("IsVideoExtension(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestLogInfo_MissingFileIsNil(t *testing.T) {
	if info := LogInfo(context.Background(), "/does/not/exist.mp3"); info != nil {
		t.Errorf("LogInfo for missing file = %+v, want nil", info)
	}
}

func TestDuration_MissingFileIsNaN(t *testing.T) {
	// Whether or not ffprobe is installed, probing a nonexistent file must
	// degrade to "unknown", never to a fake number.
	d := Duration(context.Background(), "/does/not/exist.mp3")
	if !math.IsNaN(d) {
		t.Errorf("Duration for missing file = %v, want NaN", d)
	}
}
