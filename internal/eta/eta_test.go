package eta

import (
	"math"
	"sync"
	"testing"
	"time"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		cpus     int
		want     int
	}{
		// round((180*1.25 + 25) * 1.3) = round(325)
		{"unknown duration slow client", math.NaN(), 4, 325},
		{"zero duration treated as unknown", 0, 4, 325},
		// round((180*0.75 + 25) * 1.3) = round(208)
		{"unknown duration fast client", math.NaN(), 8, 208},
		// duration below the floor: round((60*1.25 + 25) * 1.3) = round(130)
		{"short clip floored at one minute", 10, 4, 130},
		// round((600*0.75 + 25) * 1.3) = round(617.5)
		{"ten minute clip fast client", 600, 16, 618},
		// round((600*1.25 + 25) * 1.3) = round(1007.5)
		{"ten minute clip slow client", 600, 2, 1008},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.duration, tt.cpus); got != tt.want {
				t.Errorf("Estimate(%v, %d) = %d, want %d", tt.duration, tt.cpus, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		sec  int
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
		{-3, "0:00"},
	}

	for _, tt := range tests {
		if got := Label(tt.sec); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

type labelRecorder struct {
	mu     sync.Mutex
	labels []string
}

func (r *labelRecorder) record(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.labels = append(r.labels, label)
}

func (r *labelRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.labels...)
}

func TestCountdown_EmitsInitialLabelAndStopsAtZero(t *testing.T) {
	rec := &labelRecorder{}
	c := NewCountdown(rec.record)

	c.Start(125)
	c.Stop()

	labels := rec.snapshot()
	if len(labels) < 2 {
		t.Fatalf("expected at least start and stop labels, got %v", labels)
	}
	if labels[0] != "2:05" {
		t.Errorf("initial label = %q, want '2:05'", labels[0])
	}
	if labels[len(labels)-1] != "00:00" {
		t.Errorf("stop label = %q, want '00:00'", labels[len(labels)-1])
	}
}

func TestCountdown_TicksDown(t *testing.T) {
	rec := &labelRecorder{}
	c := NewCountdown(rec.record)
	c.interval = 10 * time.Millisecond

	base := time.Now()
	elapsed := 0
	c.now = func() time.Time {
		elapsed++
		return base.Add(time.Duration(elapsed) * time.Second)
	}

	c.Start(3)
	time.Sleep(60 * time.Millisecond)
	c.Stop()

	labels := rec.snapshot()
	// The fake clock advances one second per observation, so the remaining
	// labels shrink toward zero and never go negative.
	sawZero := false
	for _, l := range labels {
		if l == "0:00" || l == "00:00" {
			sawZero = true
		}
	}
	if !sawZero {
		t.Errorf("countdown never reached zero: %v", labels)
	}
}

func TestCountdown_StartCancelsPrevious(t *testing.T) {
	rec := &labelRecorder{}
	c := NewCountdown(rec.record)
	c.interval = 5 * time.Millisecond

	c.Start(100)
	c.Start(50)
	c.Start(10)
	time.Sleep(30 * time.Millisecond)
	c.Stop()

	// After the test settles, only the stop label remains to emit; the
	// point is that restarting repeatedly neither panics nor leaks a closed
	// channel into a second close.
	labels := rec.snapshot()
	if labels[len(labels)-1] != "00:00" {
		t.Errorf("final label = %q, want '00:00'", labels[len(labels)-1])
	}
}

func TestCountdown_StopIdleIsHarmless(t *testing.T) {
	rec := &labelRecorder{}
	c := NewCountdown(rec.record)

	c.Stop()
	c.Stop()

	labels := rec.snapshot()
	for _, l := range labels {
		if l != "00:00" {
			t.Errorf("idle stop emitted %q", l)
		}
	}
}
