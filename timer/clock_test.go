package timer

import (
	"testing"
	"time"
)

type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time          { return f.t }
func (f *fakeNow) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockStep(t *testing.T) {
	f := &fakeNow{t: time.Unix(1000, 0)}
	c := NewClock(f.now)

	tests := []struct {
		name    string
		advance time.Duration
		want    float64
	}{
		{"first frame", 16 * time.Millisecond, 0.016},
		{"slow frame", 250 * time.Millisecond, 0.25},
		{"no time passed", 0, 0},
		{"one second", time.Second, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.advance(tt.advance)
			got := c.Step()
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Step() = %v, want %v", got, tt.want)
			}
			if c.Delta() != got {
				t.Errorf("Delta() = %v, want %v", c.Delta(), got)
			}
		})
	}
}

func TestClockReset(t *testing.T) {
	f := &fakeNow{t: time.Unix(1000, 0)}
	c := NewClock(f.now)

	f.advance(5 * time.Second)
	c.Reset()
	if c.Delta() != 0 {
		t.Errorf("Delta() after Reset = %v, want 0", c.Delta())
	}

	f.advance(10 * time.Millisecond)
	if got := c.Step(); got < 0.0099 || got > 0.0101 {
		t.Errorf("Step() after Reset = %v, want 0.01", got)
	}
}

func TestClockDefaultsToWallTime(t *testing.T) {
	c := NewClock(nil)
	time.Sleep(2 * time.Millisecond)
	if got := c.Step(); got <= 0 {
		t.Errorf("Step() = %v, want > 0", got)
	}
}
