package clipboard

import (
	"sync"
	"time"
)

// AckDuration is how long a copy acknowledgement stays visible.
const AckDuration = 2 * time.Second

// Flash is a flag that clears itself a fixed time after the last Show.
type Flash struct {
	mu     sync.Mutex
	d      time.Duration
	active bool
	seq    uint64
	timer  *time.Timer
}

// NewFlash returns a lowered Flash that clears d after each Show.
func NewFlash(d time.Duration) *Flash {
	return &Flash{d: d}
}

// Show raises the flag and restarts the clear timer.
func (f *Flash) Show() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.active = true
	f.seq++
	if f.timer != nil {
		f.timer.Stop()
	}

	seq := f.seq
	f.timer = time.AfterFunc(f.d, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		// a later Show owns the flag
		if f.seq == seq {
			f.active = false
		}
	})
}

// Active reports whether the flag is raised.
func (f *Flash) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}
