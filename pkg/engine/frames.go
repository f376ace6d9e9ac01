package engine

import (
	"sync"
	"time"

	"github.com/go-drift/weft/pkg/core"
	"github.com/go-drift/weft/pkg/graphics"
)

const frameSamplesDefault = 240

// FramePhaseTimings captures time spent in each phase of a dispatch (ms).
type FramePhaseTimings struct {
	EventMs  float64 `json:"eventMs"`
	BuildMs  float64 `json:"buildMs"`
	LayoutMs float64 `json:"layoutMs"`
	PaintMs  float64 `json:"paintMs"`
}

// FrameStats describes one dispatch: an event, a drained dispatch queue or
// the initial connect, together with the passes and phases it caused.
type FrameStats struct {
	Seq       uint64            `json:"seq"`
	Timestamp int64             `json:"ts"`
	Trigger   string            `json:"trigger"`
	FrameMs   float64           `json:"frameMs"`
	Phases    FramePhaseTimings `json:"phases"`
	Build     core.BuildStats   `json:"build"`
	Converged bool              `json:"converged"`
	Layout    bool              `json:"layout"`
	Painted   bool              `json:"painted"`
	Damage    graphics.Rect     `json:"damage"`
	Handled   bool              `json:"handled,omitempty"`
}

// FrameBuffer is a ring buffer of recent frame stats. It is safe for
// concurrent use; the debug server reads it while the UI goroutine writes.
type FrameBuffer struct {
	mu       sync.RWMutex
	samples  []FrameStats
	index    int
	capacity int
	count    int

	subs map[chan FrameStats]struct{}
}

// NewFrameBuffer creates a FrameBuffer holding up to capacity samples.
func NewFrameBuffer(capacity int) *FrameBuffer {
	if capacity <= 0 {
		capacity = frameSamplesDefault
	}
	return &FrameBuffer{
		samples:  make([]FrameStats, capacity),
		capacity: capacity,
		subs:     make(map[chan FrameStats]struct{}),
	}
}

// Add records a sample and forwards it to subscribers. Slow subscribers miss
// samples rather than blocking the UI goroutine.
func (b *FrameBuffer) Add(s FrameStats) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples[b.index] = s
	b.index = (b.index + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
	for ch := range b.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Samples returns a copy of the samples in chronological order.
func (b *FrameBuffer) Samples() []FrameStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}
	result := make([]FrameStats, b.count)
	if b.count < b.capacity {
		copy(result, b.samples[:b.count])
	} else {
		// Full: the oldest sample is at b.index.
		copy(result, b.samples[b.index:])
		copy(result[b.capacity-b.index:], b.samples[:b.index])
	}
	return result
}

// Last returns the most recent sample.
func (b *FrameBuffer) Last() (FrameStats, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.count == 0 {
		return FrameStats{}, false
	}
	return b.samples[(b.index-1+b.capacity)%b.capacity], true
}

// Count returns the number of samples currently in the buffer.
func (b *FrameBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Subscribe returns a channel receiving every sample added from now on, and
// a function that cancels the subscription.
func (b *FrameBuffer) Subscribe(buffer int) (<-chan FrameStats, func()) {
	ch := make(chan FrameStats, max(buffer, 1))
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
