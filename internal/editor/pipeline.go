// Package editor owns the editing session: the paint surface, the active
// tool and its parameters, and the snapshot pipeline that hands raster
// copies to the render side.
package editor

import "sync"

// Snapshot is an immutable point-in-time copy of the raster, tagged with
// the texture generation it was taken from. Once published it is never
// mutated by the sender.
type Snapshot struct {
	Generation uint64
	Width      int
	Height     int
	Pix        []uint8
}

// Publisher is the hand-off between the pixel-computation side and the
// render side: a single latest-wins snapshot slot plus a monotonic texture
// generation counter. Publishing while a snapshot is pending replaces it,
// so at most one snapshot is ever in flight and the render side always
// uploads the newest state, never a backlog.
type Publisher struct {
	mu         sync.Mutex
	pending    *Snapshot
	generation uint64
}

// NewPublisher returns a publisher at generation zero with an empty slot.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Generation returns the current texture generation.
func (p *Publisher) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Advance bumps the generation when a new texture asset is loaded and
// clears the pending slot so no stale snapshot can overwrite the new
// raster. Returns the new generation.
func (p *Publisher) Advance() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.pending = nil
	return p.generation
}

// Publish places a snapshot in the slot, replacing any pending one.
func (p *Publisher) Publish(s *Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = s
}

// Take removes and returns the pending snapshot. Snapshots from an older
// generation are dropped silently; that is flow control, not a failure.
func (p *Publisher) Take() (*Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.pending
	p.pending = nil
	if s == nil || s.Generation != p.generation {
		return nil, false
	}
	return s, true
}
