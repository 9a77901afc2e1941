package channel

import (
	"math"
	"sync"

	"github.com/RoaringBitmap/roaring/roaring64"
)

// DeliveryTracker keeps the set of delivery tags received on a channel that
// have not been acknowledged yet. Tags grow monotonically per channel, which
// keeps the compressed bitmap small even with many messages in flight.
type DeliveryTracker struct {
	mu   sync.Mutex
	tags *roaring64.Bitmap
}

// NewDeliveryTracker creates an empty tracker
func NewDeliveryTracker() *DeliveryTracker {
	return &DeliveryTracker{tags: roaring64.New()}
}

// Track records a delivered tag as outstanding
func (t *DeliveryTracker) Track(tag uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tags.Add(tag)
}

// Known reports whether an ack or nack for tag would be accepted. With
// multiple set, tag 0 settles everything and is always accepted.
func (t *DeliveryTracker) Known(tag uint64, multiple bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if multiple && tag == 0 {
		return true
	}
	return t.tags.Contains(tag)
}

// Settle removes tag, or every tag up to and including it when multiple is
// set, and returns how many outstanding tags were removed.
func (t *DeliveryTracker) Settle(tag uint64, multiple bool) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := t.tags.GetCardinality()
	switch {
	case !multiple:
		t.tags.Remove(tag)
	case tag == 0 || tag == math.MaxUint64:
		t.tags.Clear()
	default:
		t.tags.RemoveRange(0, tag+1)
	}
	return before - t.tags.GetCardinality()
}

// Outstanding returns the number of unacknowledged tags
func (t *DeliveryTracker) Outstanding() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tags.GetCardinality()
}
