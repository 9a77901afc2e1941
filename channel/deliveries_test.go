package channel

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryTrackerSettleSingle(t *testing.T) {
	tracker := NewDeliveryTracker()
	tracker.Track(1)
	tracker.Track(2)

	assert.True(t, tracker.Known(1, false))
	assert.Equal(t, uint64(1), tracker.Settle(1, false))
	assert.False(t, tracker.Known(1, false))
	assert.Equal(t, uint64(0), tracker.Settle(1, false))
	assert.Equal(t, uint64(1), tracker.Outstanding())
}

func TestDeliveryTrackerSettleMultiple(t *testing.T) {
	tests := []struct {
		name        string
		tag         uint64
		removed     uint64
		outstanding uint64
	}{
		{"up to middle", 5, 5, 5},
		{"up to last", 10, 10, 0},
		{"zero settles all", 0, 10, 0},
		{"max tag settles all", math.MaxUint64, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewDeliveryTracker()
			for tag := uint64(1); tag <= 10; tag++ {
				tracker.Track(tag)
			}

			assert.Equal(t, tt.removed, tracker.Settle(tt.tag, true))
			assert.Equal(t, tt.outstanding, tracker.Outstanding())
		})
	}
}

func TestDeliveryTrackerKnown(t *testing.T) {
	tracker := NewDeliveryTracker()
	tracker.Track(3)

	assert.True(t, tracker.Known(0, true))
	assert.False(t, tracker.Known(0, false))
	assert.True(t, tracker.Known(3, true))
	assert.False(t, tracker.Known(4, true))
}

func TestDeliveryTrackerConcurrent(t *testing.T) {
	tracker := NewDeliveryTracker()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(offset uint64) {
			defer wg.Done()
			for i := uint64(0); i < 250; i++ {
				tracker.Track(offset*1000 + i + 1)
			}
		}(uint64(w))
	}
	wg.Wait()

	assert.Equal(t, uint64(1000), tracker.Outstanding())
	assert.Equal(t, uint64(1000), tracker.Settle(0, true))
}
