package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/pkg/models"
)

func TestWindow_AddAndSnapshot(t *testing.T) {
	w := NewWindow(10)

	w.Add(models.Message{ID: "1", Body: "first"})
	w.Add(models.Message{ID: "2", Body: "second"})

	snapshot := w.Snapshot()

	require.Len(t, snapshot, 2)
	assert.Equal(t, "1", snapshot[0].ID)
	assert.Equal(t, "2", snapshot[1].ID)
}

func TestWindow_EvictsOldestWhenFull(t *testing.T) {
	w := NewWindow(3)

	for i := 1; i <= 5; i++ {
		w.Add(models.Message{ID: fmt.Sprintf("%d", i)})
	}

	snapshot := w.Snapshot()

	require.Len(t, snapshot, 3)
	assert.Equal(t, "3", snapshot[0].ID)
	assert.Equal(t, "5", snapshot[2].ID)
	assert.Equal(t, 3, w.Len())
}

func TestWindow_SnapshotIsACopy(t *testing.T) {
	w := NewWindow(10)
	w.Add(models.Message{ID: "1", Body: "original"})

	snapshot := w.Snapshot()
	snapshot[0].Body = "mutated"

	assert.Equal(t, "original", w.Snapshot()[0].Body)
}

func TestWindow_SnapshotSince(t *testing.T) {
	w := NewWindow(10)

	old := time.Now().Add(-2 * time.Hour)
	recent := time.Now().Add(-10 * time.Minute)

	w.Add(models.Message{ID: "old", TS: fmt.Sprintf("%d.0", old.Unix())})
	w.Add(models.Message{ID: "recent", TS: fmt.Sprintf("%d.0", recent.Unix())})
	w.Add(models.Message{ID: "no-ts"})

	snapshot := w.SnapshotSince(time.Now().Add(-time.Hour))

	require.Len(t, snapshot, 2)
	assert.Equal(t, "recent", snapshot[0].ID)
	// messages without a parseable timestamp are kept
	assert.Equal(t, "no-ts", snapshot[1].ID)
}

func TestWindow_ConcurrentAccess(t *testing.T) {
	w := NewWindow(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				w.Add(models.Message{ID: fmt.Sprintf("%d-%d", n, j)})
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = w.Snapshot()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, w.Len())
}
