package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeRising(t *testing.T) {
	var e Edge
	seq := []bool{false, true, true, false, true}
	want := []bool{false, true, false, false, true}

	for i, v := range seq {
		assert.Equal(t, want[i], e.Rising(v), "step %d", i)
	}
}

func TestSnapshotPressed(t *testing.T) {
	var s Snapshot
	s.Keys[KeyL] = true

	assert.True(t, s.Pressed(KeyL))
	assert.False(t, s.Pressed(KeyT))
	assert.False(t, s.Pressed(Key(-1)))
	assert.False(t, s.Pressed(keyCount))
}
