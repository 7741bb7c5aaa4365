package spawn

import (
	"math/rand/v2"
	"testing"

	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/ThatOtherAndrew/acsim/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *models.App {
	return &models.App{
		State:  state.New(),
		Tuning: models.DropletTuning{SpawnRate: 6},
		Rand:   rand.New(rand.NewPCG(12345, 0)),
	}
}

func TestSpawnRateFollowsVent(t *testing.T) {
	app := newApp()
	app.State.VentOpenness = 0.5

	s := New(app)
	for range 100 {
		s.SpawnDroplets(0.01)
	}
	// 6 * 0.5 drops/s for one second, give or take float carry.
	assert.InDelta(t, 3, len(app.Droplets), 1)

	for _, d := range app.Droplets {
		assert.True(t, d.Alive)
		assert.Equal(t, float32(-55), d.Pos.Y())
		assert.LessOrEqual(t, d.Pos.X(), float32(20))
		assert.GreaterOrEqual(t, d.Pos.X(), float32(-20))
		assert.LessOrEqual(t, d.Pos.Z(), float32(10))
		assert.GreaterOrEqual(t, d.Pos.Z(), float32(-10))
		assert.LessOrEqual(t, d.Vel.Y(), float32(-60))
		assert.GreaterOrEqual(t, d.Vel.Y(), float32(-70))
	}
}

func TestNoSpawnWhenOffOrClosed(t *testing.T) {
	app := newApp()
	app.State.VentOpenness = 0
	New(app).SpawnDroplets(10)
	require.Empty(t, app.Droplets)

	app.State.VentOpenness = 1
	app.State.IsOn = false
	New(app).SpawnDroplets(10)
	assert.Empty(t, app.Droplets)
}

func TestSpawnIsDeterministicForSeed(t *testing.T) {
	a, b := newApp(), newApp()
	a.State.VentOpenness, b.State.VentOpenness = 1, 1

	New(a).SpawnDroplets(1)
	New(b).SpawnDroplets(1)
	assert.Equal(t, a.Droplets, b.Droplets)
}
