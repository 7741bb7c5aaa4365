package update

import (
	"testing"

	"github.com/ThatOtherAndrew/acsim/internal/layout"
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/ThatOtherAndrew/acsim/internal/state"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(droplets ...models.Droplet) *models.App {
	return &models.App{
		State: state.New(),
		Tuning: models.DropletTuning{
			Gravity:           400,
			FillPerDrop:       0.0015,
			VerticalTolerance: 4,
			RimTolerance:      2,
			RimBounce:         50,
		},
		Droplets: droplets,
	}
}

func drop(x, y, z float32) models.Droplet {
	return models.Droplet{Pos: mgl32.Vec3{x, y, z}, Radius: 4, Alive: true}
}

func TestDropletCollectedInsideBowl(t *testing.T) {
	app := newApp(drop(0, layout.BowlRimY()+2, 0))

	New(app).UpdateDroplets(0.001)
	assert.Empty(t, app.Droplets)
	assert.InDelta(t, 0.0015, app.State.WaterLevel, 1e-6)
}

func TestDropletBouncesOffRim(t *testing.T) {
	r := layout.BowlInnerRadius() + 1
	app := newApp(drop(r, layout.BowlRimY()+2, 0))

	New(app).UpdateDroplets(0.001)
	require.Len(t, app.Droplets, 1)
	d := app.Droplets[0]
	assert.Greater(t, d.Vel.X(), float32(49))
	assert.Equal(t, layout.BowlRimY()+d.Radius+1, d.Pos.Y())
	assert.Zero(t, app.State.WaterLevel)
}

func TestDropletMissesBowlAndDies(t *testing.T) {
	app := newApp(drop(200, layout.BowlCenter().Y()-999, 0))
	app.Droplets[0].Vel = mgl32.Vec3{0, -100, 0}

	New(app).UpdateDroplets(0.1)
	assert.Empty(t, app.Droplets)
	assert.Zero(t, app.State.WaterLevel)
}

func TestDropletFallsUnderGravity(t *testing.T) {
	app := newApp(drop(0, -55, 0))

	New(app).UpdateDroplets(0.5)
	require.Len(t, app.Droplets, 1)
	assert.InDelta(t, -200, app.Droplets[0].Vel.Y(), 1e-4)
	assert.InDelta(t, -155, app.Droplets[0].Pos.Y(), 1e-4)
}

func TestFullBowlLocksAndClearsDroplets(t *testing.T) {
	app := newApp(drop(0, layout.BowlRimY(), 0), drop(5, -60, 5), drop(-5, -80, 0))
	app.State.WaterLevel = 0.999

	New(app).UpdateDroplets(0.001)
	assert.Empty(t, app.Droplets)
	assert.Equal(t, float32(1), app.State.WaterLevel)
	assert.False(t, app.State.IsOn)
	assert.True(t, app.State.LockedByFullBowl)
}

func TestUpdateLid(t *testing.T) {
	app := newApp()
	u := New(app)

	u.UpdateLid(0.5)
	assert.Equal(t, float32(45), app.LidAngle)
	u.UpdateLid(1)
	assert.Equal(t, LidOpenAngle, app.LidAngle)

	app.State.IsOn = false
	u.UpdateLid(0.5)
	assert.Equal(t, float32(15), app.LidAngle)
	u.UpdateLid(1)
	assert.Zero(t, app.LidAngle)
}
