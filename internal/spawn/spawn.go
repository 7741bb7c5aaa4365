package spawn

import (
	"math"

	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	dropletRadius float32 = 4
	// Droplets leave just under the body's bottom face.
	spawnY      float32 = -55
	spawnHalfX  float32 = 20
	spawnHalfZ  float32 = 10
	launchSpeed float32 = 60
)

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

// SpawnDroplets emits droplets under the vent at a rate proportional to its
// openness. Fractional droplets carry over to the next frame.
func (a *App) SpawnDroplets(dt float32) {
	s := &a.app.State
	rate := a.app.Tuning.SpawnRate * s.VentOpenness
	if !s.IsOn || rate <= 0 {
		return
	}

	a.app.SpawnAccum += rate * dt
	for a.app.SpawnAccum >= 1 {
		a.app.SpawnAccum -= 1
		a.app.Droplets = append(a.app.Droplets, a.newDroplet())
	}
}

func (a *App) newDroplet() models.Droplet {
	r := a.app.Rand
	x := (r.Float32()*2 - 1) * spawnHalfX
	z := (r.Float32()*2 - 1) * spawnHalfZ
	jitter := float32(math.Abs(float64((r.Float32()*2 - 1) * spawnHalfZ)))

	return models.Droplet{
		Pos:    mgl32.Vec3{x, spawnY, z},
		Vel:    mgl32.Vec3{0, -launchSpeed - jitter, 0},
		Radius: dropletRadius,
		Alive:  true,
	}
}
