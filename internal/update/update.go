package update

import (
	"math"

	"github.com/ThatOtherAndrew/acsim/internal/layout"
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/ThatOtherAndrew/acsim/internal/state"
)

// Droplets that fall this far below the bowl are dropped.
const killDepth float32 = 1000

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

// UpdateDroplets integrates gravity, catches droplets in the floor bowl and
// removes dead ones. A full bowl drains every droplet in flight.
func (a *App) UpdateDroplets(dt float32) {
	tune := a.app.Tuning
	bowl := layout.BowlCenter()
	rimY := layout.BowlRimY()
	innerR := layout.BowlInnerRadius()

	for i := 0; i < len(a.app.Droplets); i++ {
		d := &a.app.Droplets[i]
		d.Vel[1] -= tune.Gravity * dt
		d.Pos = d.Pos.Add(d.Vel.Mul(dt))

		if d.Pos.Y()-d.Radius <= rimY+tune.VerticalTolerance {
			dx := d.Pos.X() - bowl.X()
			dz := d.Pos.Z() - bowl.Z()
			dist := float32(math.Sqrt(float64(dx*dx + dz*dz)))

			switch {
			case dist <= innerR-1:
				a.collect(d)
			case d.Pos.Y() <= rimY-tune.VerticalTolerance && dist <= innerR+tune.RimTolerance:
				// Fell through the rim check in one step.
				a.collect(d)
			case dist <= innerR+tune.RimTolerance:
				dist = max(dist, 0.001)
				d.Vel[0] += dx / dist * tune.RimBounce
				d.Vel[2] += dz / dist * tune.RimBounce
				d.Pos[1] = rimY + d.Radius + 1
			}
		}

		if d.Pos.Y() < bowl.Y()-killDepth {
			d.Alive = false
		}

		if !d.Alive {
			a.app.Droplets[i] = a.app.Droplets[len(a.app.Droplets)-1]
			a.app.Droplets = a.app.Droplets[:len(a.app.Droplets)-1]
			i--
		}
	}

	if a.app.State.WaterLevel >= 1 {
		a.app.Droplets = a.app.Droplets[:0]
	}
}

func (a *App) collect(d *models.Droplet) {
	d.Alive = false
	state.AddWater(&a.app.State, a.app.Tuning.FillPerDrop)
}

// Lid angles in degrees.
const (
	LidOpenAngle float32 = 60
	LidSpeed     float32 = 90
)

// UpdateLid swings the lid open while the unit runs and closed otherwise.
func (a *App) UpdateLid(dt float32) {
	var target float32
	if a.app.State.IsOn {
		target = LidOpenAngle
	}
	step := LidSpeed * dt
	if a.app.LidAngle < target {
		a.app.LidAngle = min(a.app.LidAngle+step, target)
	} else if a.app.LidAngle > target {
		a.app.LidAngle = max(a.app.LidAngle-step, target)
	}
}
