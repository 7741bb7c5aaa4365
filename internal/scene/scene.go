// Package scene advances one frame of the simulation from an input snapshot:
// camera, picking, appliance state, droplets and the lid.
package scene

import (
	"log"

	"github.com/ThatOtherAndrew/acsim/internal/camera"
	"github.com/ThatOtherAndrew/acsim/internal/input"
	"github.com/ThatOtherAndrew/acsim/internal/layout"
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/ThatOtherAndrew/acsim/internal/picking"
	"github.com/ThatOtherAndrew/acsim/internal/spawn"
	"github.com/ThatOtherAndrew/acsim/internal/state"
	"github.com/ThatOtherAndrew/acsim/internal/update"
	"github.com/go-gl/mathgl/mgl32"
)

// ToiletDistance is how far behind the first camera position the toilet is
// placed.
const ToiletDistance float32 = 300

type App struct {
	app     *models.App
	spawner *spawn.App
	updater *update.App

	lampKey, depthKey, cullKey input.Edge
}

func New(app *models.App) *App {
	return &App{
		app:     app,
		spawner: spawn.New(app),
		updater: update.New(app),
	}
}

// Hits is what a click landed on. Up and Down are never both set.
type Hits struct {
	Lamp bool
	Up   bool
	Down bool
	Bowl bool
}

// Pick tests a click at the cursor against the lamp, the arrow halves and the
// bowl, both in window space and along the camera ray. The arrows are not
// tested while the unit is locked.
func (a *App) Pick(cam *camera.Camera, lay layout.Layout, snap input.Snapshot) Hits {
	x, y := snap.CursorX, snap.CursorY
	invPV := cam.Projection().Mul4(cam.View()).Inv()
	ray := picking.NewRay(x, y, snap.Width, snap.Height, invPV)

	var h Hits
	_, rayLamp := picking.RaySphere(ray, lay.LampCenter(), layout.LampPickRadius())
	h.Lamp = rayLamp || lay.PointInCircle(x, y, layout.Lamp)

	if !a.app.State.LockedByFullBowl {
		upLo, upHi := lay.ArrowPickBox(true)
		h.Up = lay.PointInRect(x, y, layout.ArrowHalf(true)) || hitBox(ray, upLo, upHi)
		if !h.Up {
			downLo, downHi := lay.ArrowPickBox(false)
			h.Down = lay.PointInRect(x, y, layout.ArrowHalf(false)) || hitBox(ray, downLo, downHi)
		}
	}

	bowlLo, bowlHi := layout.BowlPickBox()
	h.Bowl = hitBox(ray, bowlLo, bowlHi)
	return h
}

func hitBox(r picking.Ray, lo, hi mgl32.Vec3) bool {
	_, ok := picking.RayAABB(r, lo, hi)
	return ok
}

// Step advances one frame. It reports false once Escape is pressed.
func (a *App) Step(cam *camera.Camera, lay layout.Layout, snap input.Snapshot, dt float32) bool {
	st := &a.app.State

	cam.HandleInput(snap)
	cam.Update(dt, snap)

	clickStart := snap.MouseDown && !st.PrevMouseDown
	var hits Hits
	if clickStart {
		hits = a.Pick(cam, lay, snap)
		switch {
		case hits.Up:
			state.AdjustDesiredTemp(st, 1)
		case hits.Down:
			state.AdjustDesiredTemp(st, -1)
		}
		if hits.Bowl && state.ToggleBowl(st) {
			if st.HoldingBowl {
				log.Printf("Bowl picked up")
			} else {
				log.Printf("Bowl put down")
			}
		}
	}

	if a.lampKey.Rising(snap.Pressed(input.KeyL)) {
		state.TogglePower(st)
	}
	state.HandlePowerToggle(st, snap.MouseDown, hits.Lamp)
	state.HandleTemperatureInput(st, snap.Pressed(input.KeyUp), snap.Pressed(input.KeyDown))
	state.UpdateVent(st, dt)
	state.UpdateTemperature(st, dt)
	state.UpdateWater(st, dt, snap.Pressed(input.KeySpace), cam.Position(), cam.Forward())

	if a.depthKey.Rising(snap.Pressed(input.KeyT)) {
		a.app.DepthTest = !a.app.DepthTest
		log.Printf("Depth test %s", enabledText(a.app.DepthTest))
	}
	if a.cullKey.Rising(snap.Pressed(input.KeyC)) {
		a.app.Cull = !a.app.Cull
		log.Printf("Backface culling %s", enabledText(a.app.Cull))
	}

	a.spawner.SpawnDroplets(dt)
	a.updater.UpdateDroplets(dt)
	a.updater.UpdateLid(dt)

	a.app.CursorHidden = st.HoldingBowl
	if !a.app.ToiletPlaced {
		a.app.ToiletPos = ToiletPosition(cam.Position(), cam.Forward())
		a.app.ToiletPlaced = true
	}

	return !snap.Pressed(input.KeyEscape)
}

// ToiletPosition puts the toilet behind the camera with its base on the
// bowl's top.
func ToiletPosition(camPos, camForward mgl32.Vec3) mgl32.Vec3 {
	p := camPos.Sub(camForward.Mul(ToiletDistance))
	p[1] = layout.BowlCenter().Y() + layout.BowlSize().Y()
	return p
}

func enabledText(on bool) string {
	if on {
		return "ENABLED"
	}
	return "DISABLED"
}
