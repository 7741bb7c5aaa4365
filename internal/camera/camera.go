// Package camera implements the first-person and orbit cameras. Both are
// driven by the per-frame input snapshot rather than window callbacks.
package camera

import (
	"math"

	"github.com/ThatOtherAndrew/acsim/internal/input"
	"github.com/go-gl/mathgl/mgl32"
)

type Mode int

const (
	FirstPerson Mode = iota
	Orbit
)

func (m Mode) String() string {
	if m == Orbit {
		return "orbit"
	}
	return "first_person"
}

// ParseMode accepts the names produced by Mode.String. Anything else is
// first-person.
func ParseMode(s string) Mode {
	if s == "orbit" {
		return Orbit
	}
	return FirstPerson
}

const (
	DefaultFOV         float32 = 45
	DefaultNear        float32 = 0.1
	DefaultFar         float32 = 5000
	DefaultSensitivity float32 = 0.25
	DefaultMoveSpeed   float32 = 400
	DefaultOrbitRadius float32 = 600

	MaxPitch       float32 = 89
	MinOrbitRadius float32 = 50
	MaxOrbitRadius float32 = 2000
	MinDollyZ      float32 = 1
	ScrollStep     float32 = 20
	orbitDragScale float32 = 0.5
)

var worldUp = mgl32.Vec3{0, 1, 0}

type Camera struct {
	mode Mode

	pos        mgl32.Vec3
	yaw, pitch float32
	radius     float32

	fov         float32
	sensitivity float32
	moveSpeed   float32

	width, height int

	rotating   bool
	firstMouse bool
	lastX      float64
	lastY      float64
}

type Option func(*Camera)

func WithMode(m Mode) Option {
	return func(c *Camera) { c.mode = m }
}

func WithSensitivity(s float32) Option {
	return func(c *Camera) {
		if s > 0 {
			c.sensitivity = s
		}
	}
}

func WithMoveSpeed(speed float32) Option {
	return func(c *Camera) {
		if speed > 0 {
			c.moveSpeed = speed
		}
	}
}

// New returns a camera 600 units in front of the unit looking down -Z.
func New(width, height int, opts ...Option) *Camera {
	c := &Camera{
		pos:         mgl32.Vec3{0, 0, 600},
		yaw:         -90,
		radius:      DefaultOrbitRadius,
		fov:         DefaultFOV,
		sensitivity: DefaultSensitivity,
		moveSpeed:   DefaultMoveSpeed,
		width:       width,
		height:      height,
		firstMouse:  true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.mode == Orbit {
		c.enterOrbit()
	}
	return c
}

func (c *Camera) Mode() Mode { return c.mode }

// SetMode switches between the two state machines. Entering orbit derives
// yaw, pitch and radius from the current position so the view does not jump.
func (c *Camera) SetMode(m Mode) {
	if m == c.mode {
		return
	}
	if m == Orbit {
		c.mode = Orbit
		c.enterOrbit()
		return
	}
	c.mode = FirstPerson
	// Face the origin from wherever the orbit left us.
	f := c.pos.Mul(-1)
	if f.Len() > 0 {
		f = f.Normalize()
		c.pitch = clampPitch(mgl32.RadToDeg(float32(math.Asin(float64(f.Y())))))
		c.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(f.Z()), float64(f.X()))))
	}
}

func (c *Camera) enterOrbit() {
	r := c.pos.Len()
	if r == 0 {
		r = DefaultOrbitRadius
	}
	c.radius = mgl32.Clamp(r, MinOrbitRadius, MaxOrbitRadius)
	c.pitch = clampPitch(mgl32.RadToDeg(float32(math.Asin(float64(c.pos.Y() / r)))))
	c.yaw = mgl32.RadToDeg(float32(math.Atan2(float64(c.pos.Z()), float64(c.pos.X()))))
	c.updateOrbitPosition()
}

func (c *Camera) SetWindowSize(width, height int) {
	c.width = width
	c.height = height
}

// HandleInput applies the mouse and scroll parts of a snapshot.
func (c *Camera) HandleInput(snap input.Snapshot) {
	c.handleButton(snap.MouseDown)
	c.handleCursor(snap.CursorX, snap.CursorY)
	if snap.ScrollY != 0 {
		c.handleScroll(float32(snap.ScrollY))
	}
}

func (c *Camera) handleButton(down bool) {
	if down && !c.rotating {
		c.firstMouse = true
	}
	c.rotating = down
}

func (c *Camera) handleCursor(x, y float64) {
	if !c.rotating {
		return
	}
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
		return
	}

	dx := float32(x-c.lastX) * c.sensitivity
	dy := float32(c.lastY-y) * c.sensitivity
	c.lastX, c.lastY = x, y

	if c.mode == Orbit {
		dx *= orbitDragScale
		dy *= orbitDragScale
	}
	c.yaw += dx
	c.pitch = clampPitch(c.pitch + dy)
}

func (c *Camera) handleScroll(dy float32) {
	if c.mode == Orbit {
		c.radius = mgl32.Clamp(c.radius-dy*ScrollStep, MinOrbitRadius, MaxOrbitRadius)
		return
	}
	c.pos[2] = max(c.pos[2]-dy*ScrollStep, MinDollyZ)
}

// Update moves the first-person camera from held keys, or recomputes the
// orbit position.
func (c *Camera) Update(dt float32, snap input.Snapshot) {
	if c.mode == Orbit {
		c.updateOrbitPosition()
		return
	}

	velocity := c.moveSpeed * dt
	front := c.front()
	right := front.Cross(worldUp).Normalize()

	if snap.Pressed(input.KeyW) {
		c.pos = c.pos.Add(front.Mul(velocity))
	}
	if snap.Pressed(input.KeyS) {
		c.pos = c.pos.Sub(front.Mul(velocity))
	}
	if snap.Pressed(input.KeyA) {
		c.pos = c.pos.Sub(right.Mul(velocity))
	}
	if snap.Pressed(input.KeyD) {
		c.pos = c.pos.Add(right.Mul(velocity))
	}
	if snap.Pressed(input.KeyQ) {
		c.pos[1] += velocity
	}
	if snap.Pressed(input.KeyE) {
		c.pos[1] -= velocity
	}
}

func (c *Camera) updateOrbitPosition() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	c.pos = mgl32.Vec3{
		c.radius * cos(pitch) * cos(yaw),
		c.radius * sin(pitch),
		c.radius * cos(pitch) * sin(yaw),
	}
}

func (c *Camera) front() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)
	return mgl32.Vec3{
		cos(yaw) * cos(pitch),
		sin(pitch),
		sin(yaw) * cos(pitch),
	}.Normalize()
}

func (c *Camera) Position() mgl32.Vec3 { return c.pos }

// Forward is the unit view direction. In orbit mode it always points at the
// origin.
func (c *Camera) Forward() mgl32.Vec3 {
	if c.mode == Orbit {
		f := c.pos.Mul(-1)
		if f.Len() == 0 {
			return mgl32.Vec3{0, 0, -1}
		}
		return f.Normalize()
	}
	return c.front()
}

func (c *Camera) Yaw() float32   { return c.yaw }
func (c *Camera) Pitch() float32 { return c.pitch }

// Radius is the orbit distance, kept even while in first-person mode.
func (c *Camera) Radius() float32 { return c.radius }

func (c *Camera) View() mgl32.Mat4 {
	if c.mode == Orbit {
		return mgl32.LookAtV(c.pos, mgl32.Vec3{}, worldUp)
	}
	return mgl32.LookAtV(c.pos, c.pos.Add(c.front()), worldUp)
}

func (c *Camera) Projection() mgl32.Mat4 {
	aspect := float32(4.0 / 3.0)
	if c.width > 0 && c.height > 0 {
		aspect = float32(c.width) / float32(c.height)
	}
	return mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, DefaultNear, DefaultFar)
}

func clampPitch(p float32) float32 {
	return mgl32.Clamp(p, -MaxPitch, MaxPitch)
}

func cos(v float32) float32 { return float32(math.Cos(float64(v))) }
func sin(v float32) float32 { return float32(math.Sin(float64(v))) }
