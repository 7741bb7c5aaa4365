package models

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Temperature limits shared by the desired and current readings.
const (
	MinTemp float32 = -10
	MaxTemp float32 = 40
)

// AppState is the appliance simulation state. It is mutated only by the
// functions in the state package, once per frame.
type AppState struct {
	IsOn             bool
	LockedByFullBowl bool
	VentOpenness     float32
	DesiredTemp      float32
	CurrentTemp      float32
	WaterLevel       float32
	HoldingBowl      bool

	PrevMouseDown    bool
	PrevUpPressed    bool
	PrevDownPressed  bool
	PrevSpacePressed bool

	WaterAccum float32

	TempChangeStep     float32
	VentAnimSpeed      float32
	TempDriftSpeed     float32
	WaterFillPerSecond float32
}

type Droplet struct {
	Pos    mgl32.Vec3
	Vel    mgl32.Vec3
	Radius float32
	Alive  bool
}

// DropletTuning holds the spawn and bowl collision constants for droplets.
type DropletTuning struct {
	SpawnRate         float32
	Gravity           float32
	FillPerDrop       float32
	VerticalTolerance float32
	RimTolerance      float32
	RimBounce         float32
}

type RectShape struct {
	X, Y, W, H float32
}

type CircleShape struct {
	CX, CY, R float32
}

type Color struct {
	R, G, B float32
}

func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// App aggregates everything the frame driver owns besides the camera and
// the GPU resources.
type App struct {
	State    AppState
	Droplets []Droplet
	Tuning   DropletTuning
	Rand     *rand.Rand

	SpawnAccum float32
	LidAngle   float32

	DepthTest bool
	Cull      bool

	ToiletPlaced bool
	ToiletPos    mgl32.Vec3

	CursorHidden bool
	WindowWidth  int
	WindowHeight int
}
