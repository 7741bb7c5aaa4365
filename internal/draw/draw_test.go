package draw

import (
	"image"
	"testing"

	"github.com/ThatOtherAndrew/acsim/internal/layout"
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/ThatOtherAndrew/acsim/internal/state"
	"github.com/ThatOtherAndrew/acsim/internal/text"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls    []string
	nextTex  uint32
	live     map[uint32]bool
	textured []uint32
	depth    []bool
}

func newRecorder() *recorder {
	return &recorder{live: map[uint32]bool{}}
}

func (r *recorder) add(name string) { r.calls = append(r.calls, name) }

func (r *recorder) BeginFrame(int, int, mgl32.Vec3, bool, bool) { r.add("BeginFrame") }
func (r *recorder) SetViewProjection(mgl32.Mat4, mgl32.Mat4)    { r.add("SetViewProjection") }
func (r *recorder) SetLampLight(mgl32.Vec3, mgl32.Vec3, float32, bool) {
	r.add("SetLampLight")
}
func (r *recorder) SetDepthTest(enabled bool) {
	r.depth = append(r.depth, enabled)
	r.add("SetDepthTest")
}
func (r *recorder) DrawCube(mgl32.Mat4, mgl32.Vec3) { r.add("DrawCube") }
func (r *recorder) DrawTexturedCube(_ mgl32.Mat4, tex uint32, _ mgl32.Vec3) {
	r.textured = append(r.textured, tex)
	r.add("DrawTexturedCube")
}
func (r *recorder) DrawParticle(mgl32.Mat4, mgl32.Vec3, float32) { r.add("DrawParticle") }
func (r *recorder) DrawHollowBoxAt(mgl32.Vec3, float32, float32, float32, float32, mgl32.Vec3) {
	r.add("DrawHollowBoxAt")
}
func (r *recorder) DrawHollowCylinderAt(mgl32.Vec3, float32, float32, float32, int, mgl32.Vec3) {
	r.add("DrawHollowCylinderAt")
}
func (r *recorder) DrawModel(int, mgl32.Mat4, mgl32.Vec3) { r.add("DrawModel") }
func (r *recorder) Render()                               { r.add("Render") }
func (r *recorder) BeginOverlay(int, int)                 { r.add("BeginOverlay") }
func (r *recorder) DrawOverlay(uint32, float32, float32, float32, float32, mgl32.Vec4) {
	r.add("DrawOverlay")
}

func (r *recorder) NewTexture(image.Image) uint32 {
	r.nextTex++
	r.live[r.nextTex] = true
	return r.nextTex
}

func (r *recorder) DeleteTexture(tex uint32) {
	if tex != 0 {
		delete(r.live, tex)
	}
}

func (r *recorder) CircleMaskTexture(int) uint32 {
	return r.NewTexture(nil)
}

func (r *recorder) index(name string) int {
	for i, c := range r.calls {
		if c == name {
			return i
		}
	}
	return -1
}

func (r *recorder) lastIndex(name string) int {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i] == name {
			return i
		}
	}
	return -1
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

func newApp() *models.App {
	return &models.App{State: state.New(), DepthTest: true, Cull: true}
}

func frame() Frame {
	return Frame{
		Layout:     layout.New(1280, 800),
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		CamForward: mgl32.Vec3{0, 0, -1},
		Width:      1280,
		Height:     800,
		FPSLabel:   "FPS --",
	}
}

func newRasterizer(t *testing.T) *text.Rasterizer {
	rast, err := text.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = rast.Close() })
	return rast
}

func TestDrawOrder(t *testing.T) {
	app := newApp()
	app.Droplets = []models.Droplet{{Pos: mgl32.Vec3{0, -100, 0}, Radius: 4, Alive: true}}
	r := newRecorder()

	New(app, r, newRasterizer(t), -1, "AC Simulator").Draw(frame())

	require.Equal(t, "BeginFrame", r.calls[0])
	assert.Less(t, r.index("SetLampLight"), r.index("SetViewProjection"))
	assert.Less(t, r.index("SetViewProjection"), r.index("DrawCube"))
	assert.Less(t, r.lastIndex("DrawHollowCylinderAt"), r.index("DrawParticle"))
	assert.Less(t, r.index("DrawParticle"), r.index("Render"))
	assert.Less(t, r.index("Render"), r.index("SetDepthTest"))
	assert.Less(t, r.index("SetDepthTest"), r.index("BeginOverlay"))
	assert.Less(t, r.index("BeginOverlay"), r.index("DrawOverlay"))
	assert.Equal(t, []bool{false}, r.depth)

	// FPS, depth, cull and nameplate labels.
	assert.Equal(t, 4, r.count("DrawOverlay"))
}

func TestTemperatureTexturesAreReleased(t *testing.T) {
	app := newApp()
	r := newRecorder()
	a := New(app, r, newRasterizer(t), -1, "AC Simulator")

	a.Draw(frame())
	// Lamp disc and the four cached labels survive the frame.
	assert.Len(t, r.live, 5)

	created := r.nextTex
	a.Draw(frame())
	assert.Len(t, r.live, 5)
	assert.Equal(t, created+2, r.nextTex, "only the two readings are rebuilt")

	a.Close()
	assert.Empty(t, r.live)
}

func TestScreensTexturedOnlyWhenOn(t *testing.T) {
	app := newApp()
	r := newRecorder()
	New(app, r, newRasterizer(t), -1, "").Draw(frame())
	// Lamp plus two readings.
	assert.Len(t, r.textured, 3)

	app.State.IsOn = false
	r = newRecorder()
	New(app, r, newRasterizer(t), -1, "").Draw(frame())
	assert.Len(t, r.textured, 1)
}

func TestDrawWithoutText(t *testing.T) {
	r := newRecorder()
	New(newApp(), r, nil, -1, "AC Simulator").Draw(frame())

	assert.Zero(t, r.count("DrawOverlay"))
	assert.Equal(t, 1, r.count("DrawTexturedCube"))
	assert.Equal(t, 1, r.count("BeginOverlay"))
}

func TestToiletModelReplacesFallback(t *testing.T) {
	r := newRecorder()
	New(newApp(), r, nil, 0, "").Draw(frame())
	assert.Equal(t, 1, r.count("DrawModel"))
	assert.Zero(t, r.count("DrawHollowCylinderAt"))
}

func TestHeldBowlHidesToilet(t *testing.T) {
	app := newApp()
	app.State.HoldingBowl = true
	app.State.WaterLevel = 0.5
	r := newRecorder()
	New(app, r, nil, -1, "").Draw(frame())

	assert.Zero(t, r.count("DrawHollowCylinderAt"))
	assert.Equal(t, 1, r.count("DrawHollowBoxAt"))
}

func TestDeadDropletsSkipped(t *testing.T) {
	app := newApp()
	app.Droplets = []models.Droplet{{Alive: true, Radius: 4}, {Alive: false, Radius: 4}}
	r := newRecorder()
	New(app, r, nil, -1, "").Draw(frame())
	assert.Equal(t, 1, r.count("DrawParticle"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name             string
		desired, current float32
		want             Status
	}{
		{"heating", 25, 24, StatusHeating},
		{"cooling", 20, 24, StatusCooling},
		{"within tolerance above", 24.2, 24, StatusIdle},
		{"within tolerance below", 23.8, 24, StatusIdle},
		{"equal", 24, 24, StatusIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.desired, tt.current))
		})
	}
}

func TestTemperatureText(t *testing.T) {
	assert.Equal(t, "24", TemperatureText(24.9))
	assert.Equal(t, "-3", TemperatureText(-3.7))
	assert.Equal(t, "0", TemperatureText(-0.5))
}

func TestLidModelClosedSitsOnBody(t *testing.T) {
	top := LidModel(0).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, layout.WorldHeight/2+10, top.Y(), 1e-4)
	assert.InDelta(t, 0, top.Z(), 1e-4)

	open := LidModel(60).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Greater(t, open.Y(), top.Y())
	assert.Less(t, open.Z(), top.Z())
}
