// Package draw composes each frame from the simulation state: the unit, its
// controls, the bowl, the droplets, and the HUD on top.
package draw

import (
	"image"
	"image/color"
	"log"
	"math"
	"strconv"

	"github.com/ThatOtherAndrew/acsim/internal/layout"
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/ThatOtherAndrew/acsim/internal/text"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer is the set of draw calls a frame is built from.
type Renderer interface {
	BeginFrame(width, height int, background mgl32.Vec3, depthTest, cull bool)
	SetViewProjection(view, projection mgl32.Mat4)
	SetLampLight(position, color mgl32.Vec3, intensity float32, enabled bool)
	SetDepthTest(enabled bool)

	DrawCube(model mgl32.Mat4, color mgl32.Vec3)
	DrawTexturedCube(model mgl32.Mat4, texture uint32, color mgl32.Vec3)
	DrawParticle(model mgl32.Mat4, color mgl32.Vec3, alpha float32)
	DrawHollowBoxAt(center mgl32.Vec3, width, height, depth, thickness float32, color mgl32.Vec3)
	DrawHollowCylinderAt(center mgl32.Vec3, radius, height, thickness float32, segments int, color mgl32.Vec3)
	DrawModel(id int, model mgl32.Mat4, color mgl32.Vec3)
	Render()

	BeginOverlay(width, height int)
	DrawOverlay(tex uint32, x, y, w, h float32, tint mgl32.Vec4)

	NewTexture(img image.Image) uint32
	DeleteTexture(tex uint32)
	CircleMaskTexture(size int) uint32
}

var (
	Background = mgl32.Vec3{0.10, 0.12, 0.16}

	bodyColor      = mgl32.Vec3{0.90, 0.93, 0.95}
	lidColor       = mgl32.Vec3{0.78, 0.82, 0.88}
	ventColor      = mgl32.Vec3{0.32, 0.36, 0.45}
	lampOnColor    = mgl32.Vec3{0.93, 0.22, 0.20}
	lampOffColor   = mgl32.Vec3{0.22, 0.18, 0.20}
	lampLightOff   = mgl32.Vec3{0.12, 0.12, 0.12}
	screenOnColor  = mgl32.Vec3{0.18, 0.68, 0.72}
	screenOffColor = mgl32.Vec3{0.08, 0.10, 0.12}
	arrowBgColor   = mgl32.Vec3{0.15, 0.18, 0.22}
	arrowColor     = mgl32.Vec3{1, 1, 1}
	bowlColor      = mgl32.Vec3{0.78, 0.82, 0.88}
	waterColor     = mgl32.Vec3{0.50, 0.78, 0.94}
	toiletColor    = mgl32.Vec3{0.95, 0.95, 0.97}
	seatColor      = mgl32.Vec3{0.90, 0.90, 0.91}
	dropletColor   = mgl32.Vec3{0.5, 0.8, 1.0}

	heatColor  = mgl32.Vec3{0.96, 0.46, 0.28}
	snowColor  = mgl32.Vec3{0.66, 0.85, 0.98}
	checkColor = mgl32.Vec3{0.38, 0.92, 0.58}

	digitColor     = color.RGBA{245, 250, 255, 255}
	nameplateFg    = color.RGBA{245, 250, 255, 242}
	nameplateBg    = color.RGBA{20, 20, 26, 115}
	overlayTint    = mgl32.Vec4{1, 1, 1, 1}
	transparentBox = color.RGBA{}
)

const (
	lampIntensity   float32 = 3
	lampTextureSize         = 64
	dropletAlpha    float32 = 0.6

	digitSize    = 64
	digitPadding = 8
	hudSize      = 20
	hudMargin    = 16
	hudGap       = 4
	plateSize    = 26
	platePadding = 10

	arrowSteps = 6

	// StatusTolerance is how far desired may sit from current before the
	// status icon shows heating or cooling.
	StatusTolerance float32 = 0.25

	heldDistance  float32 = 120
	heldBoxHeight float32 = 40

	toiletScale    float32 = 6
	toiletSegments         = 32
)

// Frame carries the per-frame inputs that do not live in models.App.
type Frame struct {
	Layout     layout.Layout
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CamPos     mgl32.Vec3
	CamForward mgl32.Vec3

	// Width and Height are the framebuffer size in pixels.
	Width, Height int

	FPSLabel string
}

type slot int

const (
	slotFPS slot = iota
	slotDepth
	slotCull
	slotNameplate
	slotCount
)

type label struct {
	text string
	tex  uint32
	w, h int
}

type App struct {
	app       *models.App
	r         Renderer
	text      *text.Rasterizer
	modelID   int
	nameplate string

	lampTex uint32
	labels  [slotCount]label
}

// New returns a composer drawing through r. rast may be nil, in which case
// screens stay blank and the HUD is skipped. modelID is the toilet mesh, or a
// negative value for the procedural fallback.
func New(app *models.App, r Renderer, rast *text.Rasterizer, modelID int, nameplate string) *App {
	return &App{app: app, r: r, text: rast, modelID: modelID, nameplate: nameplate}
}

func (a *App) SetNameplate(s string) {
	a.nameplate = s
}

func (a *App) Draw(f Frame) {
	st := &a.app.State
	a.r.BeginFrame(f.Width, f.Height, Background, a.app.DepthTest, a.app.Cull)

	lampColor := lampLightOff
	var intensity float32
	if st.IsOn {
		lampColor = lampOnColor
		intensity = lampIntensity
	}
	a.r.SetLampLight(f.Layout.LampCenter(), lampColor, intensity, st.IsOn)
	a.r.SetViewProjection(f.View, f.Projection)

	a.drawBody()
	a.drawPanel(f.Layout)
	a.drawArrows(f.Layout)
	a.drawBowl(f)
	a.drawToilet()
	a.drawDroplets()

	a.r.Render()

	a.r.SetDepthTest(false)
	a.drawStatusIcon(f.Layout)

	a.r.BeginOverlay(f.Width, f.Height)
	a.drawHUD(f)
}

func (a *App) drawBody() {
	a.r.DrawCube(mgl32.Scale3D(layout.WorldWidth, layout.WorldHeight, layout.WorldDepth), bodyColor)
	a.r.DrawCube(LidModel(a.app.LidAngle), lidColor)
}

// LidModel hinges the lid on the top-back edge of the body and swings it up
// by angle degrees.
func LidModel(angle float32) mgl32.Mat4 {
	h := layout.LidHinge()
	return mgl32.Translate3D(h.X(), h.Y(), h.Z()).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-angle))).
		Mul4(mgl32.Translate3D(0, lidThickness/2, layout.WorldDepth/2)).
		Mul4(mgl32.Scale3D(layout.WorldWidth, lidThickness, layout.WorldDepth))
}

const lidThickness float32 = 20

func box(center, size mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(center.X(), center.Y(), center.Z()).
		Mul4(mgl32.Scale3D(size.X(), size.Y(), size.Z()))
}

func (a *App) drawPanel(lay layout.Layout) {
	st := &a.app.State

	c, size := lay.Vent(st.VentOpenness)
	a.r.DrawCube(box(c, size), ventColor)

	if a.lampTex == 0 {
		a.lampTex = a.r.CircleMaskTexture(lampTextureSize)
	}
	d := layout.LampDiameter()
	lampColor := lampOffColor
	if st.IsOn {
		lampColor = lampOnColor
	}
	a.r.DrawTexturedCube(box(lay.LampCenter(), mgl32.Vec3{d, d, layout.ControlDepth}), a.lampTex, lampColor)

	screenColor := screenOffColor
	var temps [2]uint32
	if st.IsOn {
		screenColor = screenOnColor
		temps[0] = a.temperatureTexture(st.DesiredTemp, screenColor)
		temps[1] = a.temperatureTexture(st.CurrentTemp, screenColor)
	}
	for i := range layout.ScreenCount {
		c, size := lay.Screen(i)
		model := box(c, size)
		if i < len(temps) && temps[i] != 0 {
			a.r.DrawTexturedCube(model, temps[i], mgl32.Vec3{1, 1, 1})
		} else {
			a.r.DrawCube(model, screenColor)
		}
	}
	for _, tex := range temps {
		a.r.DeleteTexture(tex)
	}
}

// TemperatureText is the reading shown on a screen: the whole degrees,
// truncated toward zero.
func TemperatureText(t float32) string {
	return strconv.Itoa(int(t))
}

func (a *App) temperatureTexture(t float32, bg mgl32.Vec3) uint32 {
	if a.text == nil {
		return 0
	}
	img, err := a.text.Render(TemperatureText(t), digitColor, vecColor(bg), digitPadding, digitSize)
	if err != nil {
		log.Printf("Failed to render temperature: %v", err)
		return 0
	}
	return a.r.NewTexture(img)
}

func vecColor(v mgl32.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(mgl32.Clamp(v[0], 0, 1) * 255),
		G: uint8(mgl32.Clamp(v[1], 0, 1) * 255),
		B: uint8(mgl32.Clamp(v[2], 0, 1) * 255),
		A: 255,
	}
}

func (a *App) drawArrows(lay layout.Layout) {
	halfH := layout.Arrow.H / 2
	glyphH := halfH * 0.7
	glyphW := layout.Arrow.W * 0.6
	stepH := glyphH / arrowSteps

	for _, up := range []bool{true, false} {
		c, size := lay.ArrowHalf(up)
		a.r.DrawCube(box(c, size), arrowBgColor)

		for i := range arrowSteps {
			t := float32(i+1) / arrowSteps
			// Offsets are in layout pixels, y down.
			var py float32
			if up {
				py = -glyphH/2 + float32(i)*stepH
			} else {
				py = glyphH/2 - float32(i+1)*stepH
			}
			center := mgl32.Vec3{c.X(), c.Y() - py*layout.ScaleY, layout.GlyphZ}
			step := mgl32.Vec3{glyphW * t * layout.ScaleX, stepH * 0.85 * layout.ScaleY, layout.ControlDepth}
			a.r.DrawCube(box(center, step), arrowColor)
		}
	}
}

func (a *App) drawBowl(f Frame) {
	st := &a.app.State
	t := layout.BowlWallThickness()
	innerW := layout.BowlInnerWidth()
	innerDepth := max(layout.BowlDepth-2*t, 2)

	var center mgl32.Vec3
	var height float32
	if st.HoldingBowl {
		center = HeldBowlCenter(f.CamPos, f.CamForward)
		height = heldBoxHeight
		a.r.DrawHollowBoxAt(center, innerW, height, layout.BowlDepth, t, bowlColor)
	} else {
		center = layout.BowlCenter()
		size := layout.BowlSize()
		height = size.Y()
		a.r.DrawHollowBoxAt(center, size.X(), height, size.Z(), t, bowlColor)
	}

	if st.WaterLevel <= 0 {
		return
	}
	waterH := max(height-t, 0) * st.WaterLevel
	bottom := center.Y() - height/2 + t
	c := mgl32.Vec3{center.X(), bottom + waterH/2, center.Z()}
	a.r.DrawCube(box(c, mgl32.Vec3{innerW, waterH, innerDepth}), waterColor)
}

// HeldBowlCenter floats the held bowl in front of the camera.
func HeldBowlCenter(camPos, camForward mgl32.Vec3) mgl32.Vec3 {
	return camPos.Add(camForward.Mul(heldDistance))
}

func (a *App) toiletPosition() mgl32.Vec3 {
	if a.app.ToiletPlaced {
		return a.app.ToiletPos
	}
	return layout.BowlCenter().Add(mgl32.Vec3{0, 0, -420})
}

func (a *App) drawToilet() {
	if a.app.State.HoldingBowl {
		return
	}
	pos := a.toiletPosition()
	if a.modelID >= 0 {
		m := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
			Mul4(mgl32.HomogRotate3DY(math.Pi)).
			Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(270))).
			Mul4(mgl32.Scale3D(toiletScale, toiletScale, toiletScale))
		a.r.DrawModel(a.modelID, m, toiletColor)
		return
	}

	size := layout.BowlSize()
	radius := size.X() * 0.35
	height := size.Y() * 1.2
	a.r.DrawHollowCylinderAt(pos, radius, height, layout.BowlWallThickness()*1.2, toiletSegments, toiletColor)

	tank := mgl32.Vec3{radius * 2.4, height * 0.6, 40}
	tankPos := pos.Add(mgl32.Vec3{0, height/2 + tank.Y()/2 - 10, -20})
	a.r.DrawCube(box(tankPos, tank), toiletColor)

	seat := mgl32.Vec3{radius * 3.2, 6, radius * 3.2}
	seatPos := pos.Add(mgl32.Vec3{0, height*0.45 + 3, 0})
	a.r.DrawCube(box(seatPos, seat), seatColor)
}

func (a *App) drawDroplets() {
	for _, d := range a.app.Droplets {
		if !d.Alive {
			continue
		}
		a.r.DrawParticle(box(d.Pos, mgl32.Vec3{d.Radius, d.Radius, d.Radius}), dropletColor, dropletAlpha)
	}
}

// Status is the icon shown on the third screen.
type Status int

const (
	StatusIdle Status = iota
	StatusHeating
	StatusCooling
)

func StatusFor(desired, current float32) Status {
	diff := desired - current
	switch {
	case diff > StatusTolerance:
		return StatusHeating
	case diff < -StatusTolerance:
		return StatusCooling
	default:
		return StatusIdle
	}
}

func (a *App) drawStatusIcon(lay layout.Layout) {
	c, size := lay.Screen(2)
	w, h := size.X(), size.Y()
	z := layout.GlyphZ

	st := &a.app.State
	switch StatusFor(st.DesiredTemp, st.CurrentTemp) {
	case StatusHeating:
		const bands = 5
		bh := h * 0.12
		for i := range bands {
			t := 1 - float32(i)/bands
			y := c.Y() - h*0.25 + float32(i)*bh*0.9
			a.r.DrawCube(box(mgl32.Vec3{c.X(), y, z}, mgl32.Vec3{w * (0.4*t + 0.1), bh, layout.ControlDepth}), heatColor)
		}
	case StatusCooling:
		arm, length := w*0.08, w*0.6
		center := mgl32.Vec3{c.X(), c.Y(), z}
		a.r.DrawCube(box(center, mgl32.Vec3{length, arm, layout.ControlDepth}), snowColor)
		a.r.DrawCube(box(center, mgl32.Vec3{arm, length, layout.ControlDepth}), snowColor)
	default:
		thick := min(w, h) * 0.08
		p1 := mgl32.Vec3{c.X() - w*0.15, c.Y() + h*0.05, z}
		p2 := mgl32.Vec3{c.X() - w*0.02, c.Y() - h*0.15, z}
		p3 := mgl32.Vec3{c.X() + w*0.20, c.Y() + h*0.18, z}
		a.r.DrawCube(segment(p1, p2, thick), checkColor)
		a.r.DrawCube(segment(p2, p3, thick), checkColor)
	}
}

// segment is a flat bar from p to q in the XY plane.
func segment(p, q mgl32.Vec3, thickness float32) mgl32.Mat4 {
	mid := p.Add(q).Mul(0.5)
	dir := q.Sub(p)
	angle := float32(math.Atan2(float64(dir.Y()), float64(dir.X())))
	return mgl32.Translate3D(mid.X(), mid.Y(), mid.Z()).
		Mul4(mgl32.HomogRotate3DZ(angle)).
		Mul4(mgl32.Scale3D(dir.Len(), thickness, layout.ControlDepth))
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

func (a *App) drawHUD(f Frame) {
	if a.text == nil {
		return
	}
	right := float32(f.Width - hudMargin)

	if l := a.label(slotFPS, f.FPSLabel, hudSize, digitColor, transparentBox, 0); l.tex != 0 {
		a.r.DrawOverlay(l.tex, hudMargin, hudMargin, float32(l.w), float32(l.h), overlayTint)
	}

	y := float32(hudMargin)
	if l := a.label(slotDepth, "Depth: "+onOff(a.app.DepthTest)+" (T)", hudSize, digitColor, transparentBox, 0); l.tex != 0 {
		a.r.DrawOverlay(l.tex, right-float32(l.w), y, float32(l.w), float32(l.h), overlayTint)
		y += float32(l.h) + hudGap
	}
	if l := a.label(slotCull, "Cull: "+onOff(a.app.Cull)+" (C)", hudSize, digitColor, transparentBox, 0); l.tex != 0 {
		a.r.DrawOverlay(l.tex, right-float32(l.w), y, float32(l.w), float32(l.h), overlayTint)
	}

	if l := a.label(slotNameplate, a.nameplate, plateSize, nameplateFg, nameplateBg, platePadding); l.tex != 0 {
		a.r.DrawOverlay(l.tex, right-float32(l.w), float32(f.Height-hudMargin-l.h), float32(l.w), float32(l.h), overlayTint)
	}
}

// label returns the cached texture for slot, rebuilding it when s changed.
func (a *App) label(sl slot, s string, size float64, fg, bg color.Color, padding int) label {
	l := &a.labels[sl]
	if l.tex != 0 && l.text == s {
		return *l
	}
	a.r.DeleteTexture(l.tex)
	*l = label{text: s}
	if s == "" {
		return *l
	}

	img, err := a.text.Render(s, fg, bg, padding, size)
	if err != nil {
		log.Printf("Failed to render label %q: %v", s, err)
		return *l
	}
	l.tex = a.r.NewTexture(img)
	l.w, l.h = img.Bounds().Dx(), img.Bounds().Dy()
	return *l
}

// Close releases the textures the composer owns.
func (a *App) Close() {
	for i := range a.labels {
		a.r.DeleteTexture(a.labels[i].tex)
		a.labels[i] = label{}
	}
	a.r.DeleteTexture(a.lampTex)
	a.lampTex = 0
}
