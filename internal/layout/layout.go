// Package layout holds the front-panel layout in virtual pixels and maps it
// into world space. The unit body is 480x200 virtual pixels and 240x100x80
// world units, centered on the origin.
package layout

import (
	"github.com/ThatOtherAndrew/acsim/internal/models"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ACWidth  float32 = 480
	ACHeight float32 = 200

	WorldWidth  float32 = 240
	WorldHeight float32 = 100
	WorldDepth  float32 = 80

	ScaleX = WorldWidth / ACWidth
	ScaleY = WorldHeight / ACHeight

	PanelZ   float32 = 44
	ControlZ float32 = 46
	GlyphZ   float32 = 47

	PanelDepth   float32 = 4
	VentDepth    float32 = 6
	ControlDepth float32 = 2

	VentClosedHeight float32 = 4
	VentOpenHeight   float32 = 18

	ScreenCount   = 3
	ScreenW       float32 = 94
	ScreenH       float32 = 54
	ScreenSpacing float32 = 22
	ScreenStartX  float32 = 70
	ScreenY       float32 = 52

	BowlThickness float32 = 10
	BowlDrop      float32 = 300
	BowlDepth     float32 = 80
)

var (
	Body  = models.RectShape{X: 0, Y: 0, W: ACWidth, H: ACHeight}
	Lamp  = models.CircleShape{CX: ACWidth - 44, CY: ACHeight - 26, R: 14}
	Arrow = models.RectShape{X: ScreenStartX - 40 - 12, Y: ScreenY, W: 40, H: ScreenH}
	Bowl  = models.RectShape{X: (ACWidth - 260) / 2, Y: ACHeight + 120, W: 260, H: 140}
)

// VentBar grows downward from its top edge as the vent opens.
func VentBar(openness float32) models.RectShape {
	openness = mgl32.Clamp(openness, 0, 1)
	return models.RectShape{
		X: 24,
		Y: ACHeight - 64,
		W: ACWidth - 48,
		H: VentClosedHeight + (VentOpenHeight-VentClosedHeight)*openness,
	}
}

func Screen(i int) models.RectShape {
	return models.RectShape{
		X: ScreenStartX + float32(i)*(ScreenW+ScreenSpacing),
		Y: ScreenY,
		W: ScreenW,
		H: ScreenH,
	}
}

// ArrowHalf returns the upper (up) or lower half of the arrow button.
func ArrowHalf(up bool) models.RectShape {
	r := Arrow
	r.H /= 2
	if !up {
		r.Y += r.H
	}
	return r
}

// Bounds is the box around the body, the arrow button and the bowl.
func Bounds() models.RectShape {
	minX := min(Body.X, Arrow.X, Bowl.X)
	minY := min(Body.Y, Arrow.Y, Bowl.Y)
	maxX := max(Body.X+Body.W, Arrow.X+Arrow.W, Bowl.X+Bowl.W)
	maxY := max(Body.Y+Body.H, Arrow.Y+Arrow.H, Bowl.Y+Bowl.H)
	return models.RectShape{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Layout places the virtual layout in a window.
type Layout struct {
	OffsetX, OffsetY float32
}

// New centers the layout bounds in a width x height window.
func New(width, height int) Layout {
	b := Bounds()
	return Layout{
		OffsetX: (float32(width)-b.W)/2 - b.X,
		OffsetY: (float32(height)-b.H)/2 - b.Y,
	}
}

// Shift moves a layout rectangle into window pixels.
func (l Layout) Shift(r models.RectShape) models.RectShape {
	r.X += l.OffsetX
	r.Y += l.OffsetY
	return r
}

// ToWorld maps a window pixel to world space around the body center.
func (l Layout) ToWorld(px, py, z float32) mgl32.Vec3 {
	cx := l.OffsetX + Body.X + Body.W/2
	cy := l.OffsetY + Body.Y + Body.H/2
	return mgl32.Vec3{(px - cx) * ScaleX, (cy - py) * ScaleY, z}
}

func (l Layout) rectCenter(r models.RectShape, z float32) mgl32.Vec3 {
	r = l.Shift(r)
	return l.ToWorld(r.X+r.W/2, r.Y+r.H/2, z)
}

// PointInRect reports whether a layout rectangle, placed by l, contains the
// window pixel (x, y). Edges are inclusive.
func (l Layout) PointInRect(x, y float64, r models.RectShape) bool {
	r = l.Shift(r)
	fx, fy := float32(x), float32(y)
	return fx >= r.X && fx <= r.X+r.W && fy >= r.Y && fy <= r.Y+r.H
}

func (l Layout) PointInCircle(x, y float64, c models.CircleShape) bool {
	dx := float32(x) - (c.CX + l.OffsetX)
	dy := float32(y) - (c.CY + l.OffsetY)
	return dx*dx+dy*dy <= c.R*c.R
}

// LampCenter is the lamp disc center on the front panel.
func (l Layout) LampCenter() mgl32.Vec3 {
	return l.ToWorld(Lamp.CX+l.OffsetX, Lamp.CY+l.OffsetY, ControlZ)
}

// LampDiameter is the lamp disc diameter in world units.
func LampDiameter() float32 {
	return Lamp.R * 2 * ScaleX
}

// LampPickRadius is the radius of the pick sphere around the lamp.
func LampPickRadius() float32 {
	return LampDiameter() * 0.5
}

// Vent returns the vent bar center and size.
func (l Layout) Vent(openness float32) (mgl32.Vec3, mgl32.Vec3) {
	r := VentBar(openness)
	return l.rectCenter(r, PanelZ), mgl32.Vec3{r.W * ScaleX, r.H * ScaleY, VentDepth}
}

// Screen returns the center and size of screen i.
func (l Layout) Screen(i int) (mgl32.Vec3, mgl32.Vec3) {
	r := Screen(i)
	return l.rectCenter(r, PanelZ), mgl32.Vec3{r.W * ScaleX, r.H * ScaleY, PanelDepth}
}

// ArrowHalf returns the center and size of one arrow half.
func (l Layout) ArrowHalf(up bool) (mgl32.Vec3, mgl32.Vec3) {
	r := ArrowHalf(up)
	return l.rectCenter(r, ControlZ), mgl32.Vec3{r.W * ScaleX, r.H * ScaleY, ControlDepth * 2}
}

// ArrowPickBox returns the pick box corners of one arrow half.
func (l Layout) ArrowPickBox(up bool) (mgl32.Vec3, mgl32.Vec3) {
	c, size := l.ArrowHalf(up)
	half := mgl32.Vec3{size.X() / 2, size.Y() / 2, ControlDepth}
	return c.Sub(half), c.Add(half)
}

// BowlSize is the world size of the floor bowl.
func BowlSize() mgl32.Vec3 {
	return mgl32.Vec3{Bowl.W * ScaleX, Bowl.H * ScaleY * 0.5, BowlDepth}
}

// BowlWallThickness is the bowl wall thickness in world units.
func BowlWallThickness() float32 {
	return BowlThickness * ScaleY
}

// BowlInnerWidth is the width between the bowl's inner walls.
func BowlInnerWidth() float32 {
	return (Bowl.W - 2*BowlThickness) * ScaleX
}

// BowlCenter places the bowl on the floor below the unit.
func BowlCenter() mgl32.Vec3 {
	return mgl32.Vec3{0, -WorldHeight/2 - BowlSize().Y()/2 - BowlDrop, 0}
}

// BowlPickBox returns the pick box corners of the floor bowl.
func BowlPickBox() (mgl32.Vec3, mgl32.Vec3) {
	c := BowlCenter()
	half := BowlSize().Mul(0.5)
	return c.Sub(half), c.Add(half)
}

// BowlRimY is the height a droplet must fall to before it can land in the bowl.
func BowlRimY() float32 {
	return BowlCenter().Y() + BowlSize().Y()/2 - BowlWallThickness()
}

// BowlInnerRadius is the horizontal catch radius around the bowl center.
func BowlInnerRadius() float32 {
	return BowlInnerWidth() * 0.5
}

// LidHinge is the top-back edge of the body, where the lid pivots.
func LidHinge() mgl32.Vec3 {
	return mgl32.Vec3{0, WorldHeight / 2, -WorldDepth / 2}
}
