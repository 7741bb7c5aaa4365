// Package text rasterizes short strings into RGBA images for upload as
// textures: temperature digits on the front screens and HUD labels.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Rasterizer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New parses the embedded Go Mono font.
func New() (*Rasterizer, error) {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Rasterizer{font: f, faces: make(map[float64]font.Face)}, nil
}

func (r *Rasterizer) face(size float64) (font.Face, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	r.faces[size] = f
	return f, nil
}

// Measure returns the pixel width and line height of s at the given size.
func (r *Rasterizer) Measure(s string, size float64) (int, int, error) {
	face, err := r.face(size)
	if err != nil {
		return 0, 0, err
	}
	m := face.Metrics()
	return font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil(), nil
}

// Render draws s in fg over a bg background with padding pixels on every
// side. Row 0 of the image is the top of the text.
func (r *Rasterizer) Render(s string, fg, bg color.Color, padding int, size float64) (*image.RGBA, error) {
	face, err := r.face(size)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil() + 2*padding
	h := (m.Ascent+m.Descent).Ceil() + 2*padding

	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(padding), Y: fixed.I(padding) + m.Ascent},
	}
	d.DrawString(s)
	return img, nil
}

func (r *Rasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for size, f := range r.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.faces, size)
	}
	return firstErr
}
