package opengl

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// NewTexture uploads img as an RGBA texture and returns its handle.
func (r *Renderer) NewTexture(img image.Image) uint32 {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Dx()*4 || rgba.Rect.Min != (image.Point{}) {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return r.newTextureRGBA(rgba.Rect.Dx(), rgba.Rect.Dy(), rgba.Pix)
}

func (r *Renderer) newTextureRGBA(width, height int, pix []byte) uint32 {
	if width <= 0 || height <= 0 || len(pix) < width*height*4 {
		return 0
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (r *Renderer) DeleteTexture(tex uint32) {
	if tex != 0 {
		gl.DeleteTextures(1, &tex)
	}
}

// CircleMaskTexture returns a size x size white disc on a transparent
// background, used to round the lamp.
func (r *Renderer) CircleMaskTexture(size int) uint32 {
	return r.NewTexture(CircleMask(size))
}

// CircleMask is a white disc of radius 0.45*size.
func CircleMask(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float32(size) / 2
	radius := float32(size) * 0.45
	for y := range size {
		for x := range size {
			d := mgl32.Vec2{float32(x) + 0.5 - c, float32(y) + 0.5 - c}.Len()
			if d <= radius {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}

// BeginOverlay switches to the 2D pass: depth test and culling off.
func (r *Renderer) BeginOverlay(width, height int) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	r.overlayW, r.overlayH = width, height
}

// DrawOverlay draws tex as a window-space rectangle with its top-left corner
// at (x, y) pixels.
func (r *Renderer) DrawOverlay(tex uint32, x, y, w, h float32, tint mgl32.Vec4) {
	if r.overlay == 0 || tex == 0 || r.overlayW <= 0 || r.overlayH <= 0 {
		return
	}
	p := r.overlay
	gl.UseProgram(p)
	if loc := uniform(p, "rect"); loc >= 0 {
		gl.Uniform4f(loc, x, y, w, h)
	}
	if loc := uniform(p, "resolution"); loc >= 0 {
		gl.Uniform2f(loc, float32(r.overlayW), float32(r.overlayH))
	}
	if loc := uniform(p, "tint"); loc >= 0 {
		gl.Uniform4f(loc, tint[0], tint[1], tint[2], tint[3])
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	setInt(p, "tex", 0)

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}
