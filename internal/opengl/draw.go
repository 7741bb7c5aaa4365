package opengl

import (
	"log"

	"github.com/ThatOtherAndrew/acsim/internal/geometry"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	markerScale = mgl32.Vec3{120, 50, 40}
	markerColor = mgl32.Vec3{1, 1, 0}
)

type material struct {
	color     mgl32.Vec3
	specular  float32
	shininess float32
	alpha     float32
	texture   uint32
	flipV     bool
}

// Missing uniforms are skipped: program variants may legitimately omit some.
func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func setMat4(program uint32, name string, m mgl32.Mat4) {
	if loc := uniform(program, name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func setVec3(program uint32, name string, v mgl32.Vec3) {
	if loc := uniform(program, name); loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func setFloat(program uint32, name string, v float32) {
	if loc := uniform(program, name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

func setInt(program uint32, name string, v int32) {
	if loc := uniform(program, name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (r *Renderer) bindMaterial(program uint32, model mgl32.Mat4, m material) {
	gl.UseProgram(program)
	setMat4(program, "model", model)
	setVec3(program, "materialDiffuse", m.color)
	setFloat(program, "materialSpecular", m.specular)
	setFloat(program, "shininess", m.shininess)
	setFloat(program, "uAlpha", m.alpha)
	setInt(program, "flipV", boolInt(m.flipV))

	tex := m.texture
	if tex == 0 {
		tex = r.whiteTex
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	setInt(program, "tex", 0)
}

func (r *Renderer) drawCubeWith(model mgl32.Mat4, m material) {
	program := r.lit()
	if program == 0 {
		return
	}
	r.bindMaterial(program, model, m)
	gl.BindVertexArray(r.cubeVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, geometry.CubeVertexCount)
	gl.BindVertexArray(0)
}

func (r *Renderer) DrawCube(model mgl32.Mat4, color mgl32.Vec3) {
	r.drawCubeWith(model, material{color: color, specular: 0.3, shininess: 32, alpha: 1})
}

// DrawTexturedCube samples texture on every face, flipped vertically so
// images stored top row first read upright, and tints it with color.
func (r *Renderer) DrawTexturedCube(model mgl32.Mat4, texture uint32, color mgl32.Vec3) {
	r.drawCubeWith(model, material{color: color, specular: 0.2, shininess: 8, alpha: 1, texture: texture, flipV: true})
}

// DrawParticle draws a translucent cube without writing depth so particles
// behind it stay visible.
func (r *Renderer) DrawParticle(model mgl32.Mat4, color mgl32.Vec3, alpha float32) {
	gl.DepthMask(false)
	r.drawCubeWith(model, material{color: color, specular: 0.2, shininess: 8, alpha: alpha})
	gl.DepthMask(true)
}

func (r *Renderer) drawParts(parts []geometry.Part) {
	for _, p := range parts {
		r.DrawCube(p.Model, p.Color)
	}
}

func (r *Renderer) DrawHollowBoxAt(center mgl32.Vec3, width, height, depth, thickness float32, color mgl32.Vec3) {
	r.drawParts(geometry.HollowBox(center, width, height, depth, thickness, color))
}

func (r *Renderer) DrawHollowCylinderAt(center mgl32.Vec3, radius, height, thickness float32, segments int, color mgl32.Vec3) {
	r.drawParts(geometry.HollowCylinder(center, radius, height, thickness, segments, color))
}

// DrawModel draws a mesh returned by LoadOBJModel. Unknown ids are ignored.
func (r *Renderer) DrawModel(id int, model mgl32.Mat4, color mgl32.Vec3) {
	program := r.lit()
	if program == 0 || id < 0 || id >= len(r.meshes) {
		return
	}
	m := r.meshes[id]
	r.bindMaterial(program, model, material{color: color, specular: 0.3, shininess: 32, alpha: 1})
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	gl.BindVertexArray(0)
}

// Render draws the scene-light marker on top of everything drawn so far.
func (r *Renderer) Render() {
	if r.lit() == 0 {
		return
	}
	if !r.loggedLight {
		log.Printf("Scene light at (%.1f, %.1f, %.1f) intensity %.2f",
			r.scene.position[0], r.scene.position[1], r.scene.position[2], r.scene.intensity)
		r.loggedLight = true
	}

	depthWasOn := gl.IsEnabled(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.Disable(gl.DEPTH_TEST)

	model := mgl32.Translate3D(r.scene.position[0], r.scene.position[1], r.scene.position[2]).
		Mul4(mgl32.Scale3D(markerScale[0], markerScale[1], markerScale[2]))
	r.DrawCube(model, markerColor)

	gl.DepthMask(true)
	if depthWasOn {
		gl.Enable(gl.DEPTH_TEST)
	}
}
