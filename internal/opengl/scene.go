package opengl

import (
	"log"

	"github.com/ThatOtherAndrew/acsim/internal/mesh"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SetViewProjection uploads the camera matrices, eye position and both
// lights to every lit program. Call it once per frame before drawing.
func (r *Renderer) SetViewProjection(view, projection mgl32.Mat4) {
	eye := view.Inv().Col(3).Vec3()
	for _, program := range []uint32{r.phong, r.blinn} {
		if program == 0 {
			continue
		}
		gl.UseProgram(program)
		setMat4(program, "view", view)
		setMat4(program, "projection", projection)
		setVec3(program, "viewPos", eye)

		setVec3(program, "light.position", r.scene.position)
		setVec3(program, "light.color", r.scene.color)
		setFloat(program, "light.intensity", r.scene.intensity)

		setVec3(program, "lampLight.position", r.lamp.position)
		setVec3(program, "lampLight.color", r.lamp.color)
		setFloat(program, "lampLight.intensity", r.lamp.intensity)
		setInt(program, "lampEnabled", boolInt(r.lampEnabled))
	}
}

// SetLampLight takes effect on the next SetViewProjection.
func (r *Renderer) SetLampLight(position, color mgl32.Vec3, intensity float32, enabled bool) {
	r.lamp = light{position: position, color: color, intensity: intensity}
	r.lampEnabled = enabled
}

// SetSceneLight takes effect on the next SetViewProjection. A non-positive
// intensity selects the default.
func (r *Renderer) SetSceneLight(position, color mgl32.Vec3, intensity float32) {
	if intensity <= 0 {
		intensity = defaultSceneIntensity
	}
	r.scene = light{position: position, color: color, intensity: intensity}
}

// LoadOBJModel uploads the mesh at path and returns its id, or -1.
func (r *Renderer) LoadOBJModel(path string) int {
	m, err := mesh.Load(path)
	if err != nil {
		log.Printf("Failed to load model %s: %v", path, err)
		return -1
	}
	log.Printf("Loaded model %s (%d vertices)", path, m.VertexCount())
	return r.upload(m)
}

// LoadFirstModel loads the first readable mesh among paths and returns its
// id, or -1 when none load.
func (r *Renderer) LoadFirstModel(paths []string) int {
	for _, p := range paths {
		if id := r.LoadOBJModel(p); id >= 0 {
			return id
		}
	}
	log.Printf("No model loaded, using fallback geometry")
	return -1
}

func (r *Renderer) upload(m *mesh.Mesh) int {
	var g gpuMesh
	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)

	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	setMeshAttributes()
	gl.BindVertexArray(0)

	g.count = int32(m.VertexCount())
	r.meshes = append(r.meshes, g)
	return len(r.meshes) - 1
}
