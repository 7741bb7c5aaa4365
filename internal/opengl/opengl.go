// Package opengl is the scene renderer: it owns the GL programs, the shared
// unit-cube buffers, loaded meshes and textures, and the light state uploaded
// every frame.
package opengl

import (
	"log"

	"github.com/ThatOtherAndrew/acsim/internal/geometry"
	"github.com/ThatOtherAndrew/acsim/internal/shaders"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const defaultSceneIntensity float32 = 2.5

type Options struct {
	// ShaderDir, when set, is searched for shader files before the embedded
	// sources.
	ShaderDir string
	UseBlinn  bool
}

type light struct {
	position  mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
}

type gpuMesh struct {
	vao, vbo uint32
	count    int32
}

type Renderer struct {
	opts Options

	phong   uint32
	blinn   uint32
	overlay uint32

	cubeVAO, cubeVBO uint32
	quadVAO, quadVBO uint32
	whiteTex         uint32

	meshes []gpuMesh

	scene       light
	lamp        light
	lampEnabled bool
	loggedLight bool

	overlayW, overlayH int
}

func New(opts Options) *Renderer {
	return &Renderer{
		opts: opts,
		scene: light{
			position:  mgl32.Vec3{-350, 260, 40},
			color:     mgl32.Vec3{1, 0.95, 0.2},
			intensity: defaultSceneIntensity,
		},
	}
}

// InitGL loads the GL entry points and builds every program and buffer. Only
// a failure to load GL is returned; a program that fails to build is logged
// and the draws that need it become no-ops.
func (r *Renderer) InitGL() error {
	if err := gl.Init(); err != nil {
		return err
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	var err error
	r.phong, err = shaders.LoadProgram(r.opts.ShaderDir, shaders.PhongVertex, shaders.PhongFragment)
	if err != nil {
		log.Printf("Failed to create Phong program, scene drawing disabled: %v", err)
	}
	r.blinn, err = shaders.LoadProgram(r.opts.ShaderDir, shaders.PhongVertex, shaders.BlinnFragment)
	if err != nil {
		log.Printf("Warning: Blinn-Phong program unavailable: %v", err)
	}
	r.overlay, err = shaders.LoadProgram(r.opts.ShaderDir, shaders.OverlayVertex, shaders.OverlayFragment)
	if err != nil {
		log.Printf("Warning: overlay program unavailable, HUD disabled: %v", err)
	}

	r.initCube()
	r.initQuad()
	r.whiteTex = r.newTextureRGBA(1, 1, []byte{255, 255, 255, 255})

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.CullFace(gl.BACK)
	return nil
}

func (r *Renderer) initCube() {
	vertices := geometry.CubeVertices()

	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.GenBuffers(1, &r.cubeVBO)

	gl.BindVertexArray(r.cubeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	setMeshAttributes()
	gl.BindVertexArray(0)
}

// setMeshAttributes describes the interleaved position/normal/uv layout for
// the bound VAO.
func setMeshAttributes() {
	stride := int32(geometry.FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
}

func (r *Renderer) initQuad() {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)

	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)

	quadVertices := []float32{
		0.0, 0.0,
		1.0, 0.0,
		0.0, 1.0,
		1.0, 1.0,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
}

// lit is the program used for lit draws: Blinn-Phong when requested and
// available, Phong otherwise.
func (r *Renderer) lit() uint32 {
	if r.phong == 0 {
		return 0
	}
	if r.opts.UseBlinn && r.blinn != 0 {
		return r.blinn
	}
	return r.phong
}

// BeginFrame sets the viewport, clears, and applies the depth and cull
// toggles for the 3D pass.
func (r *Renderer) BeginFrame(width, height int, background mgl32.Vec3, depthTest, cull bool) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(background[0], background[1], background[2], 1)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.SetDepthTest(depthTest)
	r.SetCull(cull)
}

func (r *Renderer) SetDepthTest(enabled bool) {
	setEnabled(gl.DEPTH_TEST, enabled)
}

func (r *Renderer) SetCull(enabled bool) {
	setEnabled(gl.CULL_FACE, enabled)
}

func setEnabled(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// Close releases every GL object the renderer created.
func (r *Renderer) Close() {
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	r.meshes = nil
	gl.DeleteVertexArrays(1, &r.cubeVAO)
	gl.DeleteBuffers(1, &r.cubeVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
	gl.DeleteBuffers(1, &r.quadVBO)
	r.DeleteTexture(r.whiteTex)
	for _, p := range []*uint32{&r.phong, &r.blinn, &r.overlay} {
		if *p != 0 {
			gl.DeleteProgram(*p)
			*p = 0
		}
	}
}
