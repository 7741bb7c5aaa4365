package shaders

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

//go:embed glsl/*.glsl
var sources embed.FS

const (
	PhongVertex     = "phong.vert.glsl"
	PhongFragment   = "phong.frag.glsl"
	BlinnFragment   = "blinn.frag.glsl"
	OverlayVertex   = "overlay.vert.glsl"
	OverlayFragment = "overlay.frag.glsl"
)

// Source returns the named shader. A file of the same name in overrideDir
// takes precedence over the embedded copy.
func Source(overrideDir, name string) (string, error) {
	if overrideDir != "" {
		data, err := os.ReadFile(filepath.Join(overrideDir, name))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read shader file %q: %w", name, err)
		}
	}
	data, err := sources.ReadFile("glsl/" + name)
	if err != nil {
		return "", fmt.Errorf("unknown shader %q: %w", name, err)
	}
	return string(data), nil
}

func CompileShaderFromSource(source string, shaderType uint32) (uint32, error) {
	if !strings.HasSuffix(source, "\x00") {
		source += "\x00"
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &logMsg[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %s", strings.TrimRight(string(logMsg), "\x00\n"))
	}

	return shader, nil
}

// NewProgram compiles and links a vertex/fragment pair. The shaders are
// released once linked.
func NewProgram(vertexSource, fragmentSource string) (uint32, error) {
	vert, err := CompileShaderFromSource(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := CompileShaderFromSource(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &logMsg[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %s", strings.TrimRight(string(logMsg), "\x00\n"))
	}

	gl.DetachShader(program, vert)
	gl.DetachShader(program, frag)
	return program, nil
}

// LoadProgram resolves both sources with Source and links them.
func LoadProgram(overrideDir, vertexName, fragmentName string) (uint32, error) {
	vs, err := Source(overrideDir, vertexName)
	if err != nil {
		return 0, err
	}
	fs, err := Source(overrideDir, fragmentName)
	if err != nil {
		return 0, err
	}
	program, err := NewProgram(vs, fs)
	if err != nil {
		return 0, fmt.Errorf("%s + %s: %w", vertexName, fragmentName, err)
	}
	return program, nil
}
