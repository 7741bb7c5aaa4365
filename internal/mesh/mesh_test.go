package mesh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertex(m *Mesh, i int) []float32 {
	return m.Vertices[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
}

func TestParseTriangle(t *testing.T) {
	src := `# a triangle
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
`
	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 3, m.VertexCount())

	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1, 1, 0}, vertex(m, 1))
	assert.Equal(t, []float32{0, 1, 0, 0, 0, 1, 0, 1}, vertex(m, 2))
}

func TestParseQuadIsFanned(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 6, m.VertexCount())

	order := []float32{}
	for i := range 6 {
		v := vertex(m, i)
		order = append(order, v[0], v[1])
	}
	// (a,b,c) then (a,c,d)
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}, order)
}

func TestParseNegativeAndMissingRefs(t *testing.T) {
	src := `v 5 5 5
v 1 0 0
v 0 1 0
v 0 0 1
vn 0 1 0
f -3//-1 -2//-1 -1//-1
f 1/9/9 2 99
`
	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 6, m.VertexCount())

	assert.Equal(t, []float32{1, 0, 0, 0, 1, 0, 0, 0}, vertex(m, 0))
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 0, 0, 0}, vertex(m, 2))

	// Out-of-range texture and normal refs fall back to zero.
	assert.Equal(t, []float32{5, 5, 5, 0, 0, 0, 0, 0}, vertex(m, 3))
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0, 0, 0}, vertex(m, 5))
}

func TestParseIgnoresExtraVerticesAndJunk(t *testing.T) {
	src := `o thing
usemtl none
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 2 2 2
f 1 2 3 4 5
f 1 2
`
	m, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 6, m.VertexCount())
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("v 0 0 0\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "tri.obj")
	require.NoError(t, os.WriteFile(good, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644))

	m, err := Load(good)
	require.NoError(t, err)
	assert.Equal(t, 3, m.VertexCount())

	_, err = Load(filepath.Join(dir, "missing.obj"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.obj")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0644))
	_, err = Load(empty)
	assert.ErrorIs(t, err, ErrEmpty)
}
