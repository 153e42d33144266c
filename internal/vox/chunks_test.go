package vox

import (
	"encoding/binary"
	"testing"

	"github.com/annel0/voxbuild/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// header разбирает заголовок чанка: тег, размер содержимого, размер детей
func header(t *testing.T, b []byte) (string, int, int) {
	t.Helper()
	require.GreaterOrEqual(t, len(b), HeaderSize)
	return string(b[:4]),
		int(binary.LittleEndian.Uint32(b[4:8])),
		int(binary.LittleEndian.Uint32(b[8:12]))
}

func u32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

func i32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off : off+4]))
}

func TestSizeChunk(t *testing.T) {
	c, err := SizeChunk(10, 300, 1)
	require.NoError(t, err)

	b, err := c.Bytes()
	require.NoError(t, err)

	tag, content, children := header(t, b)
	assert.Equal(t, "SIZE", tag)
	assert.Equal(t, 12, content)
	assert.Equal(t, 0, children)
	assert.Equal(t, []byte{10, 0, 0, 0, 0x2c, 0x01, 0, 0, 1, 0, 0, 0}, b[12:])
}

func TestSizeChunkOverflow(t *testing.T) {
	_, err := SizeChunk(65536, 1, 1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = SizeChunk(1, -1, 1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = SizeChunk(65535, 65535, 65535)
	assert.NoError(t, err)
}

func TestXYZIChunk(t *testing.T) {
	for _, n := range []int{1, 2, 17} {
		voxels := make([]Voxel, n)
		for i := range voxels {
			voxels[i] = Voxel{X: uint8(i), Y: 1, Z: 2, Index: 3}
		}
		c, err := XYZIChunk(voxels)
		require.NoError(t, err)

		b, err := c.Bytes()
		require.NoError(t, err)

		tag, content, _ := header(t, b)
		assert.Equal(t, "XYZI", tag)
		assert.Equal(t, 4+4*n, content)
		assert.Len(t, b, 12+4+4*n)
		assert.Equal(t, uint32(n), u32(b, 12))
		assert.Equal(t, []byte{byte(n - 1), 1, 2, 3}, b[len(b)-4:])
	}
}

func TestTransformChunk(t *testing.T) {
	c, err := TransformChunk(TransformNode{
		NodeID:      2,
		ChildID:     3,
		LayerID:     0,
		Translation: vec.Vec3{X: 12, Y: -5, Z: 7},
	})
	require.NoError(t, err)

	b, err := c.Bytes()
	require.NoError(t, err)

	tag, content, children := header(t, b)
	assert.Equal(t, "nTRN", tag)
	assert.Equal(t, 0, children)
	assert.Equal(t, len(b)-HeaderSize, content)

	body := b[HeaderSize:]
	assert.Equal(t, int32(2), i32(body, 0))
	assert.Equal(t, uint32(0), u32(body, 4))
	assert.Equal(t, int32(3), i32(body, 8))
	assert.Equal(t, int32(-1), i32(body, 12))
	assert.Equal(t, int32(0), i32(body, 16))
	assert.Equal(t, uint32(1), u32(body, 20))

	frame, err := AppendDict(nil, NewDict().Set("_t", "12 -5 7"))
	require.NoError(t, err)
	assert.Equal(t, frame, body[24:])
	assert.Equal(t, 24+len(frame), content)
}

func TestTransformChunkRootLayer(t *testing.T) {
	c, err := TransformChunk(TransformNode{NodeID: 0, ChildID: 1, LayerID: NoLayer})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, c.Content[16:20])
}

func TestShapeChunk(t *testing.T) {
	c, err := ShapeChunk(3, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, c.ContentSize())
	assert.Equal(t, []byte{
		3, 0, 0, 0,
		0, 0, 0, 0,
		1, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, c.Content)
}

func TestGroupChunk(t *testing.T) {
	c, err := GroupChunk(1, []int{2, 4, 6})
	require.NoError(t, err)
	assert.Equal(t, 12+4*3, c.ContentSize())
	assert.Equal(t, uint32(3), u32(c.Content, 8))
	assert.Equal(t, int32(6), i32(c.Content, 20))
}

func TestMaterialChunk(t *testing.T) {
	props := NewDict().Set("_type", "_glass").Set("_trans", "0.5")
	c, err := MaterialChunk(1, props)
	require.NoError(t, err)

	dict, err := AppendDict(nil, props)
	require.NoError(t, err)
	assert.Equal(t, append([]byte{1, 0, 0, 0}, dict...), c.Content)

	_, err = MaterialChunk(256, props)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestPaletteChunk(t *testing.T) {
	p := NewPalette()
	require.NoError(t, p.Set(0, 128, 0, 0))
	require.NoError(t, p.Set(255, 1, 2, 3))
	assert.ErrorIs(t, p.Set(256, 0, 0, 0), ErrInvalidIndex)
	assert.ErrorIs(t, p.Set(-1, 0, 0, 0), ErrInvalidIndex)

	c := PaletteChunk(p)
	assert.Equal(t, 1024, c.ContentSize())
	assert.Equal(t, []byte{128, 0, 0, 255}, c.Content[:4])
	assert.Equal(t, []byte{75, 75, 75, 255}, c.Content[4:8])
	assert.Equal(t, []byte{1, 2, 3, 255}, c.Content[1020:])
}

func TestNoteChunk(t *testing.T) {
	var n Notes
	require.NoError(t, n.Set(0, "Note"))
	require.NoError(t, n.Set(31, "top"))
	assert.ErrorIs(t, n.Set(32, "x"), ErrInvalidIndex)
	assert.ErrorIs(t, n.Set(1, "ä"), ErrNonASCII)
	assert.Equal(t, 2, n.Count())

	c, err := NoteChunk(&n)
	require.NoError(t, err)
	assert.Equal(t, 4+32*4+len("Note")+len("top"), c.ContentSize())
	assert.Equal(t, uint32(32), u32(c.Content, 0))

	// строка 31 идёт первой, строка 0 - последней
	assert.Equal(t, uint32(3), u32(c.Content, 4))
	assert.Equal(t, "top", string(c.Content[8:11]))
	assert.Equal(t, "Note", string(c.Content[len(c.Content)-4:]))
}

func TestMainChunkSizes(t *testing.T) {
	size, err := SizeChunk(1, 1, 1)
	require.NoError(t, err)
	xyzi, err := XYZIChunk([]Voxel{{Index: 1}})
	require.NoError(t, err)
	pal := PaletteChunk(NewPalette())

	main := MainChunk(size, xyzi, pal)
	b, err := main.Bytes()
	require.NoError(t, err)

	tag, content, children := header(t, b)
	assert.Equal(t, "MAIN", tag)
	assert.Equal(t, 0, content)
	assert.Equal(t, size.Size()+xyzi.Size()+pal.Size(), children)
	assert.Equal(t, HeaderSize+children, len(b))
	assert.Equal(t, main.Size(), len(b))
}
