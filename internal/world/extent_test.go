package world

import (
	"testing"

	"github.com/annel0/voxbuild/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestExtentStartsDegenerate(t *testing.T) {
	var e Extent
	assert.Equal(t, "0, 0, 0, 0", e.String())
	assert.Equal(t, vec.Vec3{}, e.RootTranslation())
}

func TestExtentInclude(t *testing.T) {
	var e Extent
	e.Include(vec.Vec3{}, 9, 9)
	assert.Equal(t, "-4, 4, -4, 4", e.String())

	e.Include(vec.Vec3{X: 12, Y: 5, Z: 100}, 10, 10)
	assert.Equal(t, "-4, 17, -4, 10", e.String())
	assert.Equal(t, vec.Vec2{X: 6, Y: 3}, e.Centre())
	assert.Equal(t, vec.Vec3{X: -6, Y: -3}, e.RootTranslation())

	// отрицательные смещения только расширяют рамку
	e.Include(vec.Vec3{X: -30, Y: -1}, 1, 3)
	assert.Equal(t, "-30, 17, -4, 10", e.String())
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(5, 2))
	assert.Equal(t, -3, floorDiv(-5, 2))
	assert.Equal(t, -2, floorDiv(-4, 2))
	assert.Equal(t, 0, floorDiv(1, 2))
}
