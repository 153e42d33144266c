package world

import (
	"fmt"

	"github.com/annel0/voxbuild/internal/vox"
)

const (
	// MaxCoord - максимальная координата вокселя внутри модели
	MaxCoord = 255
	// MaxPaletteIndex - максимальный индекс палитры вокселя (хранится как index+1)
	MaxPaletteIndex = 254
)

// Voxel - неизменяемый воксель: координаты 0..255 и индекс палитры.
// Индекс хранится со сдвигом +1, так как 0 в формате означает пустоту.
type Voxel struct {
	x, y, z uint8
	stored  uint8
}

// NewVoxel создаёт воксель с проверкой диапазонов
func NewVoxel(x, y, z, paletteIndex int) (Voxel, error) {
	for _, c := range []struct {
		axis  string
		value int
	}{{"x", x}, {"y", y}, {"z", z}} {
		if c.value < 0 || c.value > MaxCoord {
			return Voxel{}, fmt.Errorf("voxel %s=%d: %w", c.axis, c.value, vox.ErrInvalidIndex)
		}
	}
	if paletteIndex < 0 || paletteIndex > MaxPaletteIndex {
		return Voxel{}, fmt.Errorf("voxel palette index %d: %w", paletteIndex, vox.ErrInvalidIndex)
	}
	return Voxel{x: uint8(x), y: uint8(y), z: uint8(z), stored: uint8(paletteIndex + 1)}, nil
}

// MustVoxel как NewVoxel, но паникует при ошибке. Для литералов.
func MustVoxel(x, y, z, paletteIndex int) Voxel {
	v, err := NewVoxel(x, y, z, paletteIndex)
	if err != nil {
		panic(err)
	}
	return v
}

// X возвращает координату X
func (v Voxel) X() int { return int(v.x) }

// Y возвращает координату Y
func (v Voxel) Y() int { return int(v.y) }

// Z возвращает координату Z
func (v Voxel) Z() int { return int(v.z) }

// PaletteIndex возвращает индекс палитры, переданный при создании
func (v Voxel) PaletteIndex() int { return int(v.stored) - 1 }

// record возвращает запись XYZI
func (v Voxel) record() vox.Voxel {
	return vox.Voxel{X: v.x, Y: v.y, Z: v.z, Index: v.stored}
}

// Colour - RGB-цвет записи палитры
type Colour struct {
	R, G, B uint8
}
