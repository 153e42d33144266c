package world

import (
	"fmt"
	"math"

	"github.com/annel0/voxbuild/internal/util"
	"github.com/annel0/voxbuild/internal/vec"
)

// Sphere возвращает воксели, центр которых ближе radius к centre.
// Обход z→y→x внутри описанного куба, обрезанного по нулю.
func Sphere(centre vec.Vec3, radius float64, paletteIndex int) ([]Voxel, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius %v must be positive", radius)
	}
	r := int(math.Ceil(radius))
	c := centre.ToFloat()

	var voxels []Voxel
	for z := max(0, centre.Z-r); z <= centre.Z+r; z++ {
		for y := max(0, centre.Y-r); y <= centre.Y+r; y++ {
			for x := max(0, centre.X-r); x <= centre.X+r; x++ {
				p := vec.Vec3{X: x, Y: y, Z: z}.ToFloat()
				if p.DistanceTo(c) >= radius {
					continue
				}
				v, err := NewVoxel(x, y, z, paletteIndex)
				if err != nil {
					return nil, fmt.Errorf("sphere: %w", err)
				}
				voxels = append(voxels, v)
			}
		}
	}
	return voxels, nil
}

// Box возвращает сплошной параллелепипед от начала координат, обход z→y→x
func Box(width, length, height, paletteIndex int) ([]Voxel, error) {
	voxels := make([]Voxel, 0, max(0, width*length*height))
	for z := 0; z < height; z++ {
		for y := 0; y < length; y++ {
			for x := 0; x < width; x++ {
				v, err := NewVoxel(x, y, z, paletteIndex)
				if err != nil {
					return nil, fmt.Errorf("box: %w", err)
				}
				voxels = append(voxels, v)
			}
		}
	}
	return voxels, nil
}

// Пороги нормированной высоты для полос ландшафта
const (
	DeepWaterMax    = 0.20 // Ниже - глубинная вода
	ShallowWaterMax = 0.30 // Ниже - мелководье
	GrassMax        = 0.60 // Ниже - трава
	HillsMax        = 0.80 // Ниже - холмы, выше горы
)

// TerrainPalette - индексы палитры для полос ландшафта
type TerrainPalette struct {
	DeepWater int
	Water     int
	Grass     int
	Hills     int
	Mountain  int
}

// DefaultTerrainPalette - индексы по умолчанию, сразу после цветов примера
var DefaultTerrainPalette = TerrainPalette{
	DeepWater: 2,
	Water:     3,
	Grass:     4,
	Hills:     5,
	Mountain:  6,
}

// TerrainGenerator генерирует карту высот из шума Перлина
type TerrainGenerator struct {
	Seed       int64   // Сид для генерации шума
	NoiseScale float64 // Масштаб шума (сглаженность ландшафта)
	MaxHeight  int     // Максимальная высота столбца
	Palette    TerrainPalette

	noise *util.Noise
}

// NewTerrainGenerator создаёт генератор с настройками по умолчанию
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{
		Seed:       seed,
		NoiseScale: 0.05,
		MaxHeight:  32,
		Palette:    DefaultTerrainPalette,
		noise:      util.NewNoise(seed),
	}
}

// Generate возвращает столбцы ландшафта width×length. Каждый воксель
// окрашивается по полосе своей нормированной высоты.
func (tg *TerrainGenerator) Generate(width, length int) ([]Voxel, error) {
	if width <= 0 || length <= 0 || tg.MaxHeight <= 0 {
		return nil, fmt.Errorf("terrain %dx%dx%d: dimensions must be positive", width, length, tg.MaxHeight)
	}
	if tg.noise == nil || tg.noise.Seed() != tg.Seed {
		tg.noise = util.NewNoise(tg.Seed)
	}

	var voxels []Voxel
	for y := 0; y < length; y++ {
		for x := 0; x < width; x++ {
			// Координаты для шума (масштабированные)
			p := vec.FromVec2(vec.Vec2{X: x, Y: y}).Mul(tg.NoiseScale)
			h := tg.noise.Noise2D(p.X, p.Y)

			column := 1 + int(h*float64(tg.MaxHeight-1))
			for z := 0; z < column; z++ {
				index := tg.bandIndex(float64(z+1) / float64(tg.MaxHeight))
				v, err := NewVoxel(x, y, z, index)
				if err != nil {
					return nil, fmt.Errorf("terrain: %w", err)
				}
				voxels = append(voxels, v)
			}
		}
	}
	return voxels, nil
}

// bandIndex возвращает индекс палитры для нормированной высоты
func (tg *TerrainGenerator) bandIndex(height float64) int {
	switch {
	case height < DeepWaterMax:
		return tg.Palette.DeepWater
	case height < ShallowWaterMax:
		return tg.Palette.Water
	case height < GrassMax:
		return tg.Palette.Grass
	case height < HillsMax:
		return tg.Palette.Hills
	default:
		return tg.Palette.Mountain
	}
}
