package world

import (
	"fmt"

	"github.com/annel0/voxbuild/internal/vec"
)

// Extent - накопленная ограничивающая рамка сцены в плоскости XY,
// в координатах смещений фигур. Начинается с вырожденной рамки в начале координат.
type Extent struct {
	Min vec.Vec2
	Max vec.Vec2
}

// Include расширяет рамку следом фигуры: offset ± половина размера (целочисленно)
func (e *Extent) Include(offset vec.Vec3, width, length int) {
	half := vec.Vec2{X: floorDiv(width, 2), Y: floorDiv(length, 2)}
	centre := offset.ToVec2()
	e.Min = e.Min.Min(centre.Sub(half))
	e.Max = e.Max.Max(centre.Add(half))
}

// Centre возвращает середину рамки (целочисленно, с округлением вниз)
func (e Extent) Centre() vec.Vec2 {
	span := e.Max.Sub(e.Min)
	return vec.Vec2{
		X: e.Min.X + floorDiv(span.X, 2),
		Y: e.Min.Y + floorDiv(span.Y, 2),
	}
}

// RootTranslation возвращает смещение корневого трансформа,
// переносящее середину рамки в начало координат. Z не центрируется.
func (e Extent) RootTranslation() vec.Vec3 {
	c := e.Centre()
	return vec.Vec3{X: -c.X, Y: -c.Y, Z: 0}
}

// String возвращает "xMin, xMax, yMin, yMax"
func (e Extent) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", e.Min.X, e.Max.X, e.Min.Y, e.Max.Y)
}

// floorDiv делит с округлением к минус бесконечности
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
