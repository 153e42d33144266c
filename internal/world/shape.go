package world

import (
	"fmt"

	"github.com/annel0/voxbuild/internal/vec"
	"github.com/annel0/voxbuild/internal/vox"
)

// Shape - упорядоченный список вокселей и смещение размещения
type Shape struct {
	Voxels []Voxel
	Offset vec.Vec3
}

// Dimensions возвращает ширину, длину и высоту: максимум координаты по оси + 1
func (s Shape) Dimensions() (width, length, height int) {
	for _, v := range s.Voxels {
		width = max(width, v.X()+1)
		length = max(length, v.Y()+1)
		height = max(height, v.Z()+1)
	}
	return width, length, height
}

// builtShape - скомпилированная фигура: четыре чанка и пара узлов.
// Узел трансформа всегда непосредственно предшествует узлу фигуры.
type builtShape struct {
	modelID     int
	transformID int
	shapeID     int

	width, length, height int
	voxels                int
	offset                vec.Vec3

	size      vox.Chunk
	xyzi      vox.Chunk
	transform vox.Chunk
	shape     vox.Chunk
}

// compileShape собирает чанки фигуры. Состояние сцены не меняется.
func compileShape(s Shape, modelID, transformID int) (builtShape, error) {
	if len(s.Voxels) == 0 {
		return builtShape{}, fmt.Errorf("shape %d: %w", modelID, vox.ErrEmptyShape)
	}

	width, length, height := s.Dimensions()
	size, err := vox.SizeChunk(width, length, height)
	if err != nil {
		return builtShape{}, fmt.Errorf("shape %d: %w", modelID, err)
	}

	records := make([]vox.Voxel, len(s.Voxels))
	for i, v := range s.Voxels {
		records[i] = v.record()
	}
	xyzi, err := vox.XYZIChunk(records)
	if err != nil {
		return builtShape{}, fmt.Errorf("shape %d: %w", modelID, err)
	}

	shapeID := transformID + 1

	// Модель позиционируется по центру, поэтому поднимаем её на половину высоты,
	// чтобы основание оказалось на offset.Z.
	transform, err := vox.TransformChunk(vox.TransformNode{
		NodeID:      transformID,
		ChildID:     shapeID,
		LayerID:     0,
		Translation: s.Offset.Add(vec.Vec3{Z: floorDiv(height, 2)}),
	})
	if err != nil {
		return builtShape{}, fmt.Errorf("shape %d: %w", modelID, err)
	}

	shape, err := vox.ShapeChunk(shapeID, modelID)
	if err != nil {
		return builtShape{}, fmt.Errorf("shape %d: %w", modelID, err)
	}

	return builtShape{
		modelID:     modelID,
		transformID: transformID,
		shapeID:     shapeID,
		width:       width,
		length:      length,
		height:      height,
		voxels:      len(s.Voxels),
		offset:      s.Offset,
		size:        size,
		xyzi:        xyzi,
		transform:   transform,
		shape:       shape,
	}, nil
}
