package vox

import (
	"fmt"

	"github.com/annel0/voxbuild/internal/vec"
)

// Voxel - запись XYZI: координаты и сохранённый индекс палитры (1..255, 0 - пусто)
type Voxel struct {
	X, Y, Z, Index uint8
}

// Константы узлов сцены
const (
	// reservedNode пишется в nTRN между дочерним узлом и слоем
	reservedNode int32 = -1
	// NoLayer - слой корневого трансформа
	NoLayer = -1
	// TranslationKey - ключ смещения в словаре кадра nTRN
	TranslationKey = "_t"
)

// TransformNode описывает чанк nTRN с одним кадром
type TransformNode struct {
	NodeID      int
	ChildID     int
	LayerID     int
	Translation vec.Vec3
}

// SizeChunk собирает SIZE: три размера по 2 байта, дополненные нулями до 4.
func SizeChunk(width, length, height int) (Chunk, error) {
	content := make([]byte, 0, 12)
	for _, dim := range []struct {
		name  string
		value int
	}{{"width", width}, {"length", length}, {"height", height}} {
		v, err := checkUint16("SIZE "+dim.name, dim.value)
		if err != nil {
			return Chunk{}, err
		}
		content = append(content, byte(v), byte(v>>8), 0, 0)
	}
	return Chunk{Tag: TagSize, Content: content}, nil
}

// XYZIChunk собирает XYZI: число вокселей и по 4 байта на воксель
func XYZIChunk(voxels []Voxel) (Chunk, error) {
	count, err := checkUint32("XYZI count", len(voxels))
	if err != nil {
		return Chunk{}, err
	}
	content := make([]byte, 0, 4+4*len(voxels))
	content = AppendUint32(content, count)
	for _, v := range voxels {
		content = append(content, v.X, v.Y, v.Z, v.Index)
	}
	return Chunk{Tag: TagXYZI, Content: content}, nil
}

// TransformChunk собирает nTRN с пустыми атрибутами и одним кадром {_t: "x y z"}
func TransformChunk(n TransformNode) (Chunk, error) {
	ids := make([]int32, 0, 3)
	for _, f := range []struct {
		name  string
		value int
	}{{"nTRN node id", n.NodeID}, {"nTRN child id", n.ChildID}, {"nTRN layer id", n.LayerID}} {
		v, err := checkInt32(f.name, f.value)
		if err != nil {
			return Chunk{}, err
		}
		ids = append(ids, v)
	}

	content := make([]byte, 0, 48)
	content = AppendInt32(content, ids[0])
	content, _ = AppendDict(content, nil)
	content = AppendInt32(content, ids[1])
	content = AppendInt32(content, reservedNode)
	content = AppendInt32(content, ids[2])
	content = AppendUint32(content, 1) // число кадров

	frame := NewDict().Set(TranslationKey, FormatTranslation(n.Translation))
	content, err := AppendDict(content, frame)
	if err != nil {
		return Chunk{}, fmt.Errorf("nTRN %d frame: %w", n.NodeID, err)
	}
	return Chunk{Tag: TagTransform, Content: content}, nil
}

// FormatTranslation форматирует смещение как "x y z"
func FormatTranslation(t vec.Vec3) string {
	return fmt.Sprintf("%d %d %d", t.X, t.Y, t.Z)
}

// ShapeChunk собирает nSHP, ссылающийся на одну модель
func ShapeChunk(nodeID, modelID int) (Chunk, error) {
	node, err := checkInt32("nSHP node id", nodeID)
	if err != nil {
		return Chunk{}, err
	}
	model, err := checkInt32("nSHP model id", modelID)
	if err != nil {
		return Chunk{}, err
	}

	content := make([]byte, 0, 20)
	content = AppendInt32(content, node)
	content, _ = AppendDict(content, nil)
	content = AppendUint32(content, 1) // число моделей
	content = AppendInt32(content, model)
	content, _ = AppendDict(content, nil)
	return Chunk{Tag: TagShape, Content: content}, nil
}

// GroupChunk собирает nGRP со списком дочерних узлов
func GroupChunk(nodeID int, children []int) (Chunk, error) {
	node, err := checkInt32("nGRP node id", nodeID)
	if err != nil {
		return Chunk{}, err
	}
	count, err := checkUint32("nGRP child count", len(children))
	if err != nil {
		return Chunk{}, err
	}

	content := make([]byte, 0, 12+4*len(children))
	content = AppendInt32(content, node)
	content, _ = AppendDict(content, nil)
	content = AppendUint32(content, count)
	for _, id := range children {
		child, err := checkInt32("nGRP child id", id)
		if err != nil {
			return Chunk{}, err
		}
		content = AppendInt32(content, child)
	}
	return Chunk{Tag: TagGroup, Content: content}, nil
}

// MaterialChunk собирает MATL: номер слота (1 байт + 3 нулевых) и словарь свойств
func MaterialChunk(slot int, properties *Dict) (Chunk, error) {
	if slot < 0 || slot >= PaletteSize {
		return Chunk{}, fmt.Errorf("material slot %d: %w", slot, ErrInvalidIndex)
	}
	content := make([]byte, 0, 8)
	content = append(content, byte(slot), 0, 0, 0)
	content, err := AppendDict(content, properties)
	if err != nil {
		return Chunk{}, fmt.Errorf("MATL %d: %w", slot, err)
	}
	return Chunk{Tag: TagMaterial, Content: content}, nil
}

// PaletteChunk собирает RGBA: ровно 256 записей по 4 байта
func PaletteChunk(p *Palette) Chunk {
	content := make([]byte, 0, 4*PaletteSize)
	for _, c := range p.entries {
		content = append(content, c.R, c.G, c.B, c.A)
	}
	return Chunk{Tag: TagPalette, Content: content}
}

// NoteChunk собирает NOTE: 32 строки от 31-й к 0-й
func NoteChunk(n *Notes) (Chunk, error) {
	content := AppendUint32(nil, NoteRows)
	var err error
	for row := NoteRows - 1; row >= 0; row-- {
		if content, err = AppendString(content, n.rows[row]); err != nil {
			return Chunk{}, fmt.Errorf("NOTE row %d: %w", row, err)
		}
	}
	return Chunk{Tag: TagNote, Content: content}, nil
}

// MainChunk собирает корневой MAIN: без содержимого, только дети
func MainChunk(children ...Chunk) Chunk {
	return Chunk{Tag: TagMain, Children: children}
}
