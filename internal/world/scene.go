package world

import (
	"fmt"
	"io"

	"cogentcore.org/core/base/ordmap"

	"github.com/annel0/voxbuild/internal/storage"
	"github.com/annel0/voxbuild/internal/vec"
	"github.com/annel0/voxbuild/internal/vox"
)

// Зарезервированные идентификаторы узлов
const (
	RootTransformID  = 0
	RootGroupID      = 1
	FirstShapeNodeID = 2
)

// Scene накапливает палитру, материалы, фигуры и заметки, затем
// однократно сериализуется в .vox. Нулевое значение готово к работе.
//
// Scene не потокобезопасна: выделение узлов и обновление рамки -
// неатомарные read-modify-write. Синхронизация - на вызывающей стороне.
type Scene struct {
	nextNodeID int
	extent     Extent

	palette   *vox.Palette
	materials *ordmap.Map[int, *vox.Dict] // слот -> свойства, порядок первой установки
	shapes    []builtShape
	notes     vox.Notes
}

// Stats - сводка по сцене для логов и метрик
type Stats struct {
	Shapes    int
	Voxels    int
	Materials int
	Notes     int
	Nodes     int
	Extent    Extent
}

// NewScene создаёт пустую сцену
func NewScene() *Scene {
	s := &Scene{}
	s.init()
	return s
}

// init доинициализирует нулевое значение
func (s *Scene) init() {
	if s.palette == nil {
		s.palette = vox.NewPalette()
	}
	if s.materials == nil {
		s.materials = ordmap.New[int, *vox.Dict]()
	}
	if s.nextNodeID < FirstShapeNodeID {
		s.nextNodeID = FirstShapeNodeID
	}
}

// SetColour перезаписывает запись палитры index (0..255)
func (s *Scene) SetColour(index int, c Colour) error {
	s.init()
	return s.palette.Set(index, c.R, c.G, c.B)
}

// SetMaterial связывает свойства со слотом материала paletteIndex+1.
// Повторный вызов заменяет свойства, сохраняя позицию слота в файле.
func (s *Scene) SetMaterial(paletteIndex int, properties *vox.Dict) error {
	s.init()
	if paletteIndex < 0 || paletteIndex > MaxPaletteIndex {
		return fmt.Errorf("material palette index %d: %w", paletteIndex, vox.ErrInvalidIndex)
	}
	if err := properties.Validate(); err != nil {
		return fmt.Errorf("material %d: %w", paletteIndex, err)
	}
	s.materials.Add(paletteIndex+1, properties.Clone())
	return nil
}

// SetNote перезаписывает заметку строки row (0..31)
func (s *Scene) SetNote(row int, text string) error {
	return s.notes.Set(row, text)
}

// AddShape компилирует фигуру, выделяет ей пару узлов и расширяет рамку сцены.
// Нулевое смещение - размещение по умолчанию. При ошибке сцена не меняется.
func (s *Scene) AddShape(voxels []Voxel, offset vec.Vec3) error {
	s.init()
	built, err := compileShape(Shape{Voxels: voxels, Offset: offset}, len(s.shapes), s.nextNodeID)
	if err != nil {
		return err
	}

	s.nextNodeID = built.shapeID + 1
	s.extent.Include(offset, built.width, built.length)
	s.shapes = append(s.shapes, built)
	return nil
}

// Extent возвращает текущую рамку сцены
func (s *Scene) Extent() Extent {
	return s.extent
}

// Stats возвращает сводку по сцене
func (s *Scene) Stats() Stats {
	st := Stats{
		Shapes:    len(s.shapes),
		Materials: s.materials.Len(),
		Notes:     s.notes.Count(),
		Nodes:     FirstShapeNodeID + 2*len(s.shapes),
		Extent:    s.extent,
	}
	for _, sh := range s.shapes {
		st.Voxels += sh.voxels
	}
	return st
}

// Main собирает корневой чанк. Порядок детей важен для читателя формата:
// SIZE/XYZI всех фигур, корневой nTRN, nGRP, nTRN/nSHP фигур, RGBA, MATL, NOTE.
func (s *Scene) Main() (vox.Chunk, error) {
	s.init()
	children := make([]vox.Chunk, 0, 4*len(s.shapes)+4+s.materials.Len())

	for _, sh := range s.shapes {
		children = append(children, sh.size, sh.xyzi)
	}

	root, err := vox.TransformChunk(vox.TransformNode{
		NodeID:      RootTransformID,
		ChildID:     RootGroupID,
		LayerID:     vox.NoLayer,
		Translation: s.extent.RootTranslation(),
	})
	if err != nil {
		return vox.Chunk{}, fmt.Errorf("root transform: %w", err)
	}

	transformIDs := make([]int, len(s.shapes))
	for i, sh := range s.shapes {
		transformIDs[i] = sh.transformID
	}
	group, err := vox.GroupChunk(RootGroupID, transformIDs)
	if err != nil {
		return vox.Chunk{}, fmt.Errorf("root group: %w", err)
	}
	children = append(children, root, group)

	for _, sh := range s.shapes {
		children = append(children, sh.transform, sh.shape)
	}

	children = append(children, vox.PaletteChunk(s.palette))

	for _, kv := range s.materials.Order {
		matl, err := vox.MaterialChunk(kv.Key, kv.Value)
		if err != nil {
			return vox.Chunk{}, err
		}
		children = append(children, matl)
	}

	notes, err := vox.NoteChunk(&s.notes)
	if err != nil {
		return vox.Chunk{}, err
	}
	children = append(children, notes)

	return vox.MainChunk(children...), nil
}

// Encode сериализует сцену в байты файла. Состояние сцены не меняется,
// поэтому повторные вызовы дают идентичный результат.
func (s *Scene) Encode() ([]byte, error) {
	main, err := s.Main()
	if err != nil {
		return nil, err
	}
	return vox.Encode(main)
}

// WriteTo сериализует сцену в w
func (s *Scene) WriteTo(w io.Writer) (int64, error) {
	main, err := s.Main()
	if err != nil {
		return 0, err
	}
	return vox.WriteTo(w, main)
}

// Write сериализует сцену и атомарно записывает файл path, перезаписывая существующий.
func (s *Scene) Write(path string) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	_, err = storage.NewFileWriter(storage.Options{}).WriteFile(path, data)
	return err
}
