package vox

import (
	"fmt"
)

// HeaderSize - тег (4) + размер содержимого (4) + размер детей (4)
const HeaderSize = 12

// Tag - четырёхбайтовый ASCII-идентификатор чанка
type Tag [4]byte

// Теги чанков, которые умеет собирать кодировщик
var (
	TagMain      = Tag{'M', 'A', 'I', 'N'}
	TagSize      = Tag{'S', 'I', 'Z', 'E'}
	TagXYZI      = Tag{'X', 'Y', 'Z', 'I'}
	TagTransform = Tag{'n', 'T', 'R', 'N'}
	TagGroup     = Tag{'n', 'G', 'R', 'P'}
	TagShape     = Tag{'n', 'S', 'H', 'P'}
	TagMaterial  = Tag{'M', 'A', 'T', 'L'}
	TagPalette   = Tag{'R', 'G', 'B', 'A'}
	TagNote      = Tag{'N', 'O', 'T', 'E'}
)

// String возвращает тег как строку
func (t Tag) String() string {
	return string(t[:])
}

// Chunk - узел контейнера: собственное содержимое и вложенные чанки.
// Оба поля размера заголовка вычисляются при сериализации и хранятся только неявно.
type Chunk struct {
	Tag      Tag
	Content  []byte
	Children []Chunk
}

// ContentSize возвращает размер собственного содержимого (без заголовка и детей)
func (c Chunk) ContentSize() int {
	return len(c.Content)
}

// ChildrenSize возвращает суммарный размер детей вместе с их заголовками
func (c Chunk) ChildrenSize() int {
	total := 0
	for _, child := range c.Children {
		total += child.Size()
	}
	return total
}

// Size возвращает полный размер чанка в байтах
func (c Chunk) Size() int {
	return HeaderSize + c.ContentSize() + c.ChildrenSize()
}

// AppendTo дописывает чанк вместе с детьми в dst
func (c Chunk) AppendTo(dst []byte) ([]byte, error) {
	content, err := checkUint32(c.Tag.String()+" content size", c.ContentSize())
	if err != nil {
		return dst, err
	}
	children, err := checkUint32(c.Tag.String()+" children size", c.ChildrenSize())
	if err != nil {
		return dst, err
	}

	dst = append(dst, c.Tag[:]...)
	dst = AppendUint32(dst, content)
	dst = AppendUint32(dst, children)
	dst = append(dst, c.Content...)

	for i, child := range c.Children {
		if dst, err = child.AppendTo(dst); err != nil {
			return dst, fmt.Errorf("%s child %d: %w", c.Tag, i, err)
		}
	}
	return dst, nil
}

// Bytes сериализует чанк в новый буфер
func (c Chunk) Bytes() ([]byte, error) {
	return c.AppendTo(make([]byte, 0, c.Size()))
}
