package vox

import "fmt"

const (
	// PaletteSize - число записей палитры, всегда записываются все
	PaletteSize = 256
	// NoteRows - число строк заметок, всегда записываются все
	NoteRows = 32
)

// RGBA - запись палитры
type RGBA struct {
	R, G, B, A uint8
}

// DefaultColour - цвет незаданных записей палитры
var DefaultColour = RGBA{R: 75, G: 75, B: 75, A: 255}

// Palette - фиксированная таблица из 256 цветов.
// Запись i окрашивает воксели с сохранённым индексом i+1.
type Palette struct {
	entries [PaletteSize]RGBA
}

// NewPalette создаёт палитру, заполненную DefaultColour
func NewPalette() *Palette {
	p := &Palette{}
	for i := range p.entries {
		p.entries[i] = DefaultColour
	}
	return p
}

// Set задаёт непрозрачный цвет записи index. Повторная запись перезаписывает.
func (p *Palette) Set(index int, r, g, b uint8) error {
	if index < 0 || index >= PaletteSize {
		return fmt.Errorf("palette index %d: %w", index, ErrInvalidIndex)
	}
	p.entries[index] = RGBA{R: r, G: g, B: b, A: 255}
	return nil
}

// At возвращает запись index
func (p *Palette) At(index int) RGBA {
	return p.entries[index]
}

// Notes - 32 строки аннотаций палитры; пустая строка означает отсутствие заметки.
type Notes struct {
	rows [NoteRows]string
}

// Set перезаписывает заметку строки row
func (n *Notes) Set(row int, text string) error {
	if row < 0 || row >= NoteRows {
		return fmt.Errorf("note row %d: %w", row, ErrInvalidIndex)
	}
	if err := checkASCII(fmt.Sprintf("note row %d", row), text); err != nil {
		return err
	}
	n.rows[row] = text
	return nil
}

// Row возвращает заметку строки row
func (n *Notes) Row(row int) string {
	return n.rows[row]
}

// Count возвращает число непустых заметок
func (n *Notes) Count() int {
	count := 0
	for _, r := range n.rows {
		if r != "" {
			count++
		}
	}
	return count
}
