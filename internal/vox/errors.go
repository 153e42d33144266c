package vox

import (
	"errors"
	"fmt"
	"math"
)

// Ошибки кодировщика. Вызывающий код проверяет их через errors.Is,
// контекст (имя поля, значение) добавляется обёрткой.
var (
	// ErrOverflow - значение не помещается в поле, отведённое под него форматом.
	ErrOverflow = errors.New("vox: value overflows field width")
	// ErrInvalidIndex - индекс палитры, материала, заметки или координата вне диапазона.
	ErrInvalidIndex = errors.New("vox: index out of range")
	// ErrNonASCII - строка содержит байты вне ASCII.
	ErrNonASCII = errors.New("vox: string is not ASCII")
	// ErrEmptyShape - фигура без вокселей.
	ErrEmptyShape = errors.New("vox: shape has no voxels")
)

// checkUint32 проверяет, что n помещается в беззнаковое 32-битное поле
func checkUint32(field string, n int) (uint32, error) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return 0, fmt.Errorf("%s=%d: %w", field, n, ErrOverflow)
	}
	return uint32(n), nil
}

// checkInt32 проверяет, что n помещается в знаковое 32-битное поле
func checkInt32(field string, n int) (int32, error) {
	if int64(n) < math.MinInt32 || int64(n) > math.MaxInt32 {
		return 0, fmt.Errorf("%s=%d: %w", field, n, ErrOverflow)
	}
	return int32(n), nil
}

// checkUint16 проверяет, что n помещается в 16 бит (размеры в SIZE)
func checkUint16(field string, n int) (uint16, error) {
	if n < 0 || n > math.MaxUint16 {
		return 0, fmt.Errorf("%s=%d: %w", field, n, ErrOverflow)
	}
	return uint16(n), nil
}

// checkASCII возвращает ErrNonASCII для первого байта вне 0x00..0x7F
func checkASCII(field, s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return fmt.Errorf("%s: byte 0x%02x at offset %d: %w", field, s[i], i, ErrNonASCII)
		}
	}
	return nil
}
