package vox

import (
	"fmt"
	"io"
)

const (
	// Magic - сигнатура файла
	Magic = "VOX "
	// Version - версия формата
	Version = 200
)

// Encode сериализует файл целиком: сигнатура, версия, MAIN.
func Encode(main Chunk) ([]byte, error) {
	buf := make([]byte, 0, len(Magic)+4+main.Size())
	buf = append(buf, Magic...)
	buf = AppendUint32(buf, Version)

	buf, err := main.AppendTo(buf)
	if err != nil {
		return nil, fmt.Errorf("encode MAIN: %w", err)
	}
	return buf, nil
}

// WriteTo кодирует файл и пишет его в w
func WriteTo(w io.Writer, main Chunk) (int64, error) {
	data, err := Encode(main)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
