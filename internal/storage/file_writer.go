package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// ArchiveExt - расширение сжатой копии файла
const ArchiveExt = ".zst"

// Options настраивает запись выходных файлов
type Options struct {
	Compress bool        // Дополнительно писать zstd-копию рядом с файлом
	Perm     os.FileMode // Права создаваемых файлов, по умолчанию 0644
}

// Result описывает записанные файлы
type Result struct {
	Path         string
	Bytes        int
	ArchivePath  string // Пусто, если сжатие выключено
	ArchiveBytes int
}

// FileWriter атомарно записывает файлы: временный файл в том же каталоге,
// fsync, затем rename поверх целевого пути.
type FileWriter struct {
	opts Options
}

// NewFileWriter создаёт писатель файлов
func NewFileWriter(opts Options) *FileWriter {
	if opts.Perm == 0 {
		opts.Perm = 0644
	}
	return &FileWriter{opts: opts}
}

// WriteFile записывает data в path и, если включено, сжатую копию в path+".zst".
// При ошибке временные файлы удаляются, ранее существовавший path не портится.
func (fw *FileWriter) WriteFile(path string, data []byte) (Result, error) {
	if err := fw.writeAtomic(path, data); err != nil {
		return Result{}, err
	}
	res := Result{Path: path, Bytes: len(data)}

	if !fw.opts.Compress {
		return res, nil
	}

	compressed, err := compress(data)
	if err != nil {
		return res, fmt.Errorf("ошибка сжатия %s: %w", path, err)
	}
	archive := path + ArchiveExt
	if err := fw.writeAtomic(archive, compressed); err != nil {
		return res, err
	}
	res.ArchivePath = archive
	res.ArchiveBytes = len(compressed)
	return res, nil
}

// writeAtomic пишет файл через временный файл и rename
func (fw *FileWriter) writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}

	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, fw.opts.Perm)
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла %s: %w", tmp, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", tmp, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("ошибка fsync %s: %w", tmp, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия %s: %w", tmp, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("ошибка переименования %s -> %s: %w", tmp, path, err)
	}
	return nil
}

// compress сжимает данные zstd
func compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// ReadArchive читает и распаковывает zstd-копию
func ReadArchive(path string) ([]byte, error) {
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения архива %s: %w", path, err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	data, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка распаковки %s: %w", path, err)
	}
	return data, nil
}
