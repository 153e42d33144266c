package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/annel0/voxbuild/internal/config"
	"github.com/annel0/voxbuild/internal/logging"
	"github.com/annel0/voxbuild/internal/metrics"
	"github.com/annel0/voxbuild/internal/storage"
	"github.com/annel0/voxbuild/internal/vec"
	"github.com/annel0/voxbuild/internal/vox"
	"github.com/annel0/voxbuild/internal/world"
)

// Options переопределяет настройки конфигурации (обычно из флагов)
type Options struct {
	OutputPath  string // Пусто - из конфига, затем VOXBUILD_OUTPUT, затем scene.vox
	Compress    bool   // Включает сжатую копию, даже если в конфиге выключена
	MetricsFile string // Пусто - из конфига
}

// Report - итог одной сборки
type Report struct {
	BuildID  string
	Stats    world.Stats
	File     storage.Result
	Duration time.Duration
}

// Builder собирает сцену по конфигурации и записывает её на диск
type Builder struct {
	cfg     *config.Config
	opts    Options
	metrics *metrics.BuildMetrics
	log     *logging.Logger
}

// NewBuilder создаёт сборщик. cfg == nil означает сцену-пример.
// m может быть nil, тогда создаётся собственный набор метрик.
func NewBuilder(cfg *config.Config, opts Options, m *metrics.BuildMetrics) *Builder {
	if cfg == nil {
		cfg = &config.Config{Scene: config.ExampleScene()}
	}
	if m == nil {
		m = metrics.NewBuildMetrics()
	}
	return &Builder{
		cfg:     cfg,
		opts:    opts,
		metrics: m,
		log:     logging.GetBuildLogger(),
	}
}

// Metrics возвращает метрики сборщика
func (b *Builder) Metrics() *metrics.BuildMetrics {
	return b.metrics
}

// OutputPath возвращает итоговый путь файла: флаг -> конфиг -> env -> default
func (b *Builder) OutputPath() string {
	if b.opts.OutputPath != "" {
		return b.opts.OutputPath
	}
	return b.cfg.Output.GetPath()
}

// Run собирает сцену, кодирует её и атомарно записывает файл.
// Метрики выгружаются в textfile, если путь задан.
func (b *Builder) Run(ctx context.Context) (Report, error) {
	start := time.Now()
	report := Report{BuildID: uuid.NewString()}
	b.log.Info("🧱 Сборка %s: %d фигур", report.BuildID, len(b.cfg.Scene.Shapes))

	scene, err := b.BuildScene(ctx)
	if err != nil {
		return report, b.fail(err)
	}
	report.Stats = scene.Stats()
	b.log.Debug("Сцена %s: вокселей=%d материалов=%d заметок=%d рамка=[%s]",
		report.BuildID, report.Stats.Voxels, report.Stats.Materials, report.Stats.Notes, report.Stats.Extent)

	encodeStart := time.Now()
	root, err := scene.Main()
	if err != nil {
		return report, b.fail(err)
	}
	data, err := vox.Encode(root)
	if err != nil {
		return report, b.fail(err)
	}
	b.metrics.ObserveEncode(time.Since(encodeStart))
	for _, c := range root.Children {
		b.log.LogChunk(c.Tag.String(), c.ContentSize(), c.ChildrenSize(), c.Content)
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}

	writer := storage.NewFileWriter(storage.Options{
		Compress: b.cfg.Output.Compress || b.opts.Compress,
	})
	report.File, err = writer.WriteFile(b.OutputPath(), data)
	if err != nil {
		return report, b.fail(err)
	}
	b.metrics.SceneWritten(report.Stats.Shapes, report.Stats.Voxels, report.File.Bytes+report.File.ArchiveBytes)

	report.Duration = time.Since(start)
	b.log.Info("✅ %s записан: %s за %v", report.File.Path, humanize.Bytes(uint64(report.File.Bytes)), report.Duration)
	if report.File.ArchivePath != "" {
		b.log.Info("📦 %s: %s", report.File.ArchivePath, humanize.Bytes(uint64(report.File.ArchiveBytes)))
	}

	if err := b.writeMetrics(); err != nil {
		return report, err
	}
	return report, nil
}

// BuildScene строит сцену из конфигурации, не записывая её
func (b *Builder) BuildScene(ctx context.Context) (*world.Scene, error) {
	sc := b.cfg.Scene
	scene := world.NewScene()

	for _, c := range sc.Palette {
		if len(c.RGB) != 3 {
			return nil, fmt.Errorf("palette %d: rgb must have 3 components", c.Index)
		}
		for _, v := range c.RGB {
			if v < 0 || v > 255 {
				return nil, fmt.Errorf("palette %d: component %d: %w", c.Index, v, vox.ErrInvalidIndex)
			}
		}
		colour := world.Colour{R: uint8(c.RGB[0]), G: uint8(c.RGB[1]), B: uint8(c.RGB[2])}
		if err := scene.SetColour(c.Index, colour); err != nil {
			return nil, err
		}
	}

	for _, m := range sc.Materials {
		props := vox.NewDict()
		for _, p := range m.Properties {
			props.Set(p.Key, p.Value)
		}
		if err := scene.SetMaterial(m.Index, props); err != nil {
			return nil, err
		}
	}

	for _, n := range sc.Notes {
		if err := scene.SetNote(n.Row, n.Text); err != nil {
			return nil, err
		}
	}

	for i, s := range sc.Shapes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		voxels, err := generate(s)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, s.Kind, err)
		}
		if err := scene.AddShape(voxels, toVec3(s.Offset)); err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, s.Kind, err)
		}
		b.log.Trace("Фигура %d (%s): %d вокселей", i, s.Kind, len(voxels))
	}
	return scene, nil
}

// generate строит воксели фигуры по её описанию
func generate(s config.ShapeConfig) ([]world.Voxel, error) {
	switch s.Kind {
	case config.KindSphere:
		return world.Sphere(toVec3(s.Centre), s.Radius, s.Palette)
	case config.KindBox:
		if len(s.Size) != 3 {
			return nil, fmt.Errorf("box size must have 3 components")
		}
		return world.Box(s.Size[0], s.Size[1], s.Size[2], s.Palette)
	case config.KindTerrain:
		if len(s.Size) != 3 {
			return nil, fmt.Errorf("terrain size must have 3 components")
		}
		tg := world.NewTerrainGenerator(s.Seed)
		if s.Scale > 0 {
			tg.NoiseScale = s.Scale
		}
		tg.MaxHeight = s.Size[2]
		return tg.Generate(s.Size[0], s.Size[1])
	case config.KindVoxels:
		voxels := make([]world.Voxel, 0, len(s.Voxels))
		for _, p := range s.Voxels {
			if len(p) != 3 && len(p) != 4 {
				return nil, fmt.Errorf("voxel %v must be [x,y,z] or [x,y,z,palette]", p)
			}
			index := s.Palette
			if len(p) == 4 {
				index = p[3]
			}
			v, err := world.NewVoxel(p[0], p[1], p[2], index)
			if err != nil {
				return nil, err
			}
			voxels = append(voxels, v)
		}
		return voxels, nil
	}
	return nil, fmt.Errorf("unknown shape kind %q", s.Kind)
}

func toVec3(c []int) vec.Vec3 {
	if len(c) != 3 {
		return vec.Vec3{}
	}
	return vec.Vec3{X: c[0], Y: c[1], Z: c[2]}
}

func (b *Builder) writeMetrics() error {
	path := b.opts.MetricsFile
	if path == "" {
		path = b.cfg.Metrics.Textfile
	}
	if path == "" {
		return nil
	}
	if err := b.metrics.WriteTextfile(path); err != nil {
		return err
	}
	b.log.Debug("Метрики выгружены в %s", path)
	return nil
}

// fail учитывает ошибку в метриках и выгружает их
func (b *Builder) fail(err error) error {
	b.metrics.EncodeError(ErrorKind(err))
	b.log.Error("❌ Сборка не удалась: %v", err)
	if werr := b.writeMetrics(); werr != nil {
		b.log.Warn("Не удалось выгрузить метрики: %v", werr)
	}
	return err
}

// ErrorKind возвращает метку вида ошибки для encode_errors_total
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, vox.ErrOverflow):
		return metrics.KindOverflow
	case errors.Is(err, vox.ErrInvalidIndex):
		return metrics.KindIndex
	case errors.Is(err, vox.ErrNonASCII):
		return metrics.KindASCII
	case errors.Is(err, vox.ErrEmptyShape):
		return metrics.KindEmpty
	}
	var pathErr *fs.PathError
	var linkErr *os.LinkError
	if errors.As(err, &pathErr) || errors.As(err, &linkErr) {
		return metrics.KindIO
	}
	return metrics.KindOther
}
