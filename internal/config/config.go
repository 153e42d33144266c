package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Переменные окружения
const (
	EnvConfig = "VOXBUILD_CONFIG"
	EnvOutput = "VOXBUILD_OUTPUT"
)

// DefaultOutputPath используется, если путь не задан ни флагом, ни конфигом, ни env
const DefaultOutputPath = "scene.vox"

// Виды фигур сцены
const (
	KindSphere  = "sphere"
	KindBox     = "box"
	KindTerrain = "terrain"
	KindVoxels  = "voxels"
)

// Config корневая структура конфигурации сборки сцены
type Config struct {
	Output  OutputConfig  `yaml:"output" toml:"output"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
	Scene   SceneConfig   `yaml:"scene" toml:"scene"`
}

type OutputConfig struct {
	Path     string `yaml:"path" toml:"path"`
	Compress bool   `yaml:"compress" toml:"compress"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	File       string `yaml:"file" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile" toml:"textfile"`
}

// SceneConfig описывает содержимое сцены
type SceneConfig struct {
	Palette   []ColourConfig   `yaml:"palette" toml:"palette"`
	Materials []MaterialConfig `yaml:"materials" toml:"materials"`
	Notes     []NoteConfig     `yaml:"notes" toml:"notes"`
	Shapes    []ShapeConfig    `yaml:"shapes" toml:"shapes"`
}

type ColourConfig struct {
	Index int   `yaml:"index" toml:"index"`
	RGB   []int `yaml:"rgb" toml:"rgb"`
}

type MaterialConfig struct {
	Index      int        `yaml:"index" toml:"index"`
	Properties Properties `yaml:"properties" toml:"properties"`
}

type NoteConfig struct {
	Row  int    `yaml:"row" toml:"row"`
	Text string `yaml:"text" toml:"text"`
}

// ShapeConfig описывает одну фигуру. Набор используемых полей зависит от Kind.
type ShapeConfig struct {
	Kind    string  `yaml:"kind" toml:"kind"`
	Palette int     `yaml:"palette" toml:"palette"`
	Offset  []int   `yaml:"offset" toml:"offset"`
	Radius  float64 `yaml:"radius" toml:"radius"` // sphere
	Centre  []int   `yaml:"centre" toml:"centre"` // sphere
	Size    []int   `yaml:"size" toml:"size"`     // box: w,l,h; terrain: w,l,maxHeight
	Seed    int64   `yaml:"seed" toml:"seed"`     // terrain
	Scale   float64 `yaml:"scale" toml:"scale"`   // terrain
	Voxels  [][]int `yaml:"voxels" toml:"voxels"` // voxels: [x,y,z] или [x,y,z,palette]
}

// GetPath возвращает путь выходного файла с приоритетом: config -> env -> default
func (o *OutputConfig) GetPath() string {
	return getWithEnvFallback(o.Path, EnvOutput, DefaultOutputPath)
}

// getWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getWithEnvFallback(configValue, envVar, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		return envVal
	}
	return defaultValue
}

// Load читает файл конфигурации YAML или TOML (по расширению).
// Если path == "", пытается прочитать из ENV VOXBUILD_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
		if path == "" {
			return nil, nil // конфиг не задан — собрать сцену-пример
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse разбирает конфигурацию. ext ".toml" выбирает TOML, иначе YAML.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	if strings.EqualFold(ext, ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора TOML: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка разбора YAML: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет структуру конфигурации. Диапазоны индексов
// проверяет сцена при сборке.
func (c *Config) Validate() error {
	for i, col := range c.Scene.Palette {
		if len(col.RGB) != 3 {
			return fmt.Errorf("palette[%d]: rgb must have 3 components, got %d", i, len(col.RGB))
		}
		for _, v := range col.RGB {
			if v < 0 || v > 255 {
				return fmt.Errorf("palette[%d]: component %d out of range 0..255", i, v)
			}
		}
	}

	for i, s := range c.Scene.Shapes {
		if err := s.validate(); err != nil {
			return fmt.Errorf("shapes[%d]: %w", i, err)
		}
	}
	return nil
}

func (s *ShapeConfig) validate() error {
	if s.Offset != nil && len(s.Offset) != 3 {
		return fmt.Errorf("offset must have 3 components")
	}

	switch s.Kind {
	case KindSphere:
		if s.Radius <= 0 {
			return fmt.Errorf("sphere radius must be positive")
		}
		if len(s.Centre) != 3 {
			return fmt.Errorf("sphere centre must have 3 components")
		}
	case KindBox, KindTerrain:
		if len(s.Size) != 3 {
			return fmt.Errorf("%s size must have 3 components", s.Kind)
		}
		for _, v := range s.Size {
			if v <= 0 {
				return fmt.Errorf("%s size must be positive", s.Kind)
			}
		}
	case KindVoxels:
		if len(s.Voxels) == 0 {
			return fmt.Errorf("voxels list is empty")
		}
		for i, v := range s.Voxels {
			if len(v) != 3 && len(v) != 4 {
				return fmt.Errorf("voxels[%d] must be [x,y,z] or [x,y,z,palette]", i)
			}
		}
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	return nil
}

// ExampleScene возвращает сцену-пример: красную стеклянную сферу
// и зелёный параллелепипед рядом с ней.
func ExampleScene() SceneConfig {
	return SceneConfig{
		Palette: []ColourConfig{
			{Index: 0, RGB: []int{128, 0, 0}},
			{Index: 1, RGB: []int{0, 255, 128}},
		},
		Materials: []MaterialConfig{
			{Index: 0, Properties: Properties{{"_type", "_glass"}, {"_trans", "0.5"}}},
		},
		Notes: []NoteConfig{{Row: 0, Text: "Note"}},
		Shapes: []ShapeConfig{
			{Kind: KindSphere, Radius: 5, Centre: []int{4, 4, 4}, Palette: 0},
			{Kind: KindBox, Size: []int{10, 10, 15}, Palette: 1, Offset: []int{12, 5, 0}},
		},
	}
}
