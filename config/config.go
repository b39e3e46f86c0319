package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// defaultConfigFile читается, только если лежит в рабочем каталоге
const defaultConfigFile = "config.yaml"

// Границы настроек нарезки и кисти
const (
	MinPatchSize = 50
	MaxPatchSize = 256
	MinStride    = 1
	MaxStride    = 100
	MinBrushSize = 1
	MaxBrushSize = 20
)

type Config struct {
	TelegramToken   string `yaml:"telegram_token"`
	Backend         string `yaml:"backend"` // raster или gocv
	MaskDir         string `yaml:"mask_dir"`
	SplitDir        string `yaml:"split_dir"`
	WorkDir         string `yaml:"work_dir"`
	PatchSize       int    `yaml:"patch_size"`
	Stride          int    `yaml:"stride"`
	BrushSize       int    `yaml:"brush_size"`
	Augment         bool   `yaml:"augment"`
	ContinueOnError bool   `yaml:"continue_on_error"`
}

// Default настройки по умолчанию
func Default() *Config {
	return &Config{
		Backend:   "raster",
		MaskDir:   "./mask",
		SplitDir:  "./split",
		WorkDir:   "./work",
		PatchSize: 128,
		Stride:    48,
		BrushSize: 10,
	}
}

// Load собирает настройки: значения по умолчанию, YAML-файл, переменные окружения.
func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	path, explicit := os.LookupEnv("CONFIG_FILE")
	if !explicit || path == "" {
		path, explicit = defaultConfigFile, false
	}
	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	texts := map[string]*string{
		"TELEGRAM_TOKEN": &c.TelegramToken,
		"BACKEND":        &c.Backend,
		"MASK_DIR":       &c.MaskDir,
		"SPLIT_DIR":      &c.SplitDir,
		"WORK_DIR":       &c.WorkDir,
	}
	for key, dst := range texts {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"PATCH_SIZE": &c.PatchSize,
		"STRIDE":     &c.Stride,
		"BRUSH_SIZE": &c.BrushSize,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"AUGMENT":           &c.Augment,
		"CONTINUE_ON_ERROR": &c.ContinueOnError,
	}
	for key, dst := range bools {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}
	return nil
}

// Validate проверяет границы настроек
func (c *Config) Validate() error {
	var errs []error
	if c.PatchSize < MinPatchSize || c.PatchSize > MaxPatchSize {
		errs = append(errs, fmt.Errorf("patch size %d not in [%d,%d]", c.PatchSize, MinPatchSize, MaxPatchSize))
	}
	if c.Stride < MinStride || c.Stride > MaxStride {
		errs = append(errs, fmt.Errorf("stride %d not in [%d,%d]", c.Stride, MinStride, MaxStride))
	}
	if c.BrushSize < MinBrushSize || c.BrushSize > MaxBrushSize {
		errs = append(errs, fmt.Errorf("brush size %d not in [%d,%d]", c.BrushSize, MinBrushSize, MaxBrushSize))
	}
	switch c.Backend {
	case "raster", "gocv":
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}
	return errors.Join(errs...)
}
