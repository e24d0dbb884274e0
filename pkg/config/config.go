// Package config читает настройки просмотрщика и CLI из YAML.
package config

import (
	"os"

	"github.com/0x0FACED/go-sweepline/pkg/voronoi"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Addr string `yaml:"addr"`
}

// Diagram - параметры набора сайтов по умолчанию.
type Diagram struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Sites  int   `yaml:"sites"`
	Random bool  `yaml:"random"`
	Seed   int64 `yaml:"seed"`
	// Debug включает пошаговую трассировку построения в журнал
	Debug bool `yaml:"debug"`
}

type Config struct {
	Server  Server  `yaml:"server"`
	Diagram Diagram `yaml:"diagram"`
}

// Default - значения, с которыми работал исходный просмотрщик.
func Default() *Config {
	return &Config{
		Server: Server{Addr: ":8080"},
		Diagram: Diagram{
			Width:  1000,
			Height: 1000,
			Sites:  12,
		},
	}
}

// Load читает файл поверх значений по умолчанию. Пустой путь - только значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: reading %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Diagram.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New("server address is empty")
	}
	return nil
}

// Validate проверяет, что сайты помещаются в прямоугольник.
func (d Diagram) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return errors.Newf("diagram size must be positive, got %dx%d", d.Width, d.Height)
	}
	if d.Width > voronoi.MaxCoordinate || d.Height > voronoi.MaxCoordinate {
		return errors.Newf("diagram size %dx%d exceeds %d", d.Width, d.Height, voronoi.MaxCoordinate)
	}
	if d.Sites <= 0 {
		return errors.Newf("site count must be positive, got %d", d.Sites)
	}
	if int64(d.Sites) > int64(d.Width)*int64(d.Height) {
		return errors.Newf("%d sites do not fit into %dx%d", d.Sites, d.Width, d.Height)
	}
	return nil
}
