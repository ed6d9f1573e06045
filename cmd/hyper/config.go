package main

import (
	"os"

	"github.com/2x3systems/hypergraph/hyper"
	"github.com/2x3systems/hypergraph/libhyper"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the hyper CLI configuration, read from YAML:
//
//	signature_file: sig.yaml
//	types: [x, y]
//	boxes:
//	  - {name: f, dom: x, cod: x @ y}
//	catalog:
//	  path: ./diagrams.db
//	log:
//	  verbosity: 2
type Config struct {
	SignatureFile string             `yaml:"signature_file,omitempty"`
	Types         []string           `yaml:"types,omitempty"`
	Boxes         []libhyper.BoxDecl `yaml:"boxes,omitempty"`
	Catalog       CatalogConfig      `yaml:"catalog"`
	Log           LogConfig          `yaml:"log"`
}

type CatalogConfig struct {
	Path     string `yaml:"path"`      // empty for an in-memory catalog
	ReadOnly bool   `yaml:"read_only"` // requires Path
}

type LogConfig struct {
	Verbosity int  `yaml:"verbosity"`
	Color     bool `yaml:"color"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Verbosity: 0,
			Color:     true,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Catalog.ReadOnly && c.Catalog.Path == "" {
		return errors.Wrap(hyper.ErrBadCatalogParam, "catalog.read_only requires catalog.path")
	}
	if c.Log.Verbosity < 0 {
		return errors.New("log.verbosity must be >= 0")
	}
	return nil
}

// LoadConfig loads configuration from a YAML file over the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	return config, nil
}

// BuildSignature returns the signature declared inline, merged into the one read from SignatureFile if set.
// Inline boxes without inline types are checked against the types of the file.
func (c *Config) BuildSignature() (*libhyper.Signature, error) {
	if c.SignatureFile == "" {
		sig := libhyper.NewSignature(c.Types...)
		if err := sig.Declare(c.Boxes...); err != nil {
			return nil, err
		}
		return sig, nil
	}

	fileSig, err := libhyper.LoadSignature(c.SignatureFile)
	if err != nil {
		return nil, err
	}
	if len(c.Types) == 0 && len(c.Boxes) == 0 {
		return fileSig, nil
	}

	types := c.Types
	if len(types) == 0 {
		types = fileSig.Types
	}
	sig := libhyper.NewSignature(types...)
	if err = sig.Declare(c.Boxes...); err != nil {
		return nil, err
	}
	if err = fileSig.Merge(sig); err != nil {
		return nil, err
	}
	return fileSig, nil
}

func (c *Config) CatalogOpts() hyper.CatalogOpts {
	return hyper.CatalogOpts{
		DbPathName: c.Catalog.Path,
		ReadOnly:   c.Catalog.ReadOnly,
	}
}
