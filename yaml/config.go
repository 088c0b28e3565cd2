package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/templify"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the configuration file at path.
// An empty path returns templify.DefaultConfig.
func LoadConfig(path string) (*templify.Config, error) {
	if path == "" {
		return templify.DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, templify.Errorf(templify.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadConfig(f)
}

// ReadConfig decodes a configuration document from r. Missing sections
// fall back to the defaults; unknown keys are rejected.
func ReadConfig(r io.Reader) (*templify.Config, error) {
	var cfg templify.Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, templify.Errorf(templify.EINVALID, "invalid config: %v", err)
	}

	if len(cfg.Categories) == 0 {
		cfg.Categories = templify.DefaultCategories()
	}
	if cfg.Rules == nil {
		cfg.Rules = templify.DefaultRules()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
