package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/templify"
	"github.com/fwojciec/templify/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty document uses defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ReadConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, templify.DefaultConfig(), cfg)
	})

	t.Run("rules only keeps default categories", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ReadConfig(strings.NewReader(`
rules:
  - {tag: a, attr: href, category: href-link}
  - {tag: link, attr: href, category: href-link}
`))

		require.NoError(t, err)
		assert.Equal(t, templify.DefaultCategories(), cfg.Categories)
		assert.Equal(t, []templify.Rule{
			{Tag: "a", Attr: "href", Category: "href-link"},
			{Tag: "link", Attr: "href", Category: "href-link"},
		}, cfg.Rules)
	})

	t.Run("custom categories", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ReadConfig(strings.NewReader(`
categories:
  - {id: text, group: txt, prefix: txt}
  - {id: src-image, group: img, prefix: img, relocatable: true}
rules:
  - {tag: img, attr: src, category: src-image}
`))

		require.NoError(t, err)
		assert.Equal(t, "txt", cfg.Category(templify.CategoryText).Prefix)
		assert.True(t, cfg.CategoryByGroup("img").Relocatable)
		assert.Len(t, cfg.Rules, 1)
	})

	t.Run("explicit empty rule list disables attributes", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ReadConfig(strings.NewReader("rules: []\n"))

		require.NoError(t, err)
		assert.Empty(t, cfg.Rules)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadConfig(strings.NewReader("rulez: []\n"))

		require.Error(t, err)
		assert.Equal(t, templify.EINVALID, templify.ErrorCode(err))
	})

	t.Run("rejects invalid tables", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadConfig(strings.NewReader(`
rules:
  - {tag: a, attr: href, category: nowhere}
`))

		require.Error(t, err)
		assert.Equal(t, templify.EINVALID, templify.ErrorCode(err))
		assert.Contains(t, templify.ErrorMessage(err), "unknown category")
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty path returns defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.LoadConfig("")

		require.NoError(t, err)
		assert.Equal(t, templify.DefaultConfig(), cfg)
	})

	t.Run("missing file is not found", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

		require.Error(t, err)
		assert.Equal(t, templify.ENOTFOUND, templify.ErrorCode(err))
	})

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "templify.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules: []\n"), 0644))

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		assert.Empty(t, cfg.Rules)
	})
}
