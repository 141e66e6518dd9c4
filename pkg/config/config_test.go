package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/pseudomuto/sqlformat/pkg/config"
	"github.com/pseudomuto/sqlformat/pkg/format"
)

func TestLoadConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		yamlData := `
format:
  indent: 2
  uppercase_keywords: false
  align_columns: false
`
		cfg, err := LoadConfig(strings.NewReader(yamlData))
		require.NoError(t, err)

		opts := cfg.Options()
		require.Equal(t, 2, opts.IndentSize)
		require.False(t, opts.UppercaseKeywords)
		require.False(t, opts.AlignColumns)
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader("format:\n  indent: 8\n"))
		require.NoError(t, err)

		opts := cfg.Options()
		require.Equal(t, 8, opts.IndentSize)
		require.Equal(t, format.Defaults.UppercaseKeywords, opts.UppercaseKeywords)
		require.Equal(t, format.Defaults.AlignColumns, opts.AlignColumns)
	})

	t.Run("empty config yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig(strings.NewReader(""))
		require.NoError(t, err)
		require.Equal(t, format.Defaults, cfg.Options())
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		_, err := LoadConfig(strings.NewReader("format: [not a map"))
		require.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadConfigFile("does-not-exist.yaml")
		require.Error(t, err)
	})
}
