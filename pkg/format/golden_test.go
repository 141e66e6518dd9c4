package format_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"

	. "github.com/pseudomuto/sqlformat/pkg/format"
	"github.com/pseudomuto/sqlformat/pkg/script"
)

func TestGoldenFiles(t *testing.T) {
	pattern := filepath.Join("testdata", "*.in.sql")
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.NotEmpty(t, matches, "No *.in.sql files found in testdata directory")

	for _, inputFile := range matches {
		basename := filepath.Base(inputFile)
		outputName := strings.TrimSuffix(basename, ".in.sql") + ".sql"

		t.Run(outputName, func(t *testing.T) {
			inputSQL, err := os.ReadFile(inputFile)
			require.NoError(t, err, "Failed to read input file %s", inputFile)

			items := script.Split(string(inputSQL))

			var buf strings.Builder
			require.NoError(t, Script(&buf, Defaults, items...))

			golden.Assert(t, buf.String(), outputName)
		})
	}
}
