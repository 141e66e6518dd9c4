package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the config file looked up in the working
	// directory when --config is not given
	DefaultConfigFile = ".sqlformat.yaml"

	// DefaultIndent is the number of spaces per indentation level
	DefaultIndent = 4
)
