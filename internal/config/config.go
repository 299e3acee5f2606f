package config

import (
	"os"
	"path/filepath"
)

// DefaultBaseDirectoryPath is where ViFi keeps its log file.
// It defaults to $VIFI_BASE if set, otherwise $HOME/.vifi. Commands
// override this via the -base flag.
var DefaultBaseDirectoryPath string

func init() {
	if base := os.Getenv("VIFI_BASE"); base != "" {
		DefaultBaseDirectoryPath = base
	} else {
		DefaultBaseDirectoryPath = os.ExpandEnv("$HOME/.vifi")
	}
}

// C holds the resolved base directory for a run.
type C struct {
	base string
}

// Load resolves the base directory, creating it (and any missing
// parents) if necessary.
func Load(base string) (*C, error) {
	if err := os.MkdirAll(base, 0700); err != nil {
		return nil, errorf("Load", "%w: %v", ErrUnusableBase, err)
	}
	return &C{base: base}, nil
}

// LogFilePath returns the path ViFi appends structured log lines to.
func (c *C) LogFilePath() string {
	return filepath.Join(c.base, "vifi.log")
}
