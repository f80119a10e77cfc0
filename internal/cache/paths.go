package cache

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "blockdp"

// DefaultDir returns the platform-specific cache directory for the
// solver's artifact, creating it if necessary. Mirrors the teacher's
// GetDataDir layout (storage.GetDataDir): ~/Library/Caches on macOS,
// %LOCALAPPDATA% (or ~/AppData/Local) on Windows, XDG_CACHE_HOME or
// ~/.cache elsewhere.
func DefaultDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Caches")

	case "windows":
		baseDir = os.Getenv("LOCALAPPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Local")
		}

	default:
		baseDir = os.Getenv("XDG_CACHE_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".cache")
		}
	}

	dir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns DefaultDir joined with the well-known cache
// filename. The file lives in the per-user cache directory above, not
// in the directory of the running executable.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "blockdp_cache.bdp"), nil
}
