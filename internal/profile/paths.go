package profile

import (
	"os"
	"path/filepath"
)

// baseDirEnv overrides the base directory, mostly for tests and sandboxes.
const baseDirEnv = "QUICKBLESSING_HOME"

// BaseDir returns ~/.quickblessing, or $QUICKBLESSING_HOME when set.
func BaseDir() string {
	if dir := os.Getenv(baseDirEnv); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quickblessing")
}

// Dir returns the profile-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "profiles", name)
}

// StatePath returns the profile's persisted state database.
func StatePath(name string) string {
	return filepath.Join(Dir(name), "state.db")
}

// LogDir returns the log directory for a profile.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "blessing.log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the profile directory tree with owner-only permissions.
func EnsureDir(name string) error {
	for _, d := range []string{Dir(name), LogDir(name)} {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
