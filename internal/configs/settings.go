package configs

import (
	"log"
	"os"
	"path/filepath"
)

type Settings struct {
	ConfigDir  string
	ConfigPath string
	StorePath  string
	AuditPath  string
}

var KeteSettings *Settings

func init() {
	// KETE_CONFIG_DIR overrides the default location, mainly for tests
	// and for users who keep their vault on a separate volume.
	configDir := os.Getenv("KETE_CONFIG_DIR")

	if configDir == "" {
		baseDir, err := os.UserConfigDir()
		if err != nil {
			log.Fatalf("error getting config directory: %s", err)
		}
		configDir = filepath.Join(baseDir, "kete")
	}

	KeteSettings = settingsFor(configDir)
}

// settingsFor builds the settings for a given config directory.
func settingsFor(configDir string) *Settings {
	return &Settings{
		ConfigDir:  configDir,
		ConfigPath: filepath.Join(configDir, "config.json"),
		StorePath:  filepath.Join(configDir, "store.json"),
		AuditPath:  filepath.Join(configDir, "audit.jsonl"),
	}
}

// UseConfigDir repoints all settings at the given directory.
// Intended for tests; callers must restore the previous value.
func UseConfigDir(configDir string) *Settings {
	previous := KeteSettings
	KeteSettings = settingsFor(configDir)
	return previous
}
