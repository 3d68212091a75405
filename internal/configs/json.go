package configs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SaveJSON saves a struct to a JSON file with owner-only permissions.
// The file is written to a temporary name and renamed into place, so a
// crash mid-write never leaves a partially-written file at filePath.
func SaveJSON(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')

	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, out, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, filePath)
}

// LoadJSON loads a JSON file into a struct.
func LoadJSON(filePath string, data interface{}) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, data)
}
