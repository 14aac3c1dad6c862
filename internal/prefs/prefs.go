// Package prefs persists user defaults for rootcmp in the user config dir.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Prefs represents persisted defaults. The *Set flags record whether a
// value was present in the file, so unset values never override flag
// defaults.
type Prefs struct {
	TreeName     string
	TreeSet      bool
	Format       string
	FormatSet    bool
	OutputDir    string
	OutputSet    bool
	LeftWidth    int
	LeftWidthSet bool
}

type fileFormat struct {
	TreeName  string `json:"treeName,omitempty"`
	Format    string `json:"format,omitempty"`
	OutputDir string `json:"outputDir,omitempty"`
	LeftWidth int    `json:"leftWidth,omitempty"`
}

// Load reads preferences from the config file. A missing or malformed
// file yields empty prefs.
func Load() Prefs {
	var p Prefs
	path, err := configPath()
	if err != nil {
		return p
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	var f fileFormat
	if err := json.Unmarshal(b, &f); err != nil {
		return p
	}
	if f.TreeName != "" {
		p.TreeSet = true
		p.TreeName = f.TreeName
	}
	if f.Format != "" {
		p.FormatSet = true
		p.Format = f.Format
	}
	if f.OutputDir != "" {
		p.OutputSet = true
		p.OutputDir = f.OutputDir
	}
	if f.LeftWidth > 0 {
		p.LeftWidthSet = true
		p.LeftWidth = f.LeftWidth
	}
	return p
}

// SaveLeftWidth persists the TUI left column width.
func SaveLeftWidth(w int) error {
	if w <= 0 {
		return fmt.Errorf("invalid left width: %d", w)
	}
	return update(func(f *fileFormat) { f.LeftWidth = w })
}

// SaveTreeName persists the default tree name.
func SaveTreeName(name string) error {
	return update(func(f *fileFormat) { f.TreeName = name })
}

// SaveFormat persists the default plot format.
func SaveFormat(format string) error {
	return update(func(f *fileFormat) { f.Format = format })
}

func update(fn func(*fileFormat)) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	var f fileFormat
	if b, err := os.ReadFile(path); err == nil {
		// Best effort: a malformed file is replaced wholesale.
		_ = json.Unmarshal(b, &f)
	}
	fn(&f)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func configPath() (string, error) {
	if p := os.Getenv("ROOTCMP_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "rootcmp", "config.json"), nil
}
