package tui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines customizable colors for rendering.
type Theme struct {
	DiffColor    string `json:"diffColor"`
	SameColor    string `json:"sameColor"`
	SkipColor    string `json:"skipColor"`
	DividerColor string `json:"dividerColor"`
	RefBarColor  string `json:"refBarColor"`
	CmpBarColor  string `json:"cmpBarColor"`
}

func defaultTheme() Theme {
	return Theme{
		DiffColor:    "196",
		SameColor:    "34",
		SkipColor:    "240",
		DividerColor: "240",
		RefBarColor:  "252",
		CmpBarColor:  "203",
	}
}

// loadTheme tries theme.json next to the rootcmp config file, merging any
// set fields over the defaults.
func loadTheme() Theme {
	t := defaultTheme()
	dir, err := os.UserConfigDir()
	if err != nil {
		return t
	}
	b, err := os.ReadFile(filepath.Join(dir, "rootcmp", "theme.json"))
	if err != nil {
		return t
	}
	var u Theme
	if err := json.Unmarshal(b, &u); err != nil {
		return t
	}
	if u.DiffColor != "" {
		t.DiffColor = u.DiffColor
	}
	if u.SameColor != "" {
		t.SameColor = u.SameColor
	}
	if u.SkipColor != "" {
		t.SkipColor = u.SkipColor
	}
	if u.DividerColor != "" {
		t.DividerColor = u.DividerColor
	}
	if u.RefBarColor != "" {
		t.RefBarColor = u.RefBarColor
	}
	if u.CmpBarColor != "" {
		t.CmpBarColor = u.CmpBarColor
	}
	return t
}

func (t Theme) DiffText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DiffColor)).Render(s)
}

func (t Theme) SameText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.SameColor)).Render(s)
}

func (t Theme) SkipText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.SkipColor)).Render(s)
}

func (t Theme) DividerText(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.DividerColor)).Render(s)
}

func (t Theme) RefBar(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.RefBarColor)).Render(s)
}

func (t Theme) CmpBar(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.CmpBarColor)).Render(s)
}
