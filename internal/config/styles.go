package config

import (
	"embed"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed skins/industrial.yaml
var defaultSkin embed.FS

// Color represents a hex color string.
type Color string

// TableStyle defines colors for the connection table.
type TableStyle struct {
	FgColor        Color `yaml:"fgColor"`
	BgColor        Color `yaml:"bgColor"`
	HeaderFgColor  Color `yaml:"headerFgColor"`
	HeaderBgColor  Color `yaml:"headerBgColor"`
	SortIndicator  Color `yaml:"sortIndicator"`
	SelectedColumn Color `yaml:"selectedColumn"`
	RxFgColor      Color `yaml:"rxFgColor"`   // Download-only rows
	TxFgColor      Color `yaml:"txFgColor"`   // Upload-only rows
	BothFgColor    Color `yaml:"bothFgColor"` // Bidirectional rows
}

// HeaderStyle defines colors for the header section.
type HeaderStyle struct {
	FgColor Color `yaml:"fgColor"`
	TitleFg Color `yaml:"titleFg"`
	LiveFg  Color `yaml:"liveFg"`
	WarnFg  Color `yaml:"warnFg"`
	StatsFg Color `yaml:"statsFg"`
}

// FooterStyle defines colors for the footer section.
type FooterStyle struct {
	KeyFgColor  Color `yaml:"keyFgColor"`
	DescFgColor Color `yaml:"descFgColor"`
}

// BorderStyle defines colors for borders.
type BorderStyle struct {
	FgColor Color `yaml:"fgColor"`
}

// Styles holds all the theme colors.
type Styles struct {
	Table  TableStyle  `yaml:"table"`
	Header HeaderStyle `yaml:"header"`
	Footer FooterStyle `yaml:"footer"`
	Border BorderStyle `yaml:"border"`
}

// Theme is the top-level theme configuration.
type Theme struct {
	Name   string `yaml:"name"`
	Styles Styles `yaml:"styles"`
}

// DefaultTheme returns the built-in industrial theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "industrial",
		Styles: Styles{
			Table: TableStyle{
				FgColor:        "#e6edf3",
				BgColor:        "#0d1117",
				HeaderFgColor:  "#58a6ff",
				HeaderBgColor:  "#0d1117",
				SortIndicator:  "#3fb950",
				SelectedColumn: "#e6edf3",
				RxFgColor:      "#58a6ff",
				TxFgColor:      "#f85149",
				BothFgColor:    "#3fb950",
			},
			Header: HeaderStyle{
				FgColor: "#e6edf3",
				TitleFg: "#58a6ff",
				LiveFg:  "#3fb950",
				WarnFg:  "#d29922",
				StatsFg: "#7d8590",
			},
			Footer: FooterStyle{
				KeyFgColor:  "#58a6ff",
				DescFgColor: "#7d8590",
			},
			Border: BorderStyle{
				FgColor: "#30363d",
			},
		},
	}
}

// LoadTheme loads a theme from the user's config directory or falls back
// to the embedded default skin.
func LoadTheme() (*Theme, error) {
	configDir, err := os.UserConfigDir()
	if err == nil {
		userSkinPath := filepath.Join(configDir, "network-monitor", "skin.yaml")
		// #nosec G304 - constructed from UserConfigDir and a fixed name
		if data, err := os.ReadFile(userSkinPath); err == nil {
			var theme Theme
			if err := yaml.Unmarshal(data, &theme); err == nil {
				return &theme, nil
			}
		}
	}

	data, err := defaultSkin.ReadFile("skins/industrial.yaml")
	if err != nil {
		return DefaultTheme(), nil
	}

	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return DefaultTheme(), nil
	}

	return &theme, nil
}

// CurrentTheme holds the loaded theme (singleton).
var CurrentTheme *Theme

// InitTheme initializes the global theme.
func InitTheme() error {
	theme, err := LoadTheme()
	if err != nil {
		return err
	}
	CurrentTheme = theme
	return nil
}

func init() {
	CurrentTheme = DefaultTheme()
}
