// Package colors holds the terminal color presets used by CLI output
package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `koanf:"preset" yaml:"preset"`

	// Primary accent color (card borders, labels, headings)
	Accent string `koanf:"accent" yaml:"accent"`

	// Text colors
	Title  string `koanf:"title" yaml:"title"`
	Subtle string `koanf:"subtle" yaml:"subtle"` // dates, secondary columns
	Normal string `koanf:"normal" yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg    string `koanf:"info_fg" yaml:"info_fg"`
	InfoBg    string `koanf:"info_bg" yaml:"info_bg"`
	WarningFg string `koanf:"warning_fg" yaml:"warning_fg"`
	WarningBg string `koanf:"warning_bg" yaml:"warning_bg"`
	ErrorFg   string `koanf:"error_fg" yaml:"error_fg"`
	ErrorBg   string `koanf:"error_bg" yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values from the named preset
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.WarningBg, preset.WarningBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
}
