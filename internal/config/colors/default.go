package colors

// Default returns the default color scheme (site-orange theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		Accent: "#FF8700",

		Title:  "#FFAF5F",
		Subtle: "#767676",
		Normal: "#D0D0D0",

		InfoFg:    "#5FD75F",
		InfoBg:    "#005F00",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF5F5F",
		ErrorBg:   "#5F0000",
	}
}
