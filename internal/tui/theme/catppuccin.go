package theme

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/lucasb-eyer/go-colorful"
)

// NewCatppuccinTheme pairs Latte for light terminals with dark for dark
// ones. Placeholder and scroll track colors are blended from the palette.
func NewCatppuccinTheme(name string, dark catppuccin.Flavor) *BaseTheme {
	light := catppuccin.Latte
	pair := func(pick func(catppuccin.Flavor) catppuccin.Color) lipglossColor {
		return adaptive(pick(light).Hex, pick(dark).Hex)
	}

	return &BaseTheme{
		ThemeName: name,

		BackgroundColor:        pair(catppuccin.Flavor.Base),
		BackgroundPanelColor:   pair(catppuccin.Flavor.Mantle),
		BackgroundElementColor: pair(catppuccin.Flavor.Surface0),

		BorderColor:       pair(catppuccin.Flavor.Surface1),
		BorderActiveColor: pair(catppuccin.Flavor.Lavender),

		PrimaryColor:   pair(catppuccin.Flavor.Mauve),
		SecondaryColor: pair(catppuccin.Flavor.Blue),
		AccentColor:    pair(catppuccin.Flavor.Peach),

		TextColor:      pair(catppuccin.Flavor.Text),
		TextMutedColor: pair(catppuccin.Flavor.Subtext0),
		PlaceholderColor: adaptive(
			Blend(light.Overlay1().Hex, light.Base().Hex, 0.35),
			Blend(dark.Overlay1().Hex, dark.Base().Hex, 0.35),
		),

		ErrorColor:   pair(catppuccin.Flavor.Red),
		WarningColor: pair(catppuccin.Flavor.Yellow),
		SuccessColor: pair(catppuccin.Flavor.Green),
		InfoColor:    pair(catppuccin.Flavor.Sky),

		ScrollTrackColor: adaptive(
			Blend(light.Surface0().Hex, light.Base().Hex, 0.5),
			Blend(dark.Surface0().Hex, dark.Base().Hex, 0.5),
		),
		ScrollThumbColor: pair(catppuccin.Flavor.Overlay2),

		MarkdownTextColor:       pair(catppuccin.Flavor.Text),
		MarkdownHeadingColor:    pair(catppuccin.Flavor.Mauve),
		MarkdownLinkColor:       pair(catppuccin.Flavor.Blue),
		MarkdownCodeColor:       pair(catppuccin.Flavor.Green),
		MarkdownBlockQuoteColor: pair(catppuccin.Flavor.Overlay1),
		MarkdownEmphColor:       pair(catppuccin.Flavor.Yellow),
		MarkdownStrongColor:     pair(catppuccin.Flavor.Peach),
	}
}

// Blend mixes two hex colors in Lab space; t=0 is a, t=1 is b. Unparseable
// input returns a unchanged.
func Blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return a
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

func init() {
	RegisterTheme("mocha", NewCatppuccinTheme("mocha", catppuccin.Mocha))
	RegisterTheme("macchiato", NewCatppuccinTheme("macchiato", catppuccin.Macchiato))
	RegisterTheme("frappe", NewCatppuccinTheme("frappe", catppuccin.Frappe))
	RegisterTheme("latte", NewCatppuccinTheme("latte", catppuccin.Latte))
}
