package styles

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/sst/growingtext/internal/tui/theme"
)

const defaultMargin = 1

func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }

// MarkdownRenderer returns a glamour renderer styled from the current theme.
func MarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyleConfig(theme.CurrentTheme())),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r, nil
}

func markdownStyleConfig(t theme.Theme) ansi.StyleConfig {
	text := AdaptiveColorToString(t.MarkdownText())

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: text},
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:  AdaptiveColorToString(t.MarkdownBlockQuote()),
				Italic: boolPtr(true),
				Prefix: "┃ ",
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr(" "),
		},
		Paragraph: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: text},
		},
		List: ansi.StyleList{
			LevelIndent: defaultMargin,
			StyleBlock: ansi.StyleBlock{
				IndentToken:    stringPtr(" "),
				StylePrimitive: ansi.StylePrimitive{Color: text},
			},
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       AdaptiveColorToString(t.MarkdownHeading()),
				Bold:        boolPtr(true),
			},
		},
		H1:   ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "# "}},
		H2:   ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "## "}},
		H3:   ansi.StyleBlock{StylePrimitive: ansi.StylePrimitive{Prefix: "### "}},
		Text: ansi.StylePrimitive{Color: text},
		Emph: ansi.StylePrimitive{
			Color:  AdaptiveColorToString(t.MarkdownEmph()),
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Color: AdaptiveColorToString(t.MarkdownStrong()),
			Bold:  boolPtr(true),
		},
		Link: ansi.StylePrimitive{
			Color:     AdaptiveColorToString(t.MarkdownLink()),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: AdaptiveColorToString(t.MarkdownLink()),
			Bold:  boolPtr(true),
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: AdaptiveColorToString(t.MarkdownCode()),
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: AdaptiveColorToString(t.MarkdownCode()),
				},
				Margin: uintPtr(defaultMargin),
			},
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  AdaptiveColorToString(t.TextMuted()),
			Format: "\n─────────────────────────────────────────\n",
		},
	}
}

// AdaptiveColorToString picks the side of color matching the terminal
// background and normalizes it to a hex string. Empty colors map to nil.
func AdaptiveColorToString(color lipgloss.AdaptiveColor) *string {
	hex := color.Light
	if lipgloss.HasDarkBackground() {
		hex = color.Dark
	}
	if hex == "" {
		return nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return stringPtr(hex)
	}
	return stringPtr(c.Hex())
}
