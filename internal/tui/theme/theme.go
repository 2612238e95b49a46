package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors the interface draws with. Every color is an
// AdaptiveColor so light and dark terminals both work.
type Theme interface {
	Name() string

	// Background colors
	Background() lipgloss.AdaptiveColor
	BackgroundPanel() lipgloss.AdaptiveColor
	BackgroundElement() lipgloss.AdaptiveColor

	// Border colors
	Border() lipgloss.AdaptiveColor
	BorderActive() lipgloss.AdaptiveColor

	// Brand colors
	Primary() lipgloss.AdaptiveColor
	Secondary() lipgloss.AdaptiveColor
	Accent() lipgloss.AdaptiveColor

	// Text colors
	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor
	Placeholder() lipgloss.AdaptiveColor

	// Status colors
	Error() lipgloss.AdaptiveColor
	Warning() lipgloss.AdaptiveColor
	Success() lipgloss.AdaptiveColor
	Info() lipgloss.AdaptiveColor

	// Scroll indicator
	ScrollTrack() lipgloss.AdaptiveColor
	ScrollThumb() lipgloss.AdaptiveColor

	// Markdown colors
	MarkdownText() lipgloss.AdaptiveColor
	MarkdownHeading() lipgloss.AdaptiveColor
	MarkdownLink() lipgloss.AdaptiveColor
	MarkdownCode() lipgloss.AdaptiveColor
	MarkdownBlockQuote() lipgloss.AdaptiveColor
	MarkdownEmph() lipgloss.AdaptiveColor
	MarkdownStrong() lipgloss.AdaptiveColor
}

// BaseTheme implements Theme from plain fields; concrete themes fill it in.
type BaseTheme struct {
	ThemeName string

	BackgroundColor        lipgloss.AdaptiveColor
	BackgroundPanelColor   lipgloss.AdaptiveColor
	BackgroundElementColor lipgloss.AdaptiveColor

	BorderColor       lipgloss.AdaptiveColor
	BorderActiveColor lipgloss.AdaptiveColor

	PrimaryColor   lipgloss.AdaptiveColor
	SecondaryColor lipgloss.AdaptiveColor
	AccentColor    lipgloss.AdaptiveColor

	TextColor        lipgloss.AdaptiveColor
	TextMutedColor   lipgloss.AdaptiveColor
	PlaceholderColor lipgloss.AdaptiveColor

	ErrorColor   lipgloss.AdaptiveColor
	WarningColor lipgloss.AdaptiveColor
	SuccessColor lipgloss.AdaptiveColor
	InfoColor    lipgloss.AdaptiveColor

	ScrollTrackColor lipgloss.AdaptiveColor
	ScrollThumbColor lipgloss.AdaptiveColor

	MarkdownTextColor       lipgloss.AdaptiveColor
	MarkdownHeadingColor    lipgloss.AdaptiveColor
	MarkdownLinkColor       lipgloss.AdaptiveColor
	MarkdownCodeColor       lipgloss.AdaptiveColor
	MarkdownBlockQuoteColor lipgloss.AdaptiveColor
	MarkdownEmphColor       lipgloss.AdaptiveColor
	MarkdownStrongColor     lipgloss.AdaptiveColor
}

func (t *BaseTheme) Name() string { return t.ThemeName }

func (t *BaseTheme) Background() lipgloss.AdaptiveColor        { return t.BackgroundColor }
func (t *BaseTheme) BackgroundPanel() lipgloss.AdaptiveColor   { return t.BackgroundPanelColor }
func (t *BaseTheme) BackgroundElement() lipgloss.AdaptiveColor { return t.BackgroundElementColor }

func (t *BaseTheme) Border() lipgloss.AdaptiveColor       { return t.BorderColor }
func (t *BaseTheme) BorderActive() lipgloss.AdaptiveColor { return t.BorderActiveColor }

func (t *BaseTheme) Primary() lipgloss.AdaptiveColor   { return t.PrimaryColor }
func (t *BaseTheme) Secondary() lipgloss.AdaptiveColor { return t.SecondaryColor }
func (t *BaseTheme) Accent() lipgloss.AdaptiveColor    { return t.AccentColor }

func (t *BaseTheme) Text() lipgloss.AdaptiveColor        { return t.TextColor }
func (t *BaseTheme) TextMuted() lipgloss.AdaptiveColor   { return t.TextMutedColor }
func (t *BaseTheme) Placeholder() lipgloss.AdaptiveColor { return t.PlaceholderColor }

func (t *BaseTheme) Error() lipgloss.AdaptiveColor   { return t.ErrorColor }
func (t *BaseTheme) Warning() lipgloss.AdaptiveColor { return t.WarningColor }
func (t *BaseTheme) Success() lipgloss.AdaptiveColor { return t.SuccessColor }
func (t *BaseTheme) Info() lipgloss.AdaptiveColor    { return t.InfoColor }

func (t *BaseTheme) ScrollTrack() lipgloss.AdaptiveColor { return t.ScrollTrackColor }
func (t *BaseTheme) ScrollThumb() lipgloss.AdaptiveColor { return t.ScrollThumbColor }

func (t *BaseTheme) MarkdownText() lipgloss.AdaptiveColor       { return t.MarkdownTextColor }
func (t *BaseTheme) MarkdownHeading() lipgloss.AdaptiveColor    { return t.MarkdownHeadingColor }
func (t *BaseTheme) MarkdownLink() lipgloss.AdaptiveColor       { return t.MarkdownLinkColor }
func (t *BaseTheme) MarkdownCode() lipgloss.AdaptiveColor       { return t.MarkdownCodeColor }
func (t *BaseTheme) MarkdownBlockQuote() lipgloss.AdaptiveColor { return t.MarkdownBlockQuoteColor }
func (t *BaseTheme) MarkdownEmph() lipgloss.AdaptiveColor       { return t.MarkdownEmphColor }
func (t *BaseTheme) MarkdownStrong() lipgloss.AdaptiveColor     { return t.MarkdownStrongColor }
