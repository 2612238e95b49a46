package theme

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type lipglossColor = lipgloss.AdaptiveColor

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Manager handles theme registration, selection, and retrieval.
type Manager struct {
	themes      map[string]Theme
	currentName string
	mu          sync.RWMutex
}

var globalManager = &Manager{
	themes: make(map[string]Theme),
}

const defaultThemeName = "mocha"

// RegisterTheme adds a new theme to the registry. The first theme
// registered becomes current.
func RegisterTheme(name string, theme Theme) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	globalManager.themes[name] = theme
	if globalManager.currentName == "" {
		globalManager.currentName = name
	}
}

// SetTheme changes the active theme to the one with the specified name.
func SetTheme(name string) error {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	if _, exists := globalManager.themes[name]; !exists {
		return fmt.Errorf("theme '%s' not found", name)
	}
	globalManager.currentName = name
	return nil
}

// CurrentTheme returns the currently active theme.
func CurrentTheme() Theme {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	if globalManager.currentName == "" {
		return nil
	}
	return globalManager.themes[globalManager.currentName]
}

// CurrentThemeName returns the name of the currently active theme.
func CurrentThemeName() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	return globalManager.currentName
}

// AvailableThemes returns the registered theme names, the default first.
func AvailableThemes() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	names := make([]string, 0, len(globalManager.themes))
	for name := range globalManager.themes {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if a == defaultThemeName {
			return -1
		} else if b == defaultThemeName {
			return 1
		}
		return strings.Compare(a, b)
	})
	return names
}

// NextTheme returns the theme name after the current one, wrapping around.
func NextTheme() string {
	names := AvailableThemes()
	if len(names) == 0 {
		return ""
	}
	i := slices.Index(names, CurrentThemeName())
	return names[(i+1)%len(names)]
}

// GetTheme returns a specific theme by name, or nil.
func GetTheme(name string) Theme {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()

	return globalManager.themes[name]
}
