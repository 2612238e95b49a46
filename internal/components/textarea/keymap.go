package textarea

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the set of bindings Update matches.
type KeyMap struct {
	CharacterBackward key.Binding
	CharacterForward  key.Binding
	WordBackward      key.Binding
	WordForward       key.Binding
	LinePrevious      key.Binding
	LineNext          key.Binding
	LineStart         key.Binding
	LineEnd           key.Binding
	InputBegin        key.Binding
	InputEnd          key.Binding

	DeleteCharacterBackward key.Binding
	DeleteCharacterForward  key.Binding
	DeleteWordBackward      key.Binding
	DeleteWordForward       key.Binding
	DeleteBeforeCursor      key.Binding
	DeleteAfterCursor       key.Binding

	InsertNewline key.Binding
	Paste         key.Binding
}

func bind(help string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help))
}

// DefaultKeyMap returns readline-style bindings. Enter inserts a newline;
// embedders that submit on enter intercept it first. ctrl+p, ctrl+n and
// ctrl+t are left free for the embedding screen.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		CharacterBackward: bind("left", "left", "ctrl+b"),
		CharacterForward:  bind("right", "right", "ctrl+f"),
		WordBackward:      bind("word left", "alt+left", "alt+b"),
		WordForward:       bind("word right", "alt+right", "alt+f"),
		LinePrevious:      bind("up", "up"),
		LineNext:          bind("down", "down"),
		LineStart:         bind("start of line", "home", "ctrl+a"),
		LineEnd:           bind("end of line", "end", "ctrl+e"),
		InputBegin:        bind("start of input", "ctrl+home", "alt+<"),
		InputEnd:          bind("end of input", "ctrl+end", "alt+>"),

		DeleteCharacterBackward: bind("delete left", "backspace", "ctrl+h"),
		DeleteCharacterForward:  bind("delete right", "delete", "ctrl+d"),
		DeleteWordBackward:      bind("delete word left", "alt+backspace", "ctrl+w"),
		DeleteWordForward:       bind("delete word right", "alt+delete", "alt+d"),
		DeleteBeforeCursor:      bind("delete to line start", "ctrl+u"),
		DeleteAfterCursor:       bind("delete to line end", "ctrl+k"),

		InsertNewline: bind("newline", "enter", "ctrl+j", "alt+enter"),
		Paste:         bind("paste", "ctrl+v"),
	}
}
