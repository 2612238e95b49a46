package styles

const (
	PromptIcon  string = "❯"
	ErrorIcon   string = "✖"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"
	DebugIcon   string = "·"

	ScrollThumb string = "┃"
	ScrollTrack string = "│"
)
