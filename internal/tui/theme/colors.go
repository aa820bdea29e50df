package theme

// Terminal-compatible color constants using ANSI standard colors
// These colors work consistently across different terminal themes
const (
	// Primary colors (ANSI standard)
	ColorWhite        = "#FFFFFF" // ANSI 15 - primary text
	ColorBrightBlack  = "#808080" // ANSI 8 - secondary text
	ColorBrightBlue   = "#5C7CFA" // ANSI 12 - primary accent
	ColorBrightCyan   = "#51CF66" // ANSI 14 - secondary accent
	ColorBrightGreen  = "#51CF66" // ANSI 10 - success
	ColorBrightYellow = "#FFD43B" // ANSI 11 - warning
	ColorBrightRed    = "#FF6B6B" // ANSI 9 - error

	// Picker accents
	ColorSelected    = "#74C0FC" // selected material marker
	ColorScopeAll    = "#B197FC" // "all projects" scope
	ColorScopeNone   = "#FCC419" // unassigned scope
	ColorScopeOne    = "#69DB7C" // concrete project scope
	ColorPlaceholder = "#666666"
)

// GetScopeColor returns the accent color for a scope kind ordinal
// (0 all, 1 unassigned, 2 project).
func GetScopeColor(kind int) string {
	switch kind {
	case 1:
		return ColorScopeNone
	case 2:
		return ColorScopeOne
	default:
		return ColorScopeAll
	}
}

// GetMessageColor returns the color for a given message type
// (0 info, 1 success, 2 warning, 3 error).
func GetMessageColor(messageType int) string {
	switch messageType {
	case 1:
		return ColorBrightGreen
	case 2:
		return ColorBrightYellow
	case 3:
		return ColorBrightRed
	default:
		return ColorBrightCyan
	}
}

// GetMessageIcon returns the icon for a given message type
// (0 info, 1 success, 2 warning, 3 error).
func GetMessageIcon(messageType int) string {
	switch messageType {
	case 1:
		return "✅ "
	case 2:
		return "⚠️ "
	case 3:
		return "❌ "
	default:
		return "ℹ️ "
	}
}
