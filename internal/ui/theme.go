package ui

import "strings"

// Theme bundles palette + symbols + box borders. A Theme is an immutable
// value: renderers receive it by value, nothing mutates a shared palette.
type Theme struct {
	Title, Muted, Accent, Success, Error, Pending string
	HighPriority, MediumPriority, LowPriority     string
	CornerTL, CornerTR, CornerBL, CornerBR        string
	H, V                                          string
	SymDone, SymPending, SymOverdue               string
	NoColor                                       bool
}

// ThemeByName returns the named theme, defaulting to the standard palette
// for unknown names.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Pending: "\033[93m",
			HighPriority: "\033[91m", MediumPriority: "\033[93m", LowPriority: "\033[92m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymPending: "•", SymOverdue: "!",
		}
	case "mono":
		return Theme{
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "[x]", SymPending: "[ ]", SymOverdue: "[!]",
			NoColor: true,
		}
	default:
		return Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Pending: fgYellow,
			HighPriority: fgRed, MediumPriority: fgYellow, LowPriority: fgGreen,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymDone: "✔", SymPending: "•", SymOverdue: "!",
		}
	}
}

// PriorityColor picks the palette entry for a priority label.
func (t Theme) PriorityColor(priority string) string {
	switch priority {
	case "High Priority":
		return t.HighPriority
	case "Low Priority":
		return t.LowPriority
	}
	return t.MediumPriority
}
