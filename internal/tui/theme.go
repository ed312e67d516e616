package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/codefionn/xl/internal/syntax"
)

// theme is the set of colors the grid is drawn with.
type theme struct {
	headerBG         lipgloss.Color
	headerFG         lipgloss.Color
	selectedBG       lipgloss.Color
	selectedHeaderBG lipgloss.Color
	formulaBarBG     lipgloss.Color
	gridColor        lipgloss.Color
	cellNameBG       lipgloss.Color
	formulaBG        lipgloss.Color
	refSelectionBG   lipgloss.Color
	refRangeBG       lipgloss.Color
	cellBG           lipgloss.Color
	cellFG           lipgloss.Color
	findMatchBG      lipgloss.Color

	tokens map[syntax.Kind]lipgloss.Color
}

var lightTheme = theme{
	headerBG:         lipgloss.Color("#d9d9d9"),
	headerFG:         lipgloss.Color("#000000"),
	selectedBG:       lipgloss.Color("#b4c6e7"),
	selectedHeaderBG: lipgloss.Color("#8ea9db"),
	formulaBarBG:     lipgloss.Color("#f0f0f0"),
	gridColor:        lipgloss.Color("#c8c8c8"),
	cellNameBG:       lipgloss.Color("#c8c8c8"),
	formulaBG:        lipgloss.Color("#ffffff"),
	refSelectionBG:   lipgloss.Color("#c6e0b4"),
	refRangeBG:       lipgloss.Color("#ddebf7"),
	cellBG:           lipgloss.Color("#ffffff"),
	cellFG:           lipgloss.Color("#000000"),
	findMatchBG:      lipgloss.Color("#ffffb4"),
	tokens: map[syntax.Kind]lipgloss.Color{
		syntax.KindFunction:  lipgloss.Color("#0058a3"),
		syntax.KindRef:       lipgloss.Color("#a3005c"),
		syntax.KindNumber:    lipgloss.Color("#1e7b1e"),
		syntax.KindString:    lipgloss.Color("#a35a00"),
		syntax.KindLogical:   lipgloss.Color("#6b2fa3"),
		syntax.KindError:     lipgloss.Color("#c00000"),
		syntax.KindOperator:  lipgloss.Color("#555555"),
		syntax.KindSeparator: lipgloss.Color("#555555"),
	},
}

var darkTheme = theme{
	headerBG:         lipgloss.Color("#323232"),
	headerFG:         lipgloss.Color("#dcdcdc"),
	selectedBG:       lipgloss.Color("#3c5078"),
	selectedHeaderBG: lipgloss.Color("#466496"),
	formulaBarBG:     lipgloss.Color("#282828"),
	gridColor:        lipgloss.Color("#505050"),
	cellNameBG:       lipgloss.Color("#3c3c3c"),
	formulaBG:        lipgloss.Color("#1e1e1e"),
	refSelectionBG:   lipgloss.Color("#3c643c"),
	refRangeBG:       lipgloss.Color("#32465a"),
	cellBG:           lipgloss.Color("#191919"),
	cellFG:           lipgloss.Color("#dcdcdc"),
	findMatchBG:      lipgloss.Color("#78783c"),
	tokens: map[syntax.Kind]lipgloss.Color{
		syntax.KindFunction:  lipgloss.Color("#6cb6ff"),
		syntax.KindRef:       lipgloss.Color("#f47fc0"),
		syntax.KindNumber:    lipgloss.Color("#8ddb8c"),
		syntax.KindString:    lipgloss.Color("#f0b86e"),
		syntax.KindLogical:   lipgloss.Color("#c39ef5"),
		syntax.KindError:     lipgloss.Color("#ff6b6b"),
		syntax.KindOperator:  lipgloss.Color("#a0a0a0"),
		syntax.KindSeparator: lipgloss.Color("#a0a0a0"),
	},
}

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}

// paletteColor is one entry of the visual-mode color picker, selected by
// its index digit.
type paletteColor struct {
	Name string
	Hex  string
}

var palette = [10]paletteColor{
	{"White", "#ffffff"},
	{"Black", "#000000"},
	{"Red", "#ff0000"},
	{"Green", "#00ff00"},
	{"Blue", "#0000ff"},
	{"Yellow", "#ffff00"},
	{"Magenta", "#ff00ff"},
	{"Cyan", "#00ffff"},
	{"Orange", "#ffa500"},
	{"Gray", "#808080"},
}

// modeBadge colors per mode in the status bar.
var modeBadges = map[mode]lipgloss.Style{
	modeReady:     badge("#4682b4", "#ffffff"),
	modeEditing:   badge("#228b22", "#ffffff"),
	modeRefSelect: badge("#800080", "#ffffff"),
	modeFind:      badge("#ffc800", "#000000"),
	modeCommand:   badge("#8a2be2", "#ffffff"),
	modeSave:      badge("#dc143c", "#ffffff"),
	modeOpen:      badge("#0064c8", "#ffffff"),
	modeRowSelect: badge("#c86400", "#ffffff"),
	modeColSelect: badge("#c86400", "#ffffff"),
	modeVisual:    badge("#ff8c00", "#000000"),
	modeHelp:      badge("#4682b4", "#ffffff"),
}

func badge(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Bold(true)
}

var (
	// statusBarStyle is the background of the bottom status line
	statusBarStyle = lipgloss.NewStyle().Background(lipgloss.Color("#2d2d2d")).Foreground(lipgloss.Color("#dcdcdc"))

	// statsBarStyle is the background of the selection statistics line
	statsBarStyle = lipgloss.NewStyle().Background(lipgloss.Color("#232323")).Foreground(lipgloss.Color("#dcdcdc"))

	statusLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	statusValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff"))

	// errorStyle is the style for error messages in the footer
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)
