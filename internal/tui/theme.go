package tui

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours a theme is built from.
type Palette struct {
	Bright lipgloss.Color
	Main   lipgloss.Color
	Mid    lipgloss.Color
	Dark   lipgloss.Color
	Dim    lipgloss.Color
}

var palettes = map[string]Palette{
	"green": {
		Bright: lipgloss.Color("#39FF14"),
		Main:   lipgloss.Color("#00FF41"),
		Mid:    lipgloss.Color("#00C832"),
		Dark:   lipgloss.Color("#008F11"),
		Dim:    lipgloss.Color("#003B00"),
	},
	"amber": {
		Bright: lipgloss.Color("#FFD54F"),
		Main:   lipgloss.Color("#FFB000"),
		Mid:    lipgloss.Color("#E09000"),
		Dark:   lipgloss.Color("#A66A00"),
		Dim:    lipgloss.Color("#4A3000"),
	},
}

var (
	Black     = lipgloss.Color("#0D0208")
	LightGray = lipgloss.Color("#aaaaaa")
	White     = lipgloss.Color("#e0e0e0")
	Red       = lipgloss.Color("#FF4136")

	// Set by ApplyTheme.
	Accent    lipgloss.Color
	DimAccent lipgloss.Color

	StatusBarStyle  lipgloss.Style
	StatusPathStyle lipgloss.Style
	BannerStyle     lipgloss.Style
	LabelStyle      lipgloss.Style
	PromptStyle     lipgloss.Style
	ResultBoxStyle  lipgloss.Style
	SeparatorStyle  lipgloss.Style
	HelpStyle       lipgloss.Style
	SuccessStyle    lipgloss.Style

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)
)

func init() {
	ApplyTheme("green")
}

// ApplyTheme rebuilds the package styles from the named palette. Unknown
// names fall back to green.
func ApplyTheme(name string) {
	p, ok := palettes[name]
	if !ok {
		p = palettes["green"]
	}
	Accent = p.Main
	DimAccent = p.Dim

	StatusBarStyle = lipgloss.NewStyle().
		Background(p.Dark).
		Foreground(Black).
		Bold(true).
		Padding(0, 1)

	StatusPathStyle = lipgloss.NewStyle().
		Background(p.Main).
		Foreground(Black).
		Bold(true).
		Padding(0, 1)

	BannerStyle = lipgloss.NewStyle().
		Foreground(p.Main).
		Bold(true)

	LabelStyle = lipgloss.NewStyle().
		Foreground(p.Bright).
		Bold(true)

	PromptStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Main).
		Padding(0, 1)

	ResultBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Dark).
		Padding(0, 1)

	SeparatorStyle = lipgloss.NewStyle().
		Foreground(p.Dim)

	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Mid)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Bright)
}

const banner = `
  ┌─┐┌─┐┌┐┌┌┬┐┌─┐┌─┐┌┬┐┌┐ ┌─┐┌─┐┬┌─
  │  │ ││││ │ ├─┤│   │ ├┴┐│ ││ │├┴┐
  └─┘└─┘┘└┘ ┴ ┴ ┴└─┘ ┴ └─┘└─┘└─┘┴ ┴
`

// Banner returns the styled program banner.
func Banner() string {
	return BannerStyle.Render(banner)
}
