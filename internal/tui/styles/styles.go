package styles

import "github.com/charmbracelet/lipgloss"

// Oxocarbon color scheme - IBM Carbon inspired
var (
	OxocarbonBase00 = lipgloss.Color("#262626") // UI elements
	OxocarbonBase01 = lipgloss.Color("#393939") // Borders, secondary UI
	OxocarbonBase02 = lipgloss.Color("#525252")
	OxocarbonBase03 = lipgloss.Color("#767676") // Muted text
	OxocarbonBase04 = lipgloss.Color("#dde1e6") // Secondary foreground
	OxocarbonBase05 = lipgloss.Color("#f2f4f8") // Primary foreground
	OxocarbonWhite  = lipgloss.Color("#ffffff")

	OxocarbonTeal   = lipgloss.Color("#3ddbd9")
	OxocarbonPink   = lipgloss.Color("#ee5396")
	OxocarbonRed    = lipgloss.Color("#ff5252")
	OxocarbonCyan   = lipgloss.Color("#33b1ff")
	OxocarbonGreen  = lipgloss.Color("#42be65")
	OxocarbonPurple = lipgloss.Color("#be95ff") // main accent
	OxocarbonMauve  = lipgloss.Color("#d1aaff")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonWhite).
			Background(OxocarbonPurple).
			Padding(0, 1).
			Bold(true)

	TabStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPurple).
			Padding(0, 2).
			Bold(true).
			Underline(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(OxocarbonMauve).
			Bold(true)

	NormalItemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(OxocarbonBase05)

	// Selected row with a thick left border, mangal style
	SelectedItemStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(OxocarbonPurple).
				BorderLeft(true).
				PaddingLeft(1).
				Foreground(OxocarbonPurple).
				Bold(true)

	MetadataStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03)

	MatchStyle = lipgloss.NewStyle().
			Foreground(OxocarbonTeal).
			Bold(true)

	SearchBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(OxocarbonBase02).
			BorderLeft(true).
			PaddingLeft(1)

	SearchBoxFocusedStyle = SearchBoxStyle.
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(OxocarbonPurple)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(OxocarbonRed).
			Bold(true)

	URLStyle = lipgloss.NewStyle().
			Foreground(OxocarbonCyan).
			Italic(true)

	DefaultTrackStyle = lipgloss.NewStyle().
				Foreground(OxocarbonGreen).
				Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase05).
			Background(OxocarbonBase01).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(OxocarbonPink)

	HelpStyle = lipgloss.NewStyle().
			Foreground(OxocarbonBase03).
			PaddingLeft(1)
)
