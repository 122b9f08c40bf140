package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/brieflabs/brief/internal/config"
)

const AppName = "brief"

// ASCII art logo lines for brief - canonical definition
var LogoLines = []string{
	"█▄▄ █▀█ █ █▀▀ █▀▀",
	"█▄█ █▀▄ █ ██▄ █▀ ",
}

const CompactLogo = `brief ›`

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#FFA86B"),
	lipgloss.Color("#95E1D3"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#FF6B6B"),
}

// Brand colors; overridden from config via ApplyTheme.
var (
	PrimaryColor   = lipgloss.Color("#FF6B6B")
	SecondaryColor = lipgloss.Color("#4ECDC4")
	AccentColor    = lipgloss.Color("#95E1D3")

	BackgroundColor = lipgloss.Color("#1A1A2E")
	SurfaceColor    = lipgloss.Color("#16213E")
	TextColor       = lipgloss.Color("#EAEAEA")
	MutedColor      = lipgloss.Color("#94A3B8")

	UnreadColor  = lipgloss.Color("#FFE66D")
	ReadColor    = lipgloss.Color("#64748B")
	SavedColor   = lipgloss.Color("#FFA86B")
	ErrorColor   = lipgloss.Color("#F87171")
	SuccessColor = lipgloss.Color("#4ADE80")
)

// Styled components
var (
	LogoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SurfaceColor).
			Bold(true).
			Padding(0, 2)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	UnreadItemStyle = lipgloss.NewStyle().
			Foreground(UnreadColor).
			Bold(true)

	ReadItemStyle = lipgloss.NewStyle().
			Foreground(ReadColor)

	SavedMarkStyle = lipgloss.NewStyle().
			Foreground(SavedColor)

	PositiveStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	NegativeStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	NeutralStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	TimeStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Faint(true)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(MutedColor)
)

// ApplyTheme overrides the brand colors from config. Styles reference the
// color vars at render time through these reassignments, so this must run
// before the program starts.
func ApplyTheme(cfg *config.Config) {
	c := cfg.UI.Colors
	setColor(&PrimaryColor, c.Primary)
	setColor(&SecondaryColor, c.Secondary)
	setColor(&AccentColor, c.Accent)
	setColor(&BackgroundColor, c.Background)
	setColor(&SurfaceColor, c.Surface)
	setColor(&TextColor, c.Text)
	setColor(&MutedColor, c.Muted)
	setColor(&ErrorColor, c.Error)
	setColor(&SuccessColor, c.Success)

	LogoStyle = LogoStyle.Foreground(PrimaryColor)
	TitleStyle = TitleStyle.Foreground(TextColor).Background(SurfaceColor)
	HeaderStyle = HeaderStyle.Foreground(SecondaryColor)
	ReadItemStyle = ReadItemStyle.Foreground(ReadColor)
	PositiveStyle = PositiveStyle.Foreground(SuccessColor)
	NegativeStyle = NegativeStyle.Foreground(ErrorColor)
	NeutralStyle = NeutralStyle.Foreground(MutedColor)
	HelpStyle = HelpStyle.Foreground(MutedColor)
	TimeStyle = TimeStyle.Foreground(MutedColor)
	ErrorMessageStyle = ErrorMessageStyle.Foreground(ErrorColor)
	SeparatorStyle = SeparatorStyle.Foreground(MutedColor)
}

func setColor(dst *lipgloss.Color, hex string) {
	if hex != "" {
		*dst = lipgloss.Color(hex)
	}
}

func GetWelcomeMessage() string {
	return GetCompactBanner("Press r to fetch the latest articles")
}

func GetCompactBanner(message string) string {
	var coloredLines []string
	for _, line := range LogoLines {
		coloredLines = append(coloredLines, LogoStyle.Render(line))
	}

	logo := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render(message),
	)
}

func ShowBanner(version string) {
	lines := make([]string, len(LogoLines)+1)
	copy(lines, LogoLines)
	lines[len(LogoLines)] = ""

	versionTag := version
	if versionTag != "" && versionTag != "dev" {
		if versionTag[0] != 'v' && versionTag[0] != 'V' {
			versionTag = "v" + versionTag
		}
		lines = append(lines, fmt.Sprintf("  your news, briefly %s", versionTag))
	} else {
		lines = append(lines, "  your news, briefly")
	}

	var coloredLines []string
	for i, line := range lines {
		if line == "" {
			coloredLines = append(coloredLines, line)
			continue
		}

		colorIdx := i % len(BannerColors)
		style := lipgloss.NewStyle().
			Foreground(BannerColors[colorIdx]).
			Bold(i < len(LogoLines))

		coloredLines = append(coloredLines, style.Render(line))
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#4ECDC4")).
		Padding(1, 3).
		MarginTop(1)

	banner := lipgloss.JoinVertical(lipgloss.Center, coloredLines...)
	output := borderStyle.Render(banner)

	fmt.Println(lipgloss.NewStyle().
		Width(60).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(output))
}
