package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Palette. InitializeSkin may replace these before the program starts.
var (
	ColorBlue   = lipgloss.Color("#5FAFFF")
	ColorNavy   = lipgloss.Color("#1C2541")
	ColorGray   = lipgloss.Color("#7C7C7C")
	ColorWhite  = lipgloss.Color("#EEEEEE")
	ColorRed    = lipgloss.Color("#FF5F5F")
	ColorOrange = lipgloss.Color("#FFAF5F")
	ColorGreen  = lipgloss.Color("#87D787")
	ColorPink   = lipgloss.Color("#FF87D7")
)

var (
	navbarStyle       lipgloss.Style
	brandStyle        lipgloss.Style
	sectionTitleStyle lipgloss.Style
	chartTitleStyle   lipgloss.Style
	helpStyle         lipgloss.Style
	cardStyle         lipgloss.Style
	activeCardStyle   lipgloss.Style
	arrowStyle        lipgloss.Style
	selectedRowStyle  lipgloss.Style
	tabStyle          lipgloss.Style
	activeTabStyle    lipgloss.Style
	labelStyle        lipgloss.Style
	valueStyle        lipgloss.Style
	badgeFillerStyle  lipgloss.Style
	badgeRecapStyle   lipgloss.Style
	statusBarStyle    lipgloss.Style
	statusErrorStyle  lipgloss.Style
	scoreStyle        lipgloss.Style
	searchPromptStyle lipgloss.Style
)

func init() {
	applyStyles()
}

func applyStyles() {
	navbarStyle = lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite)
	brandStyle = lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorPink).Bold(true)
	sectionTitleStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	chartTitleStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	helpStyle = lipgloss.NewStyle().Foreground(ColorGray)
	cardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorGray)
	activeCardStyle = cardStyle.BorderForeground(ColorPink)
	arrowStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	selectedRowStyle = lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorWhite).Bold(true)
	tabStyle = lipgloss.NewStyle().Foreground(ColorGray).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(ColorWhite).Background(ColorBlue).Bold(true).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(ColorGray)
	valueStyle = lipgloss.NewStyle().Foreground(ColorWhite)
	badgeFillerStyle = lipgloss.NewStyle().Foreground(ColorNavy).Background(ColorOrange).Padding(0, 1)
	badgeRecapStyle = lipgloss.NewStyle().Foreground(ColorNavy).Background(ColorGreen).Padding(0, 1)
	statusBarStyle = lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorGray)
	statusErrorStyle = lipgloss.NewStyle().Background(ColorNavy).Foreground(ColorRed)
	scoreStyle = lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	searchPromptStyle = lipgloss.NewStyle().Foreground(ColorPink).Bold(true)
}

// skinFile is the on-disk shape of ~/.config/aetheris/skins/<name>.yml.
type skinFile struct {
	Colors struct {
		Primary    string `yaml:"primary"`
		Background string `yaml:"background"`
		Muted      string `yaml:"muted"`
		Text       string `yaml:"text"`
		Error      string `yaml:"error"`
		Warning    string `yaml:"warning"`
		Success    string `yaml:"success"`
		Accent     string `yaml:"accent"`
	} `yaml:"colors"`
}

// InitializeSkin loads the named skin from configDir/skins and rebuilds the
// styles. The built-in palette is used for "" and "default".
func InitializeSkin(name, configDir string) error {
	if name == "" || name == "default" {
		applyStyles()
		return nil
	}

	path := filepath.Join(configDir, "skins", name+".yml")
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read skin: %w", err)
	}
	var sf skinFile
	if err := yaml.Unmarshal(raw, &sf); err != nil {
		return fmt.Errorf("parse skin %s: %w", path, err)
	}

	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&ColorBlue, sf.Colors.Primary)
	set(&ColorNavy, sf.Colors.Background)
	set(&ColorGray, sf.Colors.Muted)
	set(&ColorWhite, sf.Colors.Text)
	set(&ColorRed, sf.Colors.Error)
	set(&ColorOrange, sf.Colors.Warning)
	set(&ColorGreen, sf.Colors.Success)
	set(&ColorPink, sf.Colors.Accent)
	applyStyles()
	return nil
}
