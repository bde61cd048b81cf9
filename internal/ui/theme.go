package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ReConnect theme shared by the CLI and the board.

const (
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconOpen    = "⬜"
	IconTrophy  = "🏆"
	IconCoin    = "🪙"
	IconFire    = "🔥"
	IconGift    = "🎁"
	IconTrash   = "🗑️"
	IconError   = "🧨"
	IconLoop    = "🔁"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	ActiveTab   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary).Padding(0, 1)
	InactiveTab = lipgloss.NewStyle().Foreground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render(IconTrophy + " LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// DifficultyText colors a difficulty name.
func DifficultyText(d string) string {
	switch strings.ToLower(d) {
	case "easy":
		return Good.Render(d)
	case "medium":
		return Warn.Render(d)
	case "hard":
		return Bad.Render(d)
	default:
		return Muted.Render(d)
	}
}

func CheckIcon(done bool) string {
	if done {
		return IconDone
	}
	return IconOpen
}

// ClampRatio limits r to [0,1].
func ClampRatio(r float64) float64 {
	return min(max(r, 0), 1)
}

// ProgressBar renders ratio (clamped) as a fixed-width bar.
func ProgressBar(ratio float64, width int) string {
	if width < 3 {
		width = 3
	}
	filled := int(ClampRatio(ratio) * float64(width))
	return "[" + Good.Render(strings.Repeat("#", filled)) + Muted.Render(strings.Repeat("-", width-filled)) + "]"
}
