// ABOUTME: Shared lipgloss styles for consistent CLI output
// ABOUTME: Palette, text styles, nutrient coverage bars and fitness sparklines

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#16A34A") // Green
	Secondary = lipgloss.Color("#10B981") // Emerald
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	Info      = lipgloss.Color("#3B82F6") // Blue
	Empty     = lipgloss.Color("#374151") // Dark gray

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted)

	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)

// Coverage bands in percent of a daily target
const (
	CoverageLow  = 80
	CoverageHigh = 150
)

// CoverageColor picks the band color for a coverage percentage
func CoverageColor(percent int) lipgloss.Color {
	switch {
	case percent < CoverageLow:
		return Warning
	case percent > CoverageHigh:
		return Danger
	default:
		return Secondary
	}
}

// CoverageBar renders a coverage bar where full width is 200% of target
func CoverageBar(percent, width int) string {
	if width <= 0 {
		width = 20
	}
	p := percent
	if p < 0 {
		p = 0
	}
	if p > 200 {
		p = 200
	}
	filled := p * width / 200
	target := width / 2

	var bar strings.Builder
	bar.WriteString("[")
	fill := lipgloss.NewStyle().Foreground(CoverageColor(percent))
	empty := lipgloss.NewStyle().Foreground(Empty)
	for i := 0; i < width; i++ {
		switch {
		case i < filled:
			bar.WriteString(fill.Render("█"))
		case i == target:
			bar.WriteString(empty.Render("│"))
		default:
			bar.WriteString(empty.Render("░"))
		}
	}
	bar.WriteString("]")
	return fmt.Sprintf("%s %s", bar.String(), fill.Render(fmt.Sprintf("%3d%%", percent)))
}

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a compact trend of values (most recent last)
func Sparkline(values []float64, width int, color lipgloss.Color) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	sampled := sampleValues(values, width)
	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	result := make([]rune, len(sampled))
	for i, v := range sampled {
		result[i] = valueToBlock(v, lo, hi)
	}

	style := lipgloss.NewStyle()
	if color != "" {
		style = style.Foreground(color)
	}
	return style.Render(string(result))
}

// sampleValues picks evenly spaced values when there are more than width.
// Shorter inputs are returned as-is rather than padded.
func sampleValues(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}
	result := make([]float64, width)
	ratio := float64(len(values)) / float64(width)
	for i := range result {
		idx := int(float64(i) * ratio)
		if idx >= len(values) {
			idx = len(values) - 1
		}
		result[i] = values[idx]
	}
	result[width-1] = values[len(values)-1]
	return result
}

func valueToBlock(value, lo, hi float64) rune {
	if hi == lo {
		return SparklineBlocks[len(SparklineBlocks)/2]
	}
	idx := int((value - lo) / (hi - lo) * float64(len(SparklineBlocks)-1))
	idx = max(0, min(idx, len(SparklineBlocks)-1))
	return SparklineBlocks[idx]
}

// EcoStyle colors an eco grade
func EcoStyle(grade string) lipgloss.Style {
	switch grade {
	case "A+", "A":
		return StatusOK
	case "B", "C":
		return StatusWarning
	default:
		return StatusCritical
	}
}
