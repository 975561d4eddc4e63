package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/tinytelemetry/aetheris/internal/model"
)

const scoreChartHeight = 8

// renderScoreChart draws the 1-10 vote distribution as a bar chart with the
// list membership totals as a legend.
func renderScoreChart(st *model.Statistics, width int) string {
	if st == nil || len(st.Scores) == 0 {
		return helpStyle.Render("No score distribution available")
	}

	legendWidth := 22
	chartWidth := max(20, width-legendWidth-2)
	barWidth := max(1, (chartWidth-9)/10)

	votes := make(map[int]int, 10)
	for _, s := range st.Scores {
		votes[s.Score] = s.Votes
	}

	bc := barchart.New(chartWidth, scoreChartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
	)
	for score := 1; score <= 10; score++ {
		style := lipgloss.NewStyle().Foreground(scoreColor(score))
		bc.Push(barchart.BarData{
			Label: strconv.Itoa(score),
			Values: []barchart.BarValue{
				{Name: strconv.Itoa(score), Value: float64(votes[score]), Style: style},
			},
		})
	}
	bc.Draw()
	chartLines := strings.Split(bc.View(), "\n")

	legend := []struct {
		name  string
		count int
	}{
		{"Watching", st.Watching},
		{"Completed", st.Completed},
		{"On hold", st.OnHold},
		{"Dropped", st.Dropped},
		{"Plan", st.PlanToWatch},
		{"Total", st.Total},
	}
	legendLines := make([]string, 0, len(legend))
	for _, l := range legend {
		legendLines = append(legendLines, labelStyle.Render(fmt.Sprintf("%-10s", l.name))+valueStyle.Render(fmt.Sprintf("%10s", model.FormatCount(l.count))))
	}

	rows := max(len(chartLines), len(legendLines))
	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		var c, l string
		if i < len(chartLines) {
			c = chartLines[i]
		}
		if i < len(legendLines) {
			l = legendLines[i]
		}
		out[i] = padRight(c, chartWidth) + "  " + l
	}
	return strings.Join(out, "\n")
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 9:
		return ColorGreen
	case score >= 7:
		return ColorBlue
	case score >= 5:
		return ColorOrange
	default:
		return ColorRed
	}
}
