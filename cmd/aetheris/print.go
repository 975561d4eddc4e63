package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/tinytelemetry/aetheris/internal/model"
)

const titleWidth = 48

var headerStyle = lipgloss.NewStyle().Bold(true)

func printAnimeTable(w io.Writer, items []model.Anime) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no anime found")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, a := range items {
		rank := "-"
		if a.Rank > 0 {
			rank = "#" + strconv.Itoa(a.Rank)
		}
		rows = append(rows, []string{
			strconv.Itoa(a.MalID),
			runewidth.Truncate(a.DisplayTitle(), titleWidth, "…"),
			a.Type,
			a.EpisodesLabel(),
			a.ScoreLabel(),
			rank,
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "TYPE", "EPS", "SCORE", "RANK").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.String())
}

func printAnimeDetail(w io.Writer, d model.AnimeDetail) {
	a := d.Anime
	fmt.Fprintln(w, headerStyle.Render(a.DisplayTitle()))
	if a.Title != a.DisplayTitle() {
		fmt.Fprintln(w, a.Title)
	}
	fmt.Fprintln(w)

	fields := [][2]string{
		{"Score", a.ScoreLabel()},
		{"Type", a.Type},
		{"Episodes", a.EpisodesLabel()},
		{"Status", a.Status},
		{"Released", a.ReleaseDate()},
		{"Season", a.SeasonLabel()},
		{"Studios", a.StudioNames()},
		{"Genres", strings.Join(a.GenreNames(), ", ")},
		{"Members", model.FormatCount(a.Members)},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(w, "%-10s %s\n", f[0], f[1])
	}

	if len(d.Characters) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("Main cast"))
		for _, c := range d.Characters {
			if c.Role != "Main" {
				continue
			}
			line := "  " + c.Character.Name
			if va, ok := c.LeadVoiceActor(); ok {
				line += " (" + va.Person.Name + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
	if d.Statistics != nil {
		fmt.Fprintf(w, "\n%s %s watching, %s completed\n",
			headerStyle.Render("Lists"),
			model.FormatCount(d.Statistics.Watching),
			model.FormatCount(d.Statistics.Completed))
	}
}
