package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Key identifies the anime for stable card keys.
func (a Anime) Key() string {
	return strconv.Itoa(a.MalID)
}

// DisplayTitle prefers the English title.
func (a Anime) DisplayTitle() string {
	if strings.TrimSpace(a.TitleEnglish) != "" {
		return a.TitleEnglish
	}
	return a.Title
}

// ScoreLabel renders the score, or N/A when unscored.
func (a Anime) ScoreLabel() string {
	if a.Score <= 0 {
		return "N/A"
	}
	return strconv.FormatFloat(a.Score, 'f', 2, 64)
}

// EpisodesLabel renders the episode count, or ? when unknown.
func (a Anime) EpisodesLabel() string {
	if a.Episodes <= 0 {
		return "?"
	}
	return strconv.Itoa(a.Episodes)
}

// DurationMinutes returns the leading number of the duration ("24 min per ep" -> "24").
func (a Anime) DurationMinutes() string {
	fields := strings.Fields(a.Duration)
	if len(fields) == 0 || fields[0] == "Unknown" {
		return "?"
	}
	return fields[0]
}

// ReleaseDate renders the start date as d/m/yyyy, or TBA.
func (a Anime) ReleaseDate() string {
	from := a.Aired.Prop.From
	if !from.Known() {
		return "TBA"
	}
	return fmt.Sprintf("%d/%d/%d", from.Day, from.Month, from.Year)
}

// SeasonLabel renders "Fall 2024", or the empty string when unknown.
func (a Anime) SeasonLabel() string {
	if a.Season == "" {
		if a.Year > 0 {
			return strconv.Itoa(a.Year)
		}
		return ""
	}
	s := strings.ToUpper(a.Season[:1]) + a.Season[1:]
	if a.Year > 0 {
		s += " " + strconv.Itoa(a.Year)
	}
	return s
}

// GenreNames returns the genre names in order.
func (a Anime) GenreNames() []string {
	return entityNames(a.Genres)
}

// StudioNames joins the studio names.
func (a Anime) StudioNames() string {
	return strings.Join(entityNames(a.Studios), ", ")
}

// ProducerNames joins the producer names.
func (a Anime) ProducerNames() string {
	return strings.Join(entityNames(a.Producers), ", ")
}

func entityNames(es []Entity) []string {
	names := make([]string, 0, len(es))
	for _, e := range es {
		names = append(names, e.Name)
	}
	return names
}

// FormatLongDate renders an ISO timestamp as "January 2, 2006", or TBA.
func FormatLongDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return "TBA"
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return "TBA"
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Country describes where a dub language comes from.
type Country struct {
	Flag string
	Name string
	// Color is a 256-color palette index for the label.
	Color string
}

var countries = map[string]Country{
	"Japanese":        {Flag: "🇯🇵", Name: "Japan", Color: "203"},
	"English":         {Flag: "🇺🇸", Name: "United States", Color: "75"},
	"Korean":          {Flag: "🇰🇷", Name: "Korea", Color: "141"},
	"French":          {Flag: "🇫🇷", Name: "France", Color: "105"},
	"German":          {Flag: "🇩🇪", Name: "Germany", Color: "221"},
	"Italian":         {Flag: "🇮🇹", Name: "Italy", Color: "114"},
	"Spanish":         {Flag: "🇪🇸", Name: "Spain", Color: "215"},
	"Portuguese (BR)": {Flag: "🇧🇷", Name: "Brazil", Color: "212"},
	"Mandarin":        {Flag: "🇨🇳", Name: "China", Color: "160"},
	"Cantonese":       {Flag: "🇭🇰", Name: "Hong Kong", Color: "178"},
}

var otherCountry = Country{Flag: "🌐", Name: "Other", Color: "245"}

// CountryForLanguage maps a dub language to its country.
func CountryForLanguage(language string) Country {
	if c, ok := countries[language]; ok {
		return c
	}
	return otherCountry
}

// MergeUnique appends incoming to existing, skipping anime already present.
// Order is preserved; the first occurrence of an ID wins.
func MergeUnique(existing, incoming []Anime) []Anime {
	seen := make(map[int]struct{}, len(existing)+len(incoming))
	out := make([]Anime, 0, len(existing)+len(incoming))
	for _, list := range [][]Anime{existing, incoming} {
		for _, a := range list {
			if _, dup := seen[a.MalID]; dup {
				continue
			}
			seen[a.MalID] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
