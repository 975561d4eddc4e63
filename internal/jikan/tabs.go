package jikan

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/aetheris/internal/model"
)

// TopTab is one of the listings offered on the top anime page.
type TopTab string

const (
	TabAll      TopTab = "all"
	TabUpcoming TopTab = "upcoming"
	TabAiring   TopTab = "airing"
	TabMovie    TopTab = "movie"
	TabTV       TopTab = "tv"
)

// TopTabs is the display order of the tabs.
var TopTabs = []TopTab{TabAll, TabUpcoming, TabAiring, TabMovie, TabTV}

// Label is the tab caption.
func (t TopTab) Label() string {
	switch t {
	case TabAll:
		return "All"
	case TabUpcoming:
		return "Upcoming"
	case TabAiring:
		return "Airing"
	case TabMovie:
		return "Movie"
	case TabTV:
		return "TV Series"
	default:
		return string(t)
	}
}

// ParseTopTab validates a tab name.
func ParseTopTab(s string) (TopTab, error) {
	for _, t := range TopTabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q (want all, upcoming, airing, movie or tv)", s)
}

// Query returns the top anime query behind the tab.
func (t TopTab) Query(page int) model.TopQuery {
	q := model.TopQuery{Page: page}
	switch t {
	case TabAiring:
		q.Filter = "airing"
	case TabMovie:
		q.Type = "movie"
	case TabTV:
		q.Type = "tv"
	}
	return q
}

// Fetch loads one page of the tab. Upcoming lists next season rather than
// the ranking.
func (t TopTab) Fetch(ctx context.Context, cat model.AnimeLister, page int) (model.AnimePage, error) {
	if t == TabUpcoming {
		return cat.SeasonUpcoming(ctx, page)
	}
	return cat.TopAnime(ctx, t.Query(page))
}
