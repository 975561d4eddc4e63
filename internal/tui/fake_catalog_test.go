package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/aetheris/internal/model"
)

// fakeCatalog serves canned pages and records which listings were asked for.
type fakeCatalog struct {
	season   model.AnimePage
	upcoming model.AnimePage
	top      model.AnimePage
	search   model.AnimePage

	anime      map[int]model.AnimeDetail
	characters map[int]model.CharacterDetail
	people     map[int]model.PersonDetail

	calls []string
}

func (f *fakeCatalog) SeasonNow(_ context.Context, page int) (model.AnimePage, error) {
	f.calls = append(f.calls, fmt.Sprintf("season:%d", page))
	return f.season, nil
}

func (f *fakeCatalog) SeasonUpcoming(_ context.Context, page int) (model.AnimePage, error) {
	f.calls = append(f.calls, fmt.Sprintf("upcoming:%d", page))
	return f.upcoming, nil
}

func (f *fakeCatalog) TopAnime(_ context.Context, q model.TopQuery) (model.AnimePage, error) {
	f.calls = append(f.calls, fmt.Sprintf("top:%s:%s:%d", q.Filter, q.Type, q.Page))
	return f.top, nil
}

func (f *fakeCatalog) SearchAnime(_ context.Context, query string, page int) (model.AnimePage, error) {
	f.calls = append(f.calls, fmt.Sprintf("search:%s:%d", query, page))
	return f.search, nil
}

func (f *fakeCatalog) AnimeDetail(_ context.Context, id int) (model.AnimeDetail, error) {
	f.calls = append(f.calls, fmt.Sprintf("anime:%d", id))
	d, ok := f.anime[id]
	if !ok {
		return model.AnimeDetail{}, fmt.Errorf("anime %d: not found", id)
	}
	return d, nil
}

func (f *fakeCatalog) CharacterDetail(_ context.Context, id int) (model.CharacterDetail, error) {
	f.calls = append(f.calls, fmt.Sprintf("character:%d", id))
	d, ok := f.characters[id]
	if !ok {
		return model.CharacterDetail{}, fmt.Errorf("character %d: not found", id)
	}
	return d, nil
}

func (f *fakeCatalog) PersonDetail(_ context.Context, id int) (model.PersonDetail, error) {
	f.calls = append(f.calls, fmt.Sprintf("person:%d", id))
	d, ok := f.people[id]
	if !ok {
		return model.PersonDetail{}, fmt.Errorf("person %d: not found", id)
	}
	return d, nil
}

// runCmd executes cmd and flattens batches. Only use it on commands that do
// not contain tea.Tick timers.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// firstOf returns the first message of type T.
func firstOf[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func animeList(ids ...int) []model.Anime {
	out := make([]model.Anime, len(ids))
	for i, id := range ids {
		out[i] = model.Anime{MalID: id, Title: fmt.Sprintf("Anime %d", id), Type: "TV", Score: 7.5}
	}
	return out
}
