package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/aetheris/internal/carousel"
	"github.com/tinytelemetry/aetheris/internal/model"
)

func newLoadedHome(t *testing.T) *HomePage {
	t.Helper()
	p := NewHomePage(&fakeCatalog{}, carousel.DefaultConfig(), false)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	items := animeList(10, 20, 30)
	items = append(items, items[0]) // upstream sometimes repeats an entry
	cmd, _ := p.Update(seasonLoadedMsg{page: model.AnimePage{Items: items}})
	if cmd == nil {
		t.Fatal("season load should start the carousel settle timer")
	}
	return p
}

func TestHomePage_SeasonFeedsCarouselAndList(t *testing.T) {
	t.Parallel()
	p := newLoadedHome(t)

	if got := p.strip.ctrl.Len(); got != 3 {
		t.Fatalf("carousel items = %d, want 3 (duplicates dropped)", got)
	}
	if got := p.strip.ctrl.State().ViewportWidthPx; got != 100-2*carouselArrowWidth {
		t.Fatalf("carousel viewport = %d, want %d", got, 100-2*carouselArrowWidth)
	}
	view := p.View(100, 29)
	for _, want := range []string{"Current Season", "This Season", "Anime 20"} {
		if !strings.Contains(view, want) {
			t.Fatalf("home view missing %q", want)
		}
	}
}

func TestHomePage_EnterOpensSelectedAnime(t *testing.T) {
	t.Parallel()
	p := newLoadedHome(t)

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.PageID != animePageID || nav.Params != 20 {
		t.Fatalf("nav = %+v, want anime 20", nav)
	}
}

func TestHomePage_StepKeysAnimate(t *testing.T) {
	t.Parallel()
	p := newLoadedHome(t)

	cmd, _ := p.Update(keyRunes("l"))
	if cmd == nil || !p.strip.ctrl.Animating() {
		t.Fatal("l should start a step animation")
	}
}

func TestHomePage_SearchBox(t *testing.T) {
	t.Parallel()
	p := newLoadedHome(t)

	p.Update(keyRunes("/"))
	if !p.CapturingInput() {
		t.Fatal("/ should focus the search box")
	}
	p.Update(keyRunes("frieren"))
	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.PageID != searchPageID || nav.Params != "frieren" {
		t.Fatalf("nav = %+v, want search frieren", nav)
	}
	if p.CapturingInput() {
		t.Fatal("search box still focused after submit")
	}
}

func TestHomePage_LeaveStopsCarousel(t *testing.T) {
	t.Parallel()
	p := newLoadedHome(t)

	p.Leave()
	if got := p.strip.ctrl.IdleReason(); got != carousel.ReasonStopped {
		t.Fatalf("idle reason after leave = %v, want stopped", got)
	}

	if cmd := p.Enter(nil); cmd == nil {
		t.Fatal("coming back should restart the carousel")
	}
	if got := p.strip.ctrl.IdleReason(); got != carousel.ReasonNone {
		t.Fatalf("idle reason after enter = %v, want none", got)
	}
}

func TestHomePage_SeasonArrivingWhileHiddenKeepsCarouselStopped(t *testing.T) {
	t.Parallel()
	app := New(Options{Catalog: &fakeCatalog{}, Carousel: carousel.DefaultConfig()})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app.Init()

	// Leave for the rankings before the season fetch comes back.
	app.Update(keyRunes("t"))
	if app.ActivePage() != topPageID {
		t.Fatalf("active = %s, want top", app.ActivePage())
	}
	app.Update(seasonLoadedMsg{page: model.AnimePage{Items: animeList(1, 2, 3)}})

	home := app.pages[homePageID].(*HomePage)
	if got := home.strip.ctrl.IdleReason(); got != carousel.ReasonStopped {
		t.Fatalf("idle reason = %v, want stopped while hidden", got)
	}
	app.Update(carouselFireMsg{fire: carousel.Fire{Kind: carousel.TimerSettle, Gen: 1}})
	app.Update(carouselFireMsg{fire: carousel.Fire{Kind: carousel.TimerAuto, Gen: 1}})
	if home.strip.ctrl.Mode() != carousel.Idle || home.strip.ctrl.Offset() != 0 {
		t.Fatalf("hidden carousel moved: mode=%v offset=%d", home.strip.ctrl.Mode(), home.strip.ctrl.Offset())
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.ActivePage() != homePageID {
		t.Fatalf("active = %s, want home", app.ActivePage())
	}
	if home.strip.ctrl.Len() != 3 {
		t.Fatalf("carousel items = %d, want the season loaded while hidden", home.strip.ctrl.Len())
	}
	if got := home.strip.ctrl.IdleReason(); got != carousel.ReasonNone {
		t.Fatalf("idle reason after returning = %v, want none", got)
	}
}

func TestHomePage_SeasonErrorReported(t *testing.T) {
	t.Parallel()
	p := NewHomePage(&fakeCatalog{}, carousel.DefaultConfig(), false)

	cmd, _ := p.Update(seasonLoadedMsg{err: errors.New("boom")})
	msg, ok := firstOf[ErrorMsg](runCmd(cmd))
	if !ok || msg.Source != "season" {
		t.Fatalf("season error not reported: %+v", msg)
	}
	if p.strip.ctrl.Len() != 0 {
		t.Fatal("carousel should stay empty")
	}
}

func TestHomePage_FetchesSeason(t *testing.T) {
	t.Parallel()
	cat := &fakeCatalog{season: model.AnimePage{Items: animeList(1)}}
	p := NewHomePage(cat, carousel.DefaultConfig(), false)

	msg, ok := firstOf[seasonLoadedMsg](runCmd(p.fetchSeason()))
	if !ok {
		t.Fatal("fetchSeason produced no seasonLoadedMsg")
	}
	if len(msg.page.Items) != 1 || cat.calls[0] != "season:1" {
		t.Fatalf("unexpected fetch: %+v calls=%v", msg.page, cat.calls)
	}
}

func TestTopPage_LoadMoreMergesPages(t *testing.T) {
	t.Parallel()
	cat := &fakeCatalog{}
	p := NewTopPage(cat, false)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	p.Init()
	first := model.AnimePage{Items: animeList(1, 2)}
	first.Pagination.HasNextPage = true
	p.Update(topLoadedMsg{seq: p.seq, pageNum: 1, page: first})

	cmd, _ := p.Update(keyRunes("m"))
	if cmd == nil || !p.loadingMore {
		t.Fatal("m should load the next page")
	}
	staleSeq := p.seq - 1
	p.Update(topLoadedMsg{seq: staleSeq, pageNum: 1, page: model.AnimePage{Items: animeList(99)}})

	p.Update(topLoadedMsg{seq: p.seq, more: true, pageNum: 2, page: model.AnimePage{Items: animeList(2, 3)}})

	var ids []int
	for _, a := range p.items {
		ids = append(ids, a.MalID)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("items = %v, want [1 2 3]", ids)
	}
	if p.hasNext {
		t.Fatal("hasNext should follow the last page")
	}
	if cmd, _ := p.Update(keyRunes("m")); cmd != nil {
		t.Fatal("m on the last page should do nothing")
	}
}

func TestTopPage_TabSwitchFetchesListing(t *testing.T) {
	t.Parallel()
	cat := &fakeCatalog{upcoming: model.AnimePage{Items: animeList(7)}}
	p := NewTopPage(cat, false)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	cmd, _ := p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if p.currentTab().Label() != "Upcoming" {
		t.Fatalf("tab = %s, want Upcoming", p.currentTab().Label())
	}
	msg, ok := firstOf[topLoadedMsg](runCmd(cmd))
	if !ok {
		t.Fatal("tab switch did not fetch")
	}
	p.Update(msg)
	if len(p.items) != 1 || p.items[0].MalID != 7 {
		t.Fatalf("items = %+v, want upcoming listing", p.items)
	}
	if cat.calls[len(cat.calls)-1] != "upcoming:1" {
		t.Fatalf("calls = %v, want upcoming:1 last", cat.calls)
	}
	if !strings.Contains(p.View(100, 29), "Anime 7") {
		t.Fatal("top view missing the loaded title")
	}
}

func TestSearchPage_RunsQueryFromParams(t *testing.T) {
	t.Parallel()
	cat := &fakeCatalog{search: model.AnimePage{Items: animeList(5114)}}
	p := NewSearchPage(cat, false)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	msg, ok := firstOf[searchLoadedMsg](runCmd(p.Enter("fullmetal")))
	if !ok {
		t.Fatal("Enter did not search")
	}
	p.Update(msg)
	if got := p.Title(); got != `Search "fullmetal"` {
		t.Fatalf("title = %q", got)
	}
	if cmd := p.Enter("fullmetal"); cmd != nil {
		t.Fatal("same query should not search again")
	}
	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.Params != 5114 {
		t.Fatalf("nav = %+v, want anime 5114", nav)
	}
}

func testAnimeDetail() model.AnimeDetail {
	a := model.Anime{
		MalID:        52991,
		Title:        "Sousou no Frieren",
		TitleEnglish: "Frieren: Beyond Journey's End",
		Score:        9.3,
		Episodes:     28,
		Synopsis:     "During their decade-long quest to defeat the Demon King, the members of the hero's party forge bonds.<br>",
		Studios:      []model.Entity{{Name: "Madhouse"}},
	}
	return model.AnimeDetail{
		Anime: a,
		Characters: []model.CharacterRole{{
			Character: model.CharacterRef{MalID: 184947, Name: "Frieren"},
			Role:      "Main",
			VoiceActors: []model.VoiceActor{{
				Person:   model.PersonRef{MalID: 11297, Name: "Tanezaki, Atsumi"},
				Language: "Japanese",
			}},
		}},
		Episodes: []model.Episode{
			{MalID: 1, Title: "The Journey's End"},
			{MalID: 2, Title: "Recap", Recap: true},
		},
		Statistics: &model.Statistics{
			Completed: 1000,
			Total:     5000,
			Scores:    []model.ScoreVotes{{Score: 10, Votes: 300}, {Score: 9, Votes: 200}, {Score: 5, Votes: 10}},
		},
	}
}

func TestAnimePage_LoadsAndNavigates(t *testing.T) {
	t.Parallel()
	cat := &fakeCatalog{anime: map[int]model.AnimeDetail{52991: testAnimeDetail()}}
	p := NewAnimePage(cat, false)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	msg, ok := firstOf[animeLoadedMsg](runCmd(p.Enter(52991)))
	if !ok {
		t.Fatal("Enter did not fetch the anime")
	}
	p.Update(msg)

	if got := p.Title(); !strings.HasPrefix(got, "Frieren") {
		t.Fatalf("title = %q", got)
	}
	view := p.View(100, 39)
	for _, want := range []string{"Frieren", "Overview", "Madhouse"} {
		if !strings.Contains(view, want) {
			t.Fatalf("overview missing %q", want)
		}
	}

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(p.View(100, 39), "Tanezaki, Atsumi") {
		t.Fatal("characters tab missing the voice actor")
	}
	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.PageID != characterPageID || nav.Params != 184947 {
		t.Fatalf("nav = %+v, want character 184947", nav)
	}
	_, nav = p.Update(keyRunes("v"))
	if nav == nil || nav.PageID != personPageID || nav.Params != 11297 {
		t.Fatalf("nav = %+v, want person 11297", nav)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(p.View(100, 39), "Recap") {
		t.Fatal("episodes tab missing the recap badge")
	}
}

func TestAnimePage_IgnoresStaleResults(t *testing.T) {
	t.Parallel()
	cat := &fakeCatalog{anime: map[int]model.AnimeDetail{}}
	p := NewAnimePage(cat, false)

	p.Enter(1)
	stale := p.seq
	p.Enter(2)
	p.Update(animeLoadedMsg{seq: stale, detail: testAnimeDetail()})
	if p.detail != nil {
		t.Fatal("result for a previous anime was applied")
	}

	cmd, _ := p.Update(animeLoadedMsg{seq: p.seq, err: errors.New("anime 2: not found")})
	if _, ok := firstOf[ErrorMsg](runCmd(cmd)); !ok {
		t.Fatal("fetch error not reported")
	}
	if !strings.Contains(p.View(80, 20), "unavailable") {
		t.Fatal("failed page should say the anime is unavailable")
	}
}

func TestCharacterPage_VoiceActors(t *testing.T) {
	t.Parallel()
	detail := model.CharacterDetail{
		Character: model.Character{MalID: 417, Name: "Lelouch Lamperouge", About: "Lelouch is the protagonist."},
		Anime: []model.CharacterAnimeRole{
			{Role: "Main", Anime: model.AnimeRef{MalID: 1575, Title: "Code Geass"}},
		},
		Voices: []model.VoiceActor{
			{Language: "Japanese", Person: model.PersonRef{MalID: 1, Name: "Fukuyama, Jun"}},
			{Language: "Hungarian", Person: model.PersonRef{MalID: 2, Name: "Someone"}},
		},
	}
	cat := &fakeCatalog{characters: map[int]model.CharacterDetail{417: detail}}
	p := NewCharacterPage(cat, false)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	msg, _ := firstOf[characterLoadedMsg](runCmd(p.Enter(417)))
	p.Update(msg)
	if !strings.Contains(p.View(100, 29), "protagonist") {
		t.Fatal("about tab missing text")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.PageID != animePageID || nav.Params != 1575 {
		t.Fatalf("nav = %+v, want anime 1575", nav)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	view := p.View(100, 29)
	if !strings.Contains(view, "Japan") || !strings.Contains(view, "Other") {
		t.Fatalf("voice actors missing countries:\n%s", view)
	}
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, nav = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.PageID != personPageID || nav.Params != 2 {
		t.Fatalf("nav = %+v, want person 2", nav)
	}
}

func TestPersonPage_Roles(t *testing.T) {
	t.Parallel()
	detail := model.PersonDetail{
		Person: model.Person{MalID: 1, Name: "Fukuyama, Jun", Birthday: "1978-11-26T00:00:00+00:00"},
		Roles: []model.VoiceRole{{
			Role:      "Main",
			Anime:     model.AnimeRef{MalID: 1575, Title: "Code Geass"},
			Character: model.CharacterRef{MalID: 417, Name: "Lelouch Lamperouge"},
		}},
	}
	cat := &fakeCatalog{people: map[int]model.PersonDetail{1: detail}}
	p := NewPersonPage(cat, false)
	p.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	msg, _ := firstOf[personLoadedMsg](runCmd(p.Enter(1)))
	p.Update(msg)
	if !strings.Contains(p.View(100, 29), "November 26, 1978") {
		t.Fatal("about tab missing birthday")
	}

	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, nav := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav == nil || nav.PageID != characterPageID || nav.Params != 417 {
		t.Fatalf("nav = %+v, want character 417", nav)
	}
	_, nav = p.Update(keyRunes("a"))
	if nav == nil || nav.PageID != animePageID || nav.Params != 1575 {
		t.Fatalf("nav = %+v, want anime 1575", nav)
	}
}

func TestRenderScoreChart(t *testing.T) {
	t.Parallel()

	if got := renderScoreChart(nil, 80); !strings.Contains(got, "No score distribution") {
		t.Fatalf("nil statistics rendered %q", got)
	}
	out := renderScoreChart(testAnimeDetail().Statistics, 80)
	if !strings.Contains(out, "Completed") || !strings.Contains(out, "5,000") {
		t.Fatalf("legend missing:\n%s", out)
	}
}
