package tui

import (
	"github.com/tinytelemetry/aetheris/internal/carousel"
	"github.com/tinytelemetry/aetheris/internal/model"
)

// ErrorMsg reports a failed fetch to the status bar.
type ErrorMsg struct {
	Source string
	Err    error
}

// carouselFireMsg delivers an expired carousel timer to the home page.
type carouselFireMsg struct {
	fire carousel.Fire
}

func (carouselFireMsg) targetPage() string { return homePageID }

type seasonLoadedMsg struct {
	page model.AnimePage
	err  error
}

func (seasonLoadedMsg) targetPage() string { return homePageID }

type topLoadedMsg struct {
	seq     int
	more    bool
	pageNum int
	page    model.AnimePage
	err     error
}

func (topLoadedMsg) targetPage() string { return topPageID }

type searchLoadedMsg struct {
	seq   int
	query string
	page  model.AnimePage
	err   error
}

func (searchLoadedMsg) targetPage() string { return searchPageID }

type animeLoadedMsg struct {
	seq    int
	detail model.AnimeDetail
	err    error
}

func (animeLoadedMsg) targetPage() string { return animePageID }

type characterLoadedMsg struct {
	seq    int
	detail model.CharacterDetail
	err    error
}

func (characterLoadedMsg) targetPage() string { return characterPageID }

type personLoadedMsg struct {
	seq    int
	detail model.PersonDetail
	err    error
}

func (personLoadedMsg) targetPage() string { return personPageID }
