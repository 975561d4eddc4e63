package model

import "context"

// TopQuery selects a ranking from the top anime endpoint.
type TopQuery struct {
	Filter string // airing, upcoming, bypopularity, favorite
	Type   string // tv, movie, ova, special, ona, music
	Page   int
}

// AnimeLister provides the paged listings.
type AnimeLister interface {
	SeasonNow(ctx context.Context, page int) (AnimePage, error)
	SeasonUpcoming(ctx context.Context, page int) (AnimePage, error)
	TopAnime(ctx context.Context, q TopQuery) (AnimePage, error)
	SearchAnime(ctx context.Context, query string, page int) (AnimePage, error)
}

// DetailFetcher provides the aggregated detail views.
type DetailFetcher interface {
	AnimeDetail(ctx context.Context, id int) (AnimeDetail, error)
	CharacterDetail(ctx context.Context, id int) (CharacterDetail, error)
	PersonDetail(ctx context.Context, id int) (PersonDetail, error)
}

// Catalog is the read contract the TUI and CLI consume.
type Catalog interface {
	AnimeLister
	DetailFetcher
}
