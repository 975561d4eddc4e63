package jikan

import (
	"context"
	"fmt"
	"strings"

	"github.com/tinytelemetry/aetheris/internal/model"
)

func (c *Client) animePage(ctx context.Context, path string, q map[string]string, page int) (model.AnimePage, error) {
	query := pageQuery(page)
	for k, v := range q {
		if v != "" {
			query.Set(k, v)
		}
	}
	var items []model.Anime
	pg, err := c.get(ctx, path, query, &items)
	if err != nil {
		return model.AnimePage{}, err
	}
	out := model.AnimePage{Items: items}
	if pg != nil {
		out.Pagination = *pg
	}
	return out, nil
}

// SeasonNow lists the anime airing this season.
func (c *Client) SeasonNow(ctx context.Context, page int) (model.AnimePage, error) {
	return c.animePage(ctx, "/seasons/now", nil, page)
}

// SeasonUpcoming lists the anime announced for next season.
func (c *Client) SeasonUpcoming(ctx context.Context, page int) (model.AnimePage, error) {
	return c.animePage(ctx, "/seasons/upcoming", nil, page)
}

// TopAnime lists the ranking selected by q.
func (c *Client) TopAnime(ctx context.Context, q model.TopQuery) (model.AnimePage, error) {
	return c.animePage(ctx, "/top/anime", map[string]string{"filter": q.Filter, "type": q.Type}, q.Page)
}

// SearchAnime runs a title search.
func (c *Client) SearchAnime(ctx context.Context, query string, page int) (model.AnimePage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return model.AnimePage{}, nil
	}
	return c.animePage(ctx, "/anime", map[string]string{"q": query, "order_by": "members", "sort": "desc"}, page)
}

// AnimeFull fetches the complete record of one anime.
func (c *Client) AnimeFull(ctx context.Context, id int) (model.Anime, error) {
	var a model.Anime
	_, err := c.get(ctx, fmt.Sprintf("/anime/%d/full", id), nil, &a)
	return a, err
}

// AnimeCharacters lists the characters of an anime with their voice actors.
func (c *Client) AnimeCharacters(ctx context.Context, id int) ([]model.CharacterRole, error) {
	var roles []model.CharacterRole
	_, err := c.get(ctx, fmt.Sprintf("/anime/%d/characters", id), nil, &roles)
	return roles, err
}

// AnimeEpisodes lists one page of episodes.
func (c *Client) AnimeEpisodes(ctx context.Context, id, page int) ([]model.Episode, model.Pagination, error) {
	var eps []model.Episode
	pg, err := c.get(ctx, fmt.Sprintf("/anime/%d/episodes", id), pageQuery(page), &eps)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	if pg == nil {
		return eps, model.Pagination{}, nil
	}
	return eps, *pg, nil
}

// AnimeStatistics fetches list membership counts and the score distribution.
func (c *Client) AnimeStatistics(ctx context.Context, id int) (model.Statistics, error) {
	var st model.Statistics
	_, err := c.get(ctx, fmt.Sprintf("/anime/%d/statistics", id), nil, &st)
	return st, err
}
