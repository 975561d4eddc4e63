package jikan

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/aetheris/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnimeDetail fetches everything the anime page shows in parallel. The record
// and the cast are required; episodes and statistics are best-effort and are
// left empty when their endpoint fails.
func (c *Client) AnimeDetail(ctx context.Context, id int) (model.AnimeDetail, error) {
	var d model.AnimeDetail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := c.AnimeFull(gctx, id)
		if err != nil {
			return fmt.Errorf("anime %d: %w", id, err)
		}
		d.Anime = a
		return nil
	})
	g.Go(func() error {
		roles, err := c.AnimeCharacters(gctx, id)
		if err != nil {
			return fmt.Errorf("anime %d characters: %w", id, err)
		}
		d.Characters = roles
		return nil
	})
	g.Go(func() error {
		eps, _, err := c.AnimeEpisodes(gctx, id, 1)
		if err != nil {
			c.log.Info("episodes unavailable", zap.Int("anime_id", id), zap.Error(err))
			return nil
		}
		d.Episodes = eps
		return nil
	})
	g.Go(func() error {
		st, err := c.AnimeStatistics(gctx, id)
		if err != nil {
			c.log.Info("statistics unavailable", zap.Int("anime_id", id), zap.Error(err))
			return nil
		}
		d.Statistics = &st
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.AnimeDetail{}, err
	}
	return d, nil
}

// CharacterDetail fetches a character with its animeography and voice actors.
func (c *Client) CharacterDetail(ctx context.Context, id int) (model.CharacterDetail, error) {
	var d model.CharacterDetail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ch, err := c.CharacterFull(gctx, id)
		if err != nil {
			return fmt.Errorf("character %d: %w", id, err)
		}
		d.Character = ch
		return nil
	})
	g.Go(func() error {
		roles, err := c.CharacterAnime(gctx, id)
		if err != nil {
			return fmt.Errorf("character %d anime: %w", id, err)
		}
		d.Anime = roles
		return nil
	})
	g.Go(func() error {
		voices, err := c.CharacterVoices(gctx, id)
		if err != nil {
			return fmt.Errorf("character %d voices: %w", id, err)
		}
		d.Voices = voices
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.CharacterDetail{}, err
	}
	return d, nil
}

// PersonDetail fetches a voice actor with the roles they voiced.
func (c *Client) PersonDetail(ctx context.Context, id int) (model.PersonDetail, error) {
	var d model.PersonDetail
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := c.PersonFull(gctx, id)
		if err != nil {
			return fmt.Errorf("person %d: %w", id, err)
		}
		d.Person = p
		return nil
	})
	g.Go(func() error {
		roles, err := c.PersonVoices(gctx, id)
		if err != nil {
			return fmt.Errorf("person %d voices: %w", id, err)
		}
		d.Roles = roles
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.PersonDetail{}, err
	}
	return d, nil
}
