package jikan

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/aetheris/internal/model"
)

// CharacterFull fetches a character profile.
func (c *Client) CharacterFull(ctx context.Context, id int) (model.Character, error) {
	var ch model.Character
	_, err := c.get(ctx, fmt.Sprintf("/characters/%d/full", id), nil, &ch)
	return ch, err
}

// CharacterAnime lists the anime a character appears in.
func (c *Client) CharacterAnime(ctx context.Context, id int) ([]model.CharacterAnimeRole, error) {
	var roles []model.CharacterAnimeRole
	_, err := c.get(ctx, fmt.Sprintf("/characters/%d/anime", id), nil, &roles)
	return roles, err
}

// CharacterVoices lists who voices a character, per language.
func (c *Client) CharacterVoices(ctx context.Context, id int) ([]model.VoiceActor, error) {
	var voices []model.VoiceActor
	_, err := c.get(ctx, fmt.Sprintf("/characters/%d/voices", id), nil, &voices)
	return voices, err
}

// PersonFull fetches a person profile.
func (c *Client) PersonFull(ctx context.Context, id int) (model.Person, error) {
	var p model.Person
	_, err := c.get(ctx, fmt.Sprintf("/people/%d/full", id), nil, &p)
	return p, err
}

// PersonVoices lists the characters a person voiced.
func (c *Client) PersonVoices(ctx context.Context, id int) ([]model.VoiceRole, error) {
	var roles []model.VoiceRole
	_, err := c.get(ctx, fmt.Sprintf("/people/%d/voices", id), nil, &roles)
	return roles, err
}
