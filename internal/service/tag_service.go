package service

import (
	"context"
	"errors"
	"strings"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/cache"
)

type TagService struct {
	tags  gateway.TagGateway
	state *store.State
	cache *cache.Cache
}

func NewTagService(gw *gateway.Gateway, state *store.State, c *cache.Cache) *TagService {
	return &TagService{tags: gw.Tags, state: state, cache: c}
}

func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	if s.cache != nil {
		var cached []models.Tag
		if err := s.cache.GetCachedTags(&cached); err == nil {
			return cached, nil
		}
	}

	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}

	s.state.SetTags(tags)
	if s.cache != nil {
		s.cache.CacheTags(tags)
	}
	return tags, nil
}

func (s *TagService) Create(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("tag name is required")
	}

	tag := models.Tag{Name: name}
	if err := s.tags.Create(ctx, &tag); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateTags()
	}
	return &tag, nil
}

func (s *TagService) Delete(ctx context.Context, id uint) error {
	if err := s.tags.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateTags()
	}
	return nil
}
