package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"union-site-backend/internal/blocks"
	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/cache"
	"union-site-backend/pkg/logger"
	"union-site-backend/pkg/validator"
)

var (
	ErrEmptyTitle     = errors.New("title is required")
	ErrInvalidContent = errors.New("content contains invalid blocks")
)

// NewsService owns article persistence and keeps the in-memory page state
// and the Redis entity cache in step with every mutation.
type NewsService struct {
	news     gateway.NewsGateway
	tags     gateway.TagGateway
	state    *store.State
	cache    *cache.Cache
	renderer *blocks.Renderer
}

func NewNewsService(gw *gateway.Gateway, state *store.State, c *cache.Cache) *NewsService {
	return &NewsService{
		news:     gw.News,
		tags:     gw.Tags,
		state:    state,
		cache:    c,
		renderer: blocks.NewRenderer(blocks.Options{Prefix: "article"}),
	}
}

func (s *NewsService) List(ctx context.Context, page, perPage int) ([]models.News, error) {
	cacheKey := fmt.Sprintf("news:list:%d:%d", page, perPage)
	if s.cache != nil {
		var cached []models.News
		if err := s.cache.GetCachedNewsList(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	items, err := s.news.List(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheNewsList(cacheKey, items)
	}
	return items, nil
}

func (s *NewsService) GetByID(ctx context.Context, id uint) (models.News, error) {
	if s.cache != nil {
		var cached models.News
		if err := s.cache.GetCachedNews(id, &cached); err == nil {
			return cached, nil
		}
	}

	item, err := s.news.GetByID(ctx, id)
	if err != nil {
		return models.News{}, err
	}

	if s.cache != nil {
		s.cache.CacheNews(id, item)
	}
	return item, nil
}

func (s *NewsService) Create(ctx context.Context, req models.CreateNewsRequest) (*models.News, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if err := s.validateContent(req.Content); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, req.TagNames)
	if err != nil {
		return nil, err
	}

	item := models.News{
		Title:     title,
		Summary:   validator.SanitizeString(req.Summary),
		CoverURL:  strings.TrimSpace(req.CoverURL),
		Published: true,
		Content:   req.Content,
		AuthorID:  req.AuthorID,
		Tags:      tags,
	}

	if err := s.news.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.state.UpsertNews(item)
	s.invalidate(item.ID)
	logger.Info("News created", map[string]interface{}{"id": item.ID, "title": item.Title})
	return &item, nil
}

func (s *NewsService) Update(ctx context.Context, id uint, req models.UpdateNewsRequest) (*models.News, error) {
	item, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		item.Title = title
	}
	if req.Summary != nil {
		item.Summary = validator.SanitizeString(*req.Summary)
	}
	if req.CoverURL != nil {
		item.CoverURL = strings.TrimSpace(*req.CoverURL)
	}
	if req.Content != nil {
		if err := s.validateContent(*req.Content); err != nil {
			return nil, err
		}
		item.Content = *req.Content
	}
	if req.AuthorID != nil {
		item.AuthorID = req.AuthorID
	}
	if req.TagNames != nil {
		tags, err := s.resolveTags(ctx, req.TagNames)
		if err != nil {
			return nil, err
		}
		item.Tags = tags
	}

	if err := s.news.Update(ctx, &item); err != nil {
		return nil, err
	}

	s.state.UpsertNews(item)
	s.invalidate(item.ID)
	return &item, nil
}

func (s *NewsService) Delete(ctx context.Context, id uint) error {
	if err := s.news.Delete(ctx, id); err != nil {
		return err
	}
	s.state.RemoveNews(id)
	s.invalidate(id)
	return nil
}

// validateContent renders the block list with the production renderer; a
// list that cannot render must never be persisted.
func (s *NewsService) validateContent(content models.BlockList) error {
	if _, err := s.renderer.Render(content); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return nil
}

// resolveTags maps tag names onto records, creating the ones that do not
// exist yet.
func (s *NewsService) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tag, err := s.tags.GetByName(ctx, name)
		if errors.Is(err, gateway.ErrNotFound) {
			tag = models.Tag{Name: name}
			if err := s.tags.Create(ctx, &tag); err != nil {
				return nil, err
			}
			if s.cache != nil {
				s.cache.InvalidateTags()
			}
		} else if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *NewsService) invalidate(id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateNews(id); err != nil {
		logger.Error(err, "Failed to invalidate news cache", map[string]interface{}{"id": id})
	}
}
