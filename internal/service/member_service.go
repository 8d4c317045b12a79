package service

import (
	"context"
	"errors"
	"strings"

	"union-site-backend/internal/gateway"
	"union-site-backend/internal/models"
	"union-site-backend/internal/store"
	"union-site-backend/pkg/cache"
	"union-site-backend/pkg/validator"
)

var ErrEmptyName = errors.New("full name is required")

type MemberService struct {
	members gateway.MemberGateway
	state   *store.State
	cache   *cache.Cache
}

func NewMemberService(gw *gateway.Gateway, state *store.State, c *cache.Cache) *MemberService {
	return &MemberService{members: gw.Members, state: state, cache: c}
}

func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	if s.cache != nil {
		var cached []models.Member
		if err := s.cache.GetCachedMembers(&cached); err == nil {
			return cached, nil
		}
	}

	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheMembers(members)
	}
	return members, nil
}

func (s *MemberService) Create(ctx context.Context, member models.Member) (*models.Member, error) {
	member.FullName = validator.SanitizeString(member.FullName)
	if strings.TrimSpace(member.FullName) == "" {
		return nil, ErrEmptyName
	}
	member.Role = validator.SanitizeString(member.Role)

	if err := s.members.Create(ctx, &member); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return &member, nil
}

func (s *MemberService) Update(ctx context.Context, id uint, member models.Member) (*models.Member, error) {
	current, err := s.members.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.ID = current.ID
	member.CreatedAt = current.CreatedAt
	member.FullName = validator.SanitizeString(member.FullName)
	if strings.TrimSpace(member.FullName) == "" {
		return nil, ErrEmptyName
	}

	if err := s.members.Update(ctx, &member); err != nil {
		return nil, err
	}
	s.refresh(ctx)
	return &member, nil
}

func (s *MemberService) Delete(ctx context.Context, id uint) error {
	if err := s.members.Delete(ctx, id); err != nil {
		return err
	}
	s.refresh(ctx)
	return nil
}

// refresh reloads the member map so author attribution stays current.
func (s *MemberService) refresh(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete("members:all")
	}
	if members, err := s.members.List(ctx); err == nil {
		s.state.SetMembers(members)
	}
}
