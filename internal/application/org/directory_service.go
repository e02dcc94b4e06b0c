package org

import (
	"context"
	"errors"
	"time"

	"github.com/rentops/backend/internal/domain/org"
	"github.com/rentops/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DirectoryCache caches slug to organization lookups. The Redis
// implementation lives in infrastructure/cache.
type DirectoryCache interface {
	Get(ctx context.Context, slug string) (*org.Organization, error)
	Set(ctx context.Context, slug string, organization *org.Organization, ttl time.Duration) error
	Delete(ctx context.Context, slug string) error
}

// DirectoryTTL is how long a directory entry stays cached
const DirectoryTTL = 5 * time.Minute

// DirectoryService resolves tenant slugs to organizations. Every
// request passes through here, so hits are served from cache.
type DirectoryService struct {
	orgRepo org.OrganizationRepository
	cache   DirectoryCache
	logger  *zap.Logger
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(orgRepo org.OrganizationRepository, cache DirectoryCache, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{
		orgRepo: orgRepo,
		cache:   cache,
		logger:  logger,
	}
}

// Resolve looks up an organization by slug, cache first. A cache
// failure falls through to the database.
func (s *DirectoryService) Resolve(ctx context.Context, slug string) (*org.Organization, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, slug)
		if err != nil {
			// A miss is expected; anything else means the cache is unhealthy
			if !errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("Directory cache read failed", zap.String("slug", slug), zap.Error(err))
			}
		} else if cached != nil {
			return cached, nil
		}
	}

	organization, err := s.orgRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, slug, organization, DirectoryTTL); err != nil {
			s.logger.Warn("Directory cache write failed", zap.String("slug", slug), zap.Error(err))
		}
	}

	return organization, nil
}

// Invalidate evicts a slug from the cache
func (s *DirectoryService) Invalidate(ctx context.Context, slug string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, slug); err != nil {
		s.logger.Warn("Directory cache eviction failed", zap.String("slug", slug), zap.Error(err))
	}
}
