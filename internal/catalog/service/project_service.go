package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
)

const (
	listCacheKey = "portfolio:projects"
	listCacheTTL = 60 * time.Second
)

// ProjectStore is the persistence contract the service depends on. The
// Postgres repository satisfies it; tests substitute a fake.
type ProjectStore interface {
	List(ctx context.Context) ([]domain.Project, error)
	Add(ctx context.Context, p domain.Project) (string, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) error
	Delete(ctx context.Context, id string) error
}

// ProjectService handles catalog business logic. The Redis client is
// optional: when nil every read goes straight to the store.
type ProjectService struct {
	store ProjectStore
	cache *redis.Client
}

// NewProjectService creates a new project service
func NewProjectService(store ProjectStore, cache *redis.Client) *ProjectService {
	return &ProjectService{
		store: store,
		cache: cache,
	}
}

// List returns all projects newest-first, served from the cache when warm.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, listCacheKey).Result()
		if err == nil {
			var cached []domain.Project
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			log.Printf("[cache] list read failed: %v", err)
		}
	}

	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(projects); err == nil {
			if err := s.cache.Set(ctx, listCacheKey, raw, listCacheTTL).Err(); err != nil {
				log.Printf("[cache] list write failed: %v", err)
			}
		}
	}
	return projects, nil
}

// Add persists a new project and returns it with the assigned id.
func (s *ProjectService) Add(ctx context.Context, p domain.Project) (domain.Project, error) {
	id, err := s.store.Add(ctx, p)
	if err != nil {
		return domain.Project{}, err
	}
	p.ID = id
	if p.Status == "" {
		p.Status = domain.DefaultStatus
	}
	s.invalidate(ctx)
	return p, nil
}

// Update applies a partial patch to a project.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	if err := s.store.Update(ctx, id, patch); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a project by id.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProjectService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listCacheKey).Err(); err != nil {
		log.Printf("[cache] invalidate failed: %v", err)
	}
}
