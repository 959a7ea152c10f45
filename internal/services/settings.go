package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"companion-backend/internal/models"
)

const settingsCacheTTL = 5 * time.Minute

type settingsStore interface {
	Get(ctx context.Context, userID int64) (*models.CompanionSettings, error)
	Upsert(ctx context.Context, s *models.CompanionSettings) error
}

// SettingsService fronts the settings store with a read-through Redis cache.
// The cache is best-effort: Redis being down degrades to plain store reads.
type SettingsService struct {
	repo  settingsStore
	cache *redis.Client
}

func NewSettingsService(repo settingsStore, cache *redis.Client) *SettingsService {
	return &SettingsService{repo: repo, cache: cache}
}

func (s *SettingsService) Get(ctx context.Context, userID int64) (*models.CompanionSettings, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, settingsCacheKey(userID)).Bytes(); err == nil {
			cached := &models.CompanionSettings{}
			if json.Unmarshal(data, cached) == nil {
				return cached, nil
			}
		}
	}

	settings, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, settings)
	return settings, nil
}

func (s *SettingsService) Save(ctx context.Context, settings *models.CompanionSettings) error {
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return err
	}

	s.cacheSet(ctx, settings)
	return nil
}

func (s *SettingsService) cacheSet(ctx context.Context, settings *models.CompanionSettings) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return
	}
	s.cache.Set(ctx, settingsCacheKey(settings.UserID), data, settingsCacheTTL)
}

func settingsCacheKey(userID int64) string {
	return fmt.Sprintf("companion:settings:%d", userID)
}
