package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	"github.com/freecosystem/marketplace/internal/sysconfig/domain"
)

// Service serves the effective system configuration. The current document is
// held in memory and refreshed on every admin update, so hot paths (listing
// creation checking RequireModeration) never hit the store.
type Service struct {
	repo   domain.Repository
	logger *zap.Logger

	mu      sync.RWMutex
	current domain.SystemConfig
}

func NewService(ctx context.Context, repo domain.Repository, logger *zap.Logger) (*Service, error) {
	s := &Service{
		repo:    repo,
		logger:  logger.Named("SysconfigService"),
		current: domain.Defaults(),
	}
	stored, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if stored != nil {
		s.current = *stored
	}
	return s, nil
}

func (s *Service) Get(ctx context.Context) domain.SystemConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update replaces the configuration wholesale. Admin only.
func (s *Service) Update(ctx context.Context, actor moderation.Actor, cfg domain.SystemConfig) (*domain.SystemConfig, error) {
	if actor.Role != moderation.RoleAdmin {
		return nil, moderation.ErrForbidden
	}

	cfg.UpdatedBy = actor.ID
	cfg.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, &cfg); err != nil {
		s.logger.Error("failed to save system config", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.current = cfg
	s.mu.Unlock()

	s.logger.Info("system config updated", zap.String("updatedBy", actor.ID))
	return &cfg, nil
}

// RequireModeration and MaxImagesPerListing satisfy the listing usecase's
// Settings port.
func (s *Service) RequireModeration(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.RequireModeration
}

func (s *Service) MaxImagesPerListing(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.MaxImagesPerAd
}

func (s *Service) MaintenanceMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.MaintenanceMode
}
