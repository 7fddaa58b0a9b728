package dashboard

import (
	"context"
	"time"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/pkg/cache"
	"go.uber.org/zap"
)

const overviewCacheKey = "dashboard:overview"

// Overview é o panorama agregado de todas as fazendas e culturas
type Overview struct {
	TotalFarms    int64              `json:"totalFarms"`
	TotalHectares float64            `json:"totalHectares"`
	ByState       []model.StateCount `json:"byState"`
	ByCrop        []model.CropCount  `json:"byCrop"`
	LandUse       model.LandUse      `json:"landUse"`
}

// Service monta o panorama do dashboard
type Service struct {
	farms  repository.FarmRepository
	crops  repository.CropRepository
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewService cria o serviço de dashboard
func NewService(farms repository.FarmRepository, crops repository.CropRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{
		farms:  farms,
		crops:  crops,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// GetOverview retorna o panorama agregado, servindo do cache quando possível
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	var cached Overview
	found, err := s.cache.Get(ctx, overviewCacheKey, &cached)
	if err != nil {
		s.logger.Warn("erro ao buscar panorama do cache", zap.Error(err))
	} else if found {
		return &cached, nil
	}

	totalFarms, err := s.farms.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalArea, arable, vegetation, err := s.farms.SumAreas(ctx)
	if err != nil {
		return nil, err
	}

	byState, err := s.farms.CountByState(ctx)
	if err != nil {
		return nil, err
	}

	byCrop, err := s.crops.CountByName(ctx)
	if err != nil {
		return nil, err
	}

	overview := &Overview{
		TotalFarms:    totalFarms,
		TotalHectares: totalArea,
		ByState:       byState,
		ByCrop:        byCrop,
		LandUse: model.LandUse{
			ArableArea:     arable,
			VegetationArea: vegetation,
		},
	}

	if err := s.cache.Set(ctx, overviewCacheKey, overview, s.ttl); err != nil {
		s.logger.Warn("erro ao armazenar panorama no cache", zap.Error(err))
	}

	return overview, nil
}

// Invalidate descarta o panorama em cache; chamado após escritas em
// fazendas ou culturas
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, overviewCacheKey); err != nil {
		s.logger.Warn("erro ao invalidar cache do panorama", zap.Error(err))
	}
}
