package crop

import (
	"context"
	"errors"

	"github.com/agrotech/farm-api/internal/app/authz"
	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"go.uber.org/zap"
)

// CreateCrop são os dados de criação de uma cultura
type CreateCrop struct {
	Name   string `json:"name" binding:"required"`
	FarmID uint   `json:"farmId" binding:"required"`
}

// UpdateCrop é o patch parcial de uma cultura
type UpdateCrop struct {
	Name *string `json:"name"`
}

// Service orquestra as operações de culturas
type Service struct {
	crops    repository.CropRepository
	resolver *authz.Resolver
	logger   *zap.Logger
}

// NewService cria o serviço de culturas
func NewService(crops repository.CropRepository, resolver *authz.Resolver, logger *zap.Logger) *Service {
	return &Service{
		crops:    crops,
		resolver: resolver,
		logger:   logger,
	}
}

// CreateMany registra um lote de culturas. Toda fazenda referenciada
// precisa pertencer ao principal; a posse é resolvida antes de qualquer
// escrita para que o lote seja tudo-ou-nada.
func (s *Service) CreateMany(ctx context.Context, actor model.Principal, dtos []CreateCrop) ([]*model.Crop, error) {
	if len(dtos) == 0 {
		return nil, apperrors.BadRequest("nenhuma cultura informada")
	}

	checked := map[uint]bool{}
	crops := make([]*model.Crop, 0, len(dtos))
	for _, dto := range dtos {
		if !checked[dto.FarmID] {
			owns, err := s.resolver.OwnsFarm(ctx, actor.ID, dto.FarmID)
			if err != nil {
				return nil, err
			}
			if !owns {
				return nil, apperrors.NotFound("fazenda não encontrada")
			}
			checked[dto.FarmID] = true
		}
		crops = append(crops, &model.Crop{Name: dto.Name, FarmID: dto.FarmID})
	}

	if err := s.crops.CreateMany(ctx, crops); err != nil {
		return nil, err
	}

	s.logger.Info("culturas criadas",
		zap.Int("count", len(crops)),
		zap.Uint("owner_id", actor.ID))

	return crops, nil
}

// FindAllByFarm lista as culturas de uma fazenda do principal
func (s *Service) FindAllByFarm(ctx context.Context, actor model.Principal, farmID uint) ([]*model.Crop, error) {
	owns, err := s.resolver.OwnsFarm(ctx, actor.ID, farmID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, apperrors.NotFound("fazenda não encontrada")
	}

	return s.crops.FindByFarm(ctx, farmID)
}

// FindOne busca uma cultura do principal. Culturas de outros donos são
// indistinguíveis de inexistentes.
func (s *Service) FindOne(ctx context.Context, actor model.Principal, id uint) (*model.Crop, error) {
	crop, err := s.crops.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("cultura não encontrada")
		}
		return nil, err
	}

	owns, err := s.resolver.OwnsFarm(ctx, actor.ID, crop.FarmID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, apperrors.NotFound("cultura não encontrada")
	}

	return crop, nil
}

// Update atualiza uma cultura do principal
func (s *Service) Update(ctx context.Context, actor model.Principal, id uint, dto UpdateCrop) (*model.Crop, error) {
	crop, err := s.crops.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}

	owns, err := s.resolver.OwnsFarm(ctx, actor.ID, crop.FarmID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, apperrors.Forbidden("acesso negado")
	}

	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if len(fields) == 0 {
		return crop, nil
	}

	return s.crops.Update(ctx, id, fields)
}

// Remove exclui uma cultura do principal
func (s *Service) Remove(ctx context.Context, actor model.Principal, id uint) (*model.Crop, error) {
	crop, err := s.crops.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}

	owns, err := s.resolver.OwnsFarm(ctx, actor.ID, crop.FarmID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, apperrors.Forbidden("acesso negado")
	}

	if err := s.crops.Delete(ctx, id); err != nil {
		return nil, err
	}

	return crop, nil
}
