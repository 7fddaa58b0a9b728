package farm

import (
	"context"
	"errors"

	"github.com/agrotech/farm-api/internal/app/authz"
	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"go.uber.org/zap"
)

// pageSize é o tamanho fixo de página da listagem de fazendas
const pageSize = 10

// CreateFarm são os dados de criação de uma fazenda
type CreateFarm struct {
	Name           string  `json:"name" binding:"required"`
	City           string  `json:"city" binding:"required"`
	State          string  `json:"state" binding:"required"`
	TotalArea      float64 `json:"totalArea" binding:"required,gt=0"`
	ArableArea     float64 `json:"arableArea" binding:"min=0"`
	VegetationArea float64 `json:"vegetationArea" binding:"min=0"`
	ProducerID     uint    `json:"producerId" binding:"required"`
}

// UpdateFarm é o patch parcial de uma fazenda
type UpdateFarm struct {
	Name           *string  `json:"name"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	TotalArea      *float64 `json:"totalArea"`
	ArableArea     *float64 `json:"arableArea"`
	VegetationArea *float64 `json:"vegetationArea"`
}

// Service orquestra as operações de fazendas
type Service struct {
	farms     repository.FarmRepository
	producers repository.ProducerRepository
	crops     repository.CropRepository
	resolver  *authz.Resolver
	logger    *zap.Logger
}

// NewService cria o serviço de fazendas
func NewService(
	farms repository.FarmRepository,
	producers repository.ProducerRepository,
	crops repository.CropRepository,
	resolver *authz.Resolver,
	logger *zap.Logger,
) *Service {
	return &Service{
		farms:     farms,
		producers: producers,
		crops:     crops,
		resolver:  resolver,
		logger:    logger,
	}
}

// ownedProducer busca um produtor do principal; produtores de outros
// donos são indistinguíveis de inexistentes
func (s *Service) ownedProducer(ctx context.Context, actor model.Principal, producerID uint) (*model.Producer, error) {
	producer, err := s.producers.FindByID(ctx, producerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("produtor não encontrado")
		}
		return nil, err
	}
	if producer.UserID != actor.ID {
		return nil, apperrors.NotFound("produtor não encontrado")
	}
	return producer, nil
}

// Create registra uma nova fazenda sob um produtor do principal.
// A invariante de área é verificada antes de qualquer escrita.
func (s *Service) Create(ctx context.Context, actor model.Principal, dto CreateFarm) (*model.Farm, error) {
	if _, err := s.ownedProducer(ctx, actor, dto.ProducerID); err != nil {
		return nil, err
	}

	if err := CheckAreas(dto.ArableArea, dto.VegetationArea, dto.TotalArea); err != nil {
		return nil, err
	}

	farm := &model.Farm{
		Name:           dto.Name,
		City:           dto.City,
		State:          dto.State,
		TotalArea:      dto.TotalArea,
		ArableArea:     dto.ArableArea,
		VegetationArea: dto.VegetationArea,
		ProducerID:     dto.ProducerID,
	}

	if err := s.farms.Create(ctx, farm); err != nil {
		return nil, err
	}

	s.logger.Info("fazenda criada",
		zap.Uint("farm_id", farm.ID),
		zap.Uint("producer_id", farm.ProducerID))

	return farm, nil
}

// FindAll lista as fazendas de um produtor do principal, paginadas,
// mais recentes primeiro. O producerID é obrigatório.
func (s *Service) FindAll(ctx context.Context, actor model.Principal, producerID uint, page int) ([]*model.Farm, error) {
	if producerID == 0 {
		return nil, apperrors.BadRequest("o parâmetro \"producerId\" é obrigatório")
	}
	if page < 1 {
		page = 1
	}

	if _, err := s.ownedProducer(ctx, actor, producerID); err != nil {
		return nil, err
	}

	return s.farms.FindByProducer(ctx, producerID, (page-1)*pageSize, pageSize)
}

// FindOne busca uma fazenda do principal (posse transitiva pelo produtor).
// Fazendas de outros donos são indistinguíveis de inexistentes.
func (s *Service) FindOne(ctx context.Context, actor model.Principal, id uint) (*model.Farm, error) {
	farm, err := s.farms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("fazenda não encontrada")
		}
		return nil, err
	}

	owns, err := s.resolver.OwnsProducer(ctx, actor.ID, farm.ProducerID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, apperrors.NotFound("fazenda não encontrada")
	}

	return farm, nil
}

// Update atualiza uma fazenda do principal. Campos de área ausentes no
// patch assumem o valor persistido antes da verificação da invariante:
// um patch parcial nunca contorna a regra omitindo um campo.
func (s *Service) Update(ctx context.Context, actor model.Principal, id uint, dto UpdateFarm) (*model.Farm, error) {
	current, err := s.farms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}

	owns, err := s.resolver.OwnsProducer(ctx, actor.ID, current.ProducerID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, apperrors.Forbidden("acesso negado")
	}

	if dto.TotalArea != nil || dto.ArableArea != nil || dto.VegetationArea != nil {
		total := current.TotalArea
		arable := current.ArableArea
		vegetation := current.VegetationArea
		if dto.TotalArea != nil {
			total = *dto.TotalArea
		}
		if dto.ArableArea != nil {
			arable = *dto.ArableArea
		}
		if dto.VegetationArea != nil {
			vegetation = *dto.VegetationArea
		}
		if err := CheckAreas(arable, vegetation, total); err != nil {
			return nil, err
		}
	}

	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.City != nil {
		fields["city"] = *dto.City
	}
	if dto.State != nil {
		fields["state"] = *dto.State
	}
	if dto.TotalArea != nil {
		fields["total_area"] = *dto.TotalArea
	}
	if dto.ArableArea != nil {
		fields["arable_area"] = *dto.ArableArea
	}
	if dto.VegetationArea != nil {
		fields["vegetation_area"] = *dto.VegetationArea
	}

	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.farms.UpdateOwned(ctx, id, actor.ID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}

	return updated, nil
}

// Remove exclui uma fazenda do principal, removendo antes as culturas
// associadas
func (s *Service) Remove(ctx context.Context, actor model.Principal, id uint) (*model.Farm, error) {
	farm, err := s.farms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}

	owns, err := s.resolver.OwnsProducer(ctx, actor.ID, farm.ProducerID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, apperrors.Forbidden("acesso negado")
	}

	if err := s.crops.DeleteByFarm(ctx, id); err != nil {
		return nil, err
	}

	if err := s.farms.DeleteOwned(ctx, id, actor.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}

	s.logger.Info("fazenda excluída",
		zap.Uint("farm_id", id),
		zap.Uint("owner_id", actor.ID))

	return farm, nil
}
