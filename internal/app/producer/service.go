package producer

import (
	"context"
	"errors"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"go.uber.org/zap"
)

// CreateProducer são os dados de criação de um produtor
type CreateProducer struct {
	Name      string `json:"name" binding:"required"`
	CpfOrCnpj string `json:"cpfOrCnpj" binding:"required"`
}

// UpdateProducer é o patch parcial de um produtor
type UpdateProducer struct {
	Name      *string `json:"name"`
	CpfOrCnpj *string `json:"cpfOrCnpj"`
}

// DeleteResult é o resumo devolvido após exclusão bem-sucedida
type DeleteResult struct {
	Success         bool                  `json:"success"`
	Message         string                `json:"message"`
	DeletedProducer model.DeletedProducer `json:"deletedProducer"`
}

// Service orquestra as operações de produtores
type Service struct {
	producers repository.ProducerRepository
	farms     repository.FarmRepository
	logger    *zap.Logger
}

// NewService cria o serviço de produtores
func NewService(producers repository.ProducerRepository, farms repository.FarmRepository, logger *zap.Logger) *Service {
	return &Service{
		producers: producers,
		farms:     farms,
		logger:    logger,
	}
}

// assertUniqueCpfCnpj garante que o CPF/CNPJ não está em uso por outro
// produtor do mesmo dono. A unicidade é por dono: o mesmo documento sob
// outro usuário não conflita.
func (s *Service) assertUniqueCpfCnpj(ctx context.Context, cpfOrCnpj string, userID, excludeID uint) error {
	existing, err := s.producers.FindDuplicate(ctx, cpfOrCnpj, userID, excludeID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if existing != nil {
		return apperrors.Conflict("CPF/CNPJ já está em uso, tente outro ou chame o suporte")
	}
	return nil
}

// Create registra um novo produtor pertencente ao principal
func (s *Service) Create(ctx context.Context, actor model.Principal, dto CreateProducer) (*model.Producer, error) {
	if !model.IsValidCpfOrCnpj(dto.CpfOrCnpj) {
		return nil, apperrors.BadRequest("CPF/CNPJ inválido (deve ter 11 ou 14 dígitos)")
	}

	if err := s.assertUniqueCpfCnpj(ctx, dto.CpfOrCnpj, actor.ID, 0); err != nil {
		return nil, err
	}

	producer := &model.Producer{
		Name:      dto.Name,
		CpfOrCnpj: dto.CpfOrCnpj,
		UserID:    actor.ID,
	}

	if err := s.producers.Create(ctx, producer); err != nil {
		// Criações concorrentes com o mesmo documento: a restrição
		// composta (user_id, cpf_or_cnpj) é a autoridade final
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict("CPF/CNPJ já está em uso")
		}
		return nil, err
	}

	s.logger.Info("produtor criado",
		zap.Uint("producer_id", producer.ID),
		zap.Uint("owner_id", actor.ID))

	return producer, nil
}

// FindAll lista os produtores do principal, mais recentes primeiro
func (s *Service) FindAll(ctx context.Context, actor model.Principal) ([]*model.Producer, error) {
	return s.producers.FindByOwner(ctx, actor.ID)
}

// FindOne busca um produtor do principal. Produtores de outros donos são
// indistinguíveis de inexistentes: sempre NotFound, nunca Forbidden.
func (s *Service) FindOne(ctx context.Context, actor model.Principal, id uint) (*model.Producer, error) {
	producer, err := s.producers.FindByID(ctx, id)
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

// Update atualiza um produtor do principal. A escrita é condicionada ao
// dono (id + user_id) em uma única operação.
func (s *Service) Update(ctx context.Context, actor model.Principal, id uint, dto UpdateProducer) (*model.Producer, error) {
	current, err := s.producers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}
	if current.UserID != actor.ID {
		return nil, apperrors.Forbidden("acesso negado")
	}

	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.CpfOrCnpj != nil && *dto.CpfOrCnpj != current.CpfOrCnpj {
		if !model.IsValidCpfOrCnpj(*dto.CpfOrCnpj) {
			return nil, apperrors.BadRequest("CPF/CNPJ inválido (deve ter 11 ou 14 dígitos)")
		}
		// Só varre unicidade quando o documento realmente muda
		if err := s.assertUniqueCpfCnpj(ctx, *dto.CpfOrCnpj, actor.ID, id); err != nil {
			return nil, err
		}
		fields["cpf_or_cnpj"] = *dto.CpfOrCnpj
	}

	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.producers.UpdateOwned(ctx, id, actor.ID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict("CPF/CNPJ já está em uso, tente outro ou chame o suporte")
		}
		return nil, err
	}

	return updated, nil
}

// Remove exclui um produtor do principal. Bloqueado enquanto houver
// fazendas associadas.
func (s *Service) Remove(ctx context.Context, actor model.Principal, id uint) (*DeleteResult, error) {
	producer, err := s.producers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}
	if producer.UserID != actor.ID {
		return nil, apperrors.Forbidden("acesso negado")
	}

	farmCount, err := s.farms.CountByProducer(ctx, id)
	if err != nil {
		return nil, err
	}
	if farmCount > 0 {
		return nil, apperrors.Conflict("não é possível excluir produtor com fazendas associadas")
	}

	if err := s.producers.DeleteOwned(ctx, id, actor.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Forbidden("acesso negado")
		}
		return nil, err
	}

	s.logger.Info("produtor excluído",
		zap.Uint("producer_id", id),
		zap.Uint("owner_id", actor.ID))

	return &DeleteResult{
		Success: true,
		Message: "produtor removido com sucesso",
		DeletedProducer: model.DeletedProducer{
			ID:   producer.ID,
			Name: producer.Name,
		},
	}, nil
}
