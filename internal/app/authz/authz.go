package authz

import (
	"context"
	"errors"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"go.uber.org/zap"
)

// CanDeleteUser decide se o principal pode excluir o usuário alvo.
// Ordem fixa de avaliação: papel primeiro, auto-alvo depois. A ordem é
// observável nos erros retornados e coberta por teste.
func CanDeleteUser(actor model.Principal, targetID uint) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("apenas administradores podem deletar usuários")
	}
	if actor.ID == targetID {
		return apperrors.Forbidden("por segurança, você não pode deletar sua própria conta")
	}
	return nil
}

// CanChangeRole decide se o principal pode alterar o papel do usuário alvo.
// Ordem fixa: papel → auto-alvo → superuser → papel novo válido.
func CanChangeRole(actor model.Principal, targetID uint, newRole model.Role) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("apenas administradores podem alterar papéis de usuários")
	}
	if actor.ID == targetID {
		return apperrors.Forbidden("você não pode alterar seu próprio papel")
	}
	if !actor.Superuser {
		return apperrors.Forbidden("as permissões deste usuário não podem ser alteradas")
	}
	if !newRole.Valid() {
		return apperrors.BadRequest("role inválida")
	}
	return nil
}

// Resolver resolve posse de produtores e fazendas pela cadeia
// usuário → produtor → fazenda
type Resolver struct {
	producers repository.ProducerRepository
	farms     repository.FarmRepository
	logger    *zap.Logger
}

// NewResolver cria o resolvedor de posse
func NewResolver(producers repository.ProducerRepository, farms repository.FarmRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		producers: producers,
		farms:     farms,
		logger:    logger,
	}
}

// OwnsProducer verifica se o usuário é dono do produtor. Falha fechada:
// produtor inexistente resolve para false sem vazar existência.
func (r *Resolver) OwnsProducer(ctx context.Context, userID, producerID uint) (bool, error) {
	producer, err := r.producers.FindByID(ctx, producerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return producer.UserID == userID, nil
}

// OwnsFarm verifica se o usuário é dono transitivo da fazenda,
// resolvendo pelo produtor dono
func (r *Resolver) OwnsFarm(ctx context.Context, userID, farmID uint) (bool, error) {
	farm, err := r.farms.FindByID(ctx, farmID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return r.OwnsProducer(ctx, userID, farm.ProducerID)
}
