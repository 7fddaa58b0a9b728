package user

import (
	"context"
	"errors"

	"github.com/agrotech/farm-api/internal/app/authz"
	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// CreateUser são os dados de registro de um novo usuário
type CreateUser struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateUser é o patch parcial do próprio cadastro
type UpdateUser struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// Profile é a projeção do usuário autenticado com seus produtores
type Profile struct {
	model.UserView
	Producers []model.Producer `json:"producers"`
}

// Service orquestra as operações de usuários
type Service struct {
	users     repository.UserRepository
	producers repository.ProducerRepository
	farms     repository.FarmRepository
	crops     repository.CropRepository
	logger    *zap.Logger
}

// NewService cria o serviço de usuários
func NewService(
	users repository.UserRepository,
	producers repository.ProducerRepository,
	farms repository.FarmRepository,
	crops repository.CropRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:     users,
		producers: producers,
		farms:     farms,
		crops:     crops,
		logger:    logger,
	}
}

// Register cria um novo usuário. O primeiro usuário registrado no sistema
// nasce ADMIN com superuser=true; todos os seguintes nascem FARMER.
func (s *Service) Register(ctx context.Context, dto CreateUser) (*model.UserView, error) {
	existing, err := s.users.FindByEmail(ctx, dto.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("e-mail já cadastrado")
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	role := model.RoleFarmer
	superuser := false
	if count == 0 {
		role = model.RoleAdmin
		superuser = true
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcryptCost)
	if err != nil {
		s.logger.Error("falha ao gerar hash da senha", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:      dto.Name,
		Email:     dto.Email,
		Password:  string(hashed),
		Role:      role,
		Superuser: superuser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Registro concorrente com o mesmo e-mail: a restrição do banco
		// é a autoridade final
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict("e-mail já cadastrado")
		}
		return nil, err
	}

	s.logger.Info("usuário registrado",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Bool("superuser", user.Superuser))

	return user.View(), nil
}

// Profile retorna o usuário autenticado com seus produtores, sem credenciais
func (s *Service) Profile(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.users.FindByIDWithProducers(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("usuário não encontrado")
		}
		return nil, err
	}

	return &Profile{
		UserView:  *user.View(),
		Producers: user.Producers,
	}, nil
}

// List retorna todos os usuários; restrito a administradores
func (s *Service) List(ctx context.Context, actor model.Principal) ([]*model.UserView, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("apenas administradores podem listar usuários")
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*model.UserView, len(users))
	for i, u := range users {
		views[i] = u.View()
	}
	return views, nil
}

// Update atualiza o próprio cadastro (nome, e-mail, senha)
func (s *Service) Update(ctx context.Context, userID uint, dto UpdateUser) (*model.UserView, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("usuário não encontrado")
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Email != nil {
		fields["email"] = *dto.Email
	}
	if dto.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcryptCost)
		if err != nil {
			s.logger.Error("falha ao gerar hash da senha", zap.Error(err))
			return nil, err
		}
		fields["password"] = string(hashed)
	}

	if len(fields) == 0 {
		return nil, apperrors.BadRequest("nenhum campo para atualizar")
	}

	updated, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict("e-mail já cadastrado")
		}
		return nil, err
	}

	return updated.View(), nil
}

// Remove exclui um usuário. Somente administradores, nunca a própria conta.
// Como não há cascata no nível do armazenamento, os dependentes são
// removidos explicitamente em ordem de dependência:
// culturas → fazendas → produtores → usuário.
func (s *Service) Remove(ctx context.Context, actor model.Principal, targetID uint) (*model.UserView, error) {
	if err := authz.CanDeleteUser(actor, targetID); err != nil {
		return nil, err
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("usuário não encontrado")
		}
		return nil, err
	}

	if err := s.crops.DeleteByOwner(ctx, targetID); err != nil {
		return nil, err
	}
	if err := s.farms.DeleteByOwner(ctx, targetID); err != nil {
		return nil, err
	}
	if err := s.producers.DeleteByOwner(ctx, targetID); err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		return nil, err
	}

	s.logger.Info("usuário excluído",
		zap.Uint("target_id", targetID),
		zap.Uint("actor_id", actor.ID))

	return target.View(), nil
}

// ToggleRole altera o papel de outro usuário. Restrito a administradores
// com superuser; o próprio papel nunca pode ser alterado.
func (s *Service) ToggleRole(ctx context.Context, actor model.Principal, targetID uint, newRole model.Role) (*model.UserView, error) {
	if err := authz.CanChangeRole(actor, targetID, newRole); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("usuário não encontrado")
		}
		return nil, err
	}

	updated, err := s.users.Update(ctx, targetID, map[string]interface{}{"role": newRole})
	if err != nil {
		return nil, err
	}

	s.logger.Info("papel de usuário alterado",
		zap.Uint("target_id", targetID),
		zap.String("new_role", string(newRole)),
		zap.Uint("actor_id", actor.ID))

	return updated.View(), nil
}
