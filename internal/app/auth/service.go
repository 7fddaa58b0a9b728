package auth

import (
	"context"
	"errors"
	"time"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"github.com/agrotech/farm-api/pkg/security"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenDuration é a validade dos tokens emitidos no login
const tokenDuration = 24 * time.Hour

// Credentials são os dados de entrada do login
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Session é o resultado de um login bem-sucedido
type Session struct {
	AccessToken string          `json:"accessToken"`
	User        *model.UserView `json:"user"`
}

// Service gerencia operações de autenticação
type Service struct {
	keyManager *security.KeyManager
	users      repository.UserRepository
	logger     *zap.Logger
}

// NewService cria um novo serviço de autenticação
func NewService(keyManager *security.KeyManager, users repository.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		keyManager: keyManager,
		users:      users,
		logger:     logger,
	}
}

// Login autentica um usuário por email e senha e gera um token JWT.
// Credenciais inválidas sempre produzem a mesma resposta, sem revelar
// se o email existe.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("falha na autenticação", zap.String("email", creds.Email))
			return nil, apperrors.Forbidden("credenciais inválidas")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "erro ao buscar usuário", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		s.logger.Warn("falha na autenticação", zap.String("email", creds.Email))
		return nil, apperrors.Forbidden("credenciais inválidas")
	}

	token, err := s.keyManager.GenerateToken(user.ID, string(user.Role), user.Superuser, tokenDuration)
	if err != nil {
		s.logger.Error("falha ao gerar token", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindInternal, "erro ao gerar token", err)
	}

	s.logger.Info("login bem-sucedido", zap.Uint("user_id", user.ID))
	return &Session{AccessToken: token, User: user.View()}, nil
}

// ValidateToken valida um token JWT e retorna o principal correspondente.
// O papel e a flag de superusuário são relidos do banco para que
// alterações de papel tenham efeito imediato, sem esperar o token expirar.
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*model.Principal, error) {
	claims, err := s.keyManager.VerifyToken(tokenString)
	if err != nil {
		return nil, apperrors.Forbidden("token inválido")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("usuário do token não existe mais", zap.Uint("user_id", claims.UserID))
			return nil, apperrors.Forbidden("token inválido")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "erro ao validar token", err)
	}

	return &model.Principal{
		ID:        user.ID,
		Role:      user.Role,
		Superuser: user.Superuser,
	}, nil
}
