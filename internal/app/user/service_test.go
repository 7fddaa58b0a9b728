package user_test

import (
	"context"
	"testing"

	"github.com/agrotech/farm-api/internal/app/user"
	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/internal/mocks"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

type userFixture struct {
	users     *mocks.MockUserRepository
	producers *mocks.MockProducerRepository
	farms     *mocks.MockFarmRepository
	crops     *mocks.MockCropRepository
	service   *user.Service
}

func newUserFixture(t *testing.T) *userFixture {
	f := &userFixture{
		users:     new(mocks.MockUserRepository),
		producers: new(mocks.MockProducerRepository),
		farms:     new(mocks.MockFarmRepository),
		crops:     new(mocks.MockCropRepository),
	}
	f.service = user.NewService(f.users, f.producers, f.farms, f.crops, zaptest.NewLogger(t))
	return f
}

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("primeiro usuário nasce ADMIN superuser", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByEmail", mock.Anything, "ana@fazenda.com").
			Return(nil, repository.ErrNotFound).Once()
		f.users.On("Count", mock.Anything).Return(int64(0), nil).Once()
		f.users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*model.User)
				u.ID = 1
			}).
			Return(nil).Once()

		view, err := f.service.Register(ctx, user.CreateUser{
			Name:     "Ana",
			Email:    "ana@fazenda.com",
			Password: "segredo123",
		})

		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, view.Role)
		assert.True(t, view.Superuser)
		f.users.AssertExpectations(t)
	})

	t.Run("usuários seguintes nascem FARMER", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByEmail", mock.Anything, "beto@fazenda.com").
			Return(nil, repository.ErrNotFound).Once()
		f.users.On("Count", mock.Anything).Return(int64(1), nil).Once()
		f.users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*model.User)
				u.ID = 2

				// O hash persistido deve bater com a senha informada
				err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("segredo123"))
				assert.NoError(t, err)
			}).
			Return(nil).Once()

		view, err := f.service.Register(ctx, user.CreateUser{
			Name:     "Beto",
			Email:    "beto@fazenda.com",
			Password: "segredo123",
		})

		require.NoError(t, err)
		assert.Equal(t, model.RoleFarmer, view.Role)
		assert.False(t, view.Superuser)
	})

	t.Run("e-mail duplicado é Conflict", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByEmail", mock.Anything, "ana@fazenda.com").
			Return(&model.User{ID: 1, Email: "ana@fazenda.com"}, nil).Once()

		_, err := f.service.Register(ctx, user.CreateUser{
			Name:     "Ana",
			Email:    "ana@fazenda.com",
			Password: "segredo123",
		})

		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		f.users.AssertNotCalled(t, "Create")
	})

	t.Run("corrida no registro cai na restrição do banco", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByEmail", mock.Anything, "ana@fazenda.com").
			Return(nil, repository.ErrNotFound).Once()
		f.users.On("Count", mock.Anything).Return(int64(3), nil).Once()
		f.users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
			Return(repository.ErrDuplicateKey).Once()

		_, err := f.service.Register(ctx, user.CreateUser{
			Name:     "Ana",
			Email:    "ana@fazenda.com",
			Password: "segredo123",
		})

		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})
}

func TestUserService_ToggleRole(t *testing.T) {
	ctx := context.Background()
	admin := model.Principal{ID: 1, Role: model.RoleAdmin, Superuser: true}
	farmer := model.Principal{ID: 2, Role: model.RoleFarmer}

	t.Run("admin superuser promove outro usuário", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByID", mock.Anything, uint(2)).
			Return(&model.User{ID: 2, Role: model.RoleFarmer}, nil).Once()
		f.users.On("Update", mock.Anything, uint(2), map[string]interface{}{"role": model.RoleAdmin}).
			Return(&model.User{ID: 2, Role: model.RoleAdmin}, nil).Once()

		view, err := f.service.ToggleRole(ctx, admin, 2, model.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, view.Role)
	})

	t.Run("auto-alvo é Forbidden mesmo sendo o único admin", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.service.ToggleRole(ctx, admin, 1, model.RoleFarmer)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
		f.users.AssertNotCalled(t, "Update")
	})

	t.Run("não-admin é Forbidden", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.service.ToggleRole(ctx, farmer, 1, model.RoleFarmer)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	})

	t.Run("papel inválido é BadRequest", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.service.ToggleRole(ctx, admin, 2, model.Role("MANAGER"))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	})

	t.Run("alvo inexistente é NotFound", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByID", mock.Anything, uint(9)).
			Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.ToggleRole(ctx, admin, 9, model.RoleAdmin)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestUserService_Remove(t *testing.T) {
	ctx := context.Background()
	admin := model.Principal{ID: 1, Role: model.RoleAdmin, Superuser: true}

	t.Run("purga dependentes em ordem antes do usuário", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByID", mock.Anything, uint(2)).
			Return(&model.User{ID: 2, Name: "Beto"}, nil).Once()

		var order []string
		f.crops.On("DeleteByOwner", mock.Anything, uint(2)).
			Run(func(mock.Arguments) { order = append(order, "crops") }).
			Return(nil).Once()
		f.farms.On("DeleteByOwner", mock.Anything, uint(2)).
			Run(func(mock.Arguments) { order = append(order, "farms") }).
			Return(nil).Once()
		f.producers.On("DeleteByOwner", mock.Anything, uint(2)).
			Run(func(mock.Arguments) { order = append(order, "producers") }).
			Return(nil).Once()
		f.users.On("Delete", mock.Anything, uint(2)).
			Run(func(mock.Arguments) { order = append(order, "user") }).
			Return(nil).Once()

		view, err := f.service.Remove(ctx, admin, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(2), view.ID)
		assert.Equal(t, []string{"crops", "farms", "producers", "user"}, order)
	})

	t.Run("auto-exclusão é Forbidden", func(t *testing.T) {
		f := newUserFixture(t)

		_, err := f.service.Remove(ctx, admin, 1)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
		f.users.AssertNotCalled(t, "Delete")
	})

	t.Run("alvo inexistente é NotFound sem purga", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByID", mock.Anything, uint(9)).
			Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.Remove(ctx, admin, 9)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		f.producers.AssertNotCalled(t, "DeleteByOwner")
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("patch parcial atualiza só os campos presentes", func(t *testing.T) {
		f := newUserFixture(t)
		name := "Ana Maria"

		f.users.On("FindByID", mock.Anything, uint(1)).
			Return(&model.User{ID: 1}, nil).Once()
		f.users.On("Update", mock.Anything, uint(1), map[string]interface{}{"name": name}).
			Return(&model.User{ID: 1, Name: name}, nil).Once()

		view, err := f.service.Update(ctx, 1, user.UpdateUser{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, view.Name)
	})

	t.Run("senha nova é persistida como hash", func(t *testing.T) {
		f := newUserFixture(t)
		password := "novaSenha123"

		f.users.On("FindByID", mock.Anything, uint(1)).
			Return(&model.User{ID: 1}, nil).Once()
		f.users.On("Update", mock.Anything, uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
			hash, ok := fields["password"].(string)
			if !ok {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
		})).Return(&model.User{ID: 1}, nil).Once()

		_, err := f.service.Update(ctx, 1, user.UpdateUser{Password: &password})
		require.NoError(t, err)
	})

	t.Run("patch vazio é BadRequest", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByID", mock.Anything, uint(1)).
			Return(&model.User{ID: 1}, nil).Once()

		_, err := f.service.Update(ctx, 1, user.UpdateUser{})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	})
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()

	t.Run("perfil traz produtores e nunca a senha", func(t *testing.T) {
		f := newUserFixture(t)

		f.users.On("FindByIDWithProducers", mock.Anything, uint(1)).
			Return(&model.User{
				ID:       1,
				Name:     "Ana",
				Password: "$2a$10$hash",
				Producers: []model.Producer{
					{ID: 10, Name: "Sítio Boa Vista", UserID: 1},
				},
			}, nil).Once()

		profile, err := f.service.Profile(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, profile.Producers, 1)
		assert.Equal(t, "Ana", profile.Name)
	})
}
