package farm_test

import (
	"context"
	"testing"

	"github.com/agrotech/farm-api/internal/app/authz"
	"github.com/agrotech/farm-api/internal/app/farm"
	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/mocks"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type farmFixture struct {
	farms     *mocks.MockFarmRepository
	producers *mocks.MockProducerRepository
	crops     *mocks.MockCropRepository
	service   *farm.Service
}

func newFarmFixture(t *testing.T) *farmFixture {
	f := &farmFixture{
		farms:     new(mocks.MockFarmRepository),
		producers: new(mocks.MockProducerRepository),
		crops:     new(mocks.MockCropRepository),
	}
	logger := zaptest.NewLogger(t)
	resolver := authz.NewResolver(f.producers, f.farms, logger)
	f.service = farm.NewService(f.farms, f.producers, f.crops, resolver, logger)
	return f
}

var (
	owner    = model.Principal{ID: 1, Role: model.RoleFarmer}
	stranger = model.Principal{ID: 2, Role: model.RoleFarmer}
)

func TestFarmService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("cria fazenda com áreas válidas", func(t *testing.T) {
		f := newFarmFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()
		f.farms.On("Create", mock.Anything, mock.AnythingOfType("*model.Farm")).
			Run(func(args mock.Arguments) {
				fm := args.Get(1).(*model.Farm)
				fm.ID = 7
			}).
			Return(nil).Once()

		created, err := f.service.Create(ctx, owner, farm.CreateFarm{
			Name:           "Fazenda Primavera",
			City:           "Uberaba",
			State:          "MG",
			TotalArea:      100,
			ArableArea:     60,
			VegetationArea: 30,
			ProducerID:     10,
		})

		require.NoError(t, err)
		assert.Equal(t, uint(7), created.ID)
	})

	t.Run("áreas que excedem o total são Conflict antes da escrita", func(t *testing.T) {
		f := newFarmFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		_, err := f.service.Create(ctx, owner, farm.CreateFarm{
			Name:           "Fazenda Inválida",
			TotalArea:      100,
			ArableArea:     80,
			VegetationArea: 30,
			ProducerID:     10,
		})

		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		f.farms.AssertNotCalled(t, "Create")
	})

	t.Run("produtor de outro dono é NotFound", func(t *testing.T) {
		f := newFarmFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		_, err := f.service.Create(ctx, stranger, farm.CreateFarm{
			Name:       "Fazenda Alheia",
			TotalArea:  10,
			ProducerID: 10,
		})

		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestFarmService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("patch parcial mescla com os valores persistidos", func(t *testing.T) {
		// Cenário da regra: {total:100, arable:60, vegetation:30} e um
		// patch {arable:80} deve falhar porque 80+30 > 100
		f := newFarmFixture(t)
		arable := 80.0

		f.farms.On("FindByID", mock.Anything, uint(7)).
			Return(&model.Farm{ID: 7, ProducerID: 10, TotalArea: 100, ArableArea: 60, VegetationArea: 30}, nil).Once()
		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		_, err := f.service.Update(ctx, owner, 7, farm.UpdateFarm{ArableArea: &arable})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		f.farms.AssertNotCalled(t, "UpdateOwned")
	})

	t.Run("patch válido chega ao banco com escrita condicionada ao dono", func(t *testing.T) {
		f := newFarmFixture(t)
		arable := 65.0

		f.farms.On("FindByID", mock.Anything, uint(7)).
			Return(&model.Farm{ID: 7, ProducerID: 10, TotalArea: 100, ArableArea: 60, VegetationArea: 30}, nil).Once()
		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()
		f.farms.On("UpdateOwned", mock.Anything, uint(7), uint(1), map[string]interface{}{"arable_area": arable}).
			Return(&model.Farm{ID: 7, ProducerID: 10, TotalArea: 100, ArableArea: 65, VegetationArea: 30}, nil).Once()

		updated, err := f.service.Update(ctx, owner, 7, farm.UpdateFarm{ArableArea: &arable})
		require.NoError(t, err)
		assert.Equal(t, 65.0, updated.ArableArea)
	})

	t.Run("mutação por não-dono é Forbidden", func(t *testing.T) {
		f := newFarmFixture(t)
		name := "Novo Nome"

		f.farms.On("FindByID", mock.Anything, uint(7)).
			Return(&model.Farm{ID: 7, ProducerID: 10}, nil).Once()
		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		_, err := f.service.Update(ctx, stranger, 7, farm.UpdateFarm{Name: &name})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	})
}

func TestFarmService_FindOne(t *testing.T) {
	ctx := context.Background()

	t.Run("leitura por não-dono é NotFound, nunca Forbidden", func(t *testing.T) {
		f := newFarmFixture(t)

		f.farms.On("FindByID", mock.Anything, uint(7)).
			Return(&model.Farm{ID: 7, ProducerID: 10}, nil).Once()
		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		_, err := f.service.FindOne(ctx, stranger, 7)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestFarmService_FindAll(t *testing.T) {
	ctx := context.Background()

	t.Run("producerId é obrigatório", func(t *testing.T) {
		f := newFarmFixture(t)

		_, err := f.service.FindAll(ctx, owner, 0, 1)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	})

	t.Run("pagina de dez em dez", func(t *testing.T) {
		f := newFarmFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()
		f.farms.On("FindByProducer", mock.Anything, uint(10), 10, 10).
			Return([]*model.Farm{}, nil).Once()

		_, err := f.service.FindAll(ctx, owner, 10, 2)
		require.NoError(t, err)
		f.farms.AssertExpectations(t)
	})
}

func TestFarmService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("remove culturas antes da fazenda", func(t *testing.T) {
		f := newFarmFixture(t)

		f.farms.On("FindByID", mock.Anything, uint(7)).
			Return(&model.Farm{ID: 7, ProducerID: 10}, nil).Once()
		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		var order []string
		f.crops.On("DeleteByFarm", mock.Anything, uint(7)).
			Run(func(mock.Arguments) { order = append(order, "crops") }).
			Return(nil).Once()
		f.farms.On("DeleteOwned", mock.Anything, uint(7), uint(1)).
			Run(func(mock.Arguments) { order = append(order, "farm") }).
			Return(nil).Once()

		_, err := f.service.Remove(ctx, owner, 7)
		require.NoError(t, err)
		assert.Equal(t, []string{"crops", "farm"}, order)
	})
}
