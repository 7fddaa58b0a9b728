package crop_test

import (
	"context"
	"testing"

	"github.com/agrotech/farm-api/internal/app/authz"
	"github.com/agrotech/farm-api/internal/app/crop"
	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/internal/mocks"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type cropFixture struct {
	crops     *mocks.MockCropRepository
	farms     *mocks.MockFarmRepository
	producers *mocks.MockProducerRepository
	service   *crop.Service
}

func newCropFixture(t *testing.T) *cropFixture {
	f := &cropFixture{
		crops:     new(mocks.MockCropRepository),
		farms:     new(mocks.MockFarmRepository),
		producers: new(mocks.MockProducerRepository),
	}
	logger := zaptest.NewLogger(t)
	resolver := authz.NewResolver(f.producers, f.farms, logger)
	f.service = crop.NewService(f.crops, resolver, logger)
	return f
}

var owner = model.Principal{ID: 1, Role: model.RoleFarmer}

// expectOwnedFarm registra as buscas de posse transitiva de uma fazenda
func (f *cropFixture) expectOwnedFarm(farmID, producerID, userID uint) {
	f.farms.On("FindByID", mock.Anything, farmID).
		Return(&model.Farm{ID: farmID, ProducerID: producerID}, nil)
	f.producers.On("FindByID", mock.Anything, producerID).
		Return(&model.Producer{ID: producerID, UserID: userID}, nil)
}

func TestCropService_CreateMany(t *testing.T) {
	ctx := context.Background()

	t.Run("lote em fazenda própria", func(t *testing.T) {
		f := newCropFixture(t)
		f.expectOwnedFarm(7, 10, 1)

		f.crops.On("CreateMany", mock.Anything, mock.MatchedBy(func(crops []*model.Crop) bool {
			return len(crops) == 2 && crops[0].Name == "Soja" && crops[1].Name == "Milho"
		})).Return(nil).Once()

		created, err := f.service.CreateMany(ctx, owner, []crop.CreateCrop{
			{Name: "Soja", FarmID: 7},
			{Name: "Milho", FarmID: 7},
		})

		require.NoError(t, err)
		assert.Len(t, created, 2)
	})

	t.Run("fazenda de outro dono bloqueia o lote inteiro", func(t *testing.T) {
		f := newCropFixture(t)
		f.expectOwnedFarm(7, 10, 99)

		_, err := f.service.CreateMany(ctx, owner, []crop.CreateCrop{{Name: "Soja", FarmID: 7}})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		f.crops.AssertNotCalled(t, "CreateMany")
	})

	t.Run("lote vazio é BadRequest", func(t *testing.T) {
		f := newCropFixture(t)

		_, err := f.service.CreateMany(ctx, owner, nil)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
	})
}

func TestCropService_FindOne(t *testing.T) {
	ctx := context.Background()

	t.Run("cultura de outro dono é NotFound", func(t *testing.T) {
		f := newCropFixture(t)

		f.crops.On("FindByID", mock.Anything, uint(3)).
			Return(&model.Crop{ID: 3, FarmID: 7}, nil).Once()
		f.expectOwnedFarm(7, 10, 99)

		_, err := f.service.FindOne(ctx, owner, 3)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestCropService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("dono remove a cultura", func(t *testing.T) {
		f := newCropFixture(t)

		f.crops.On("FindByID", mock.Anything, uint(3)).
			Return(&model.Crop{ID: 3, Name: "Soja", FarmID: 7}, nil).Once()
		f.expectOwnedFarm(7, 10, 1)
		f.crops.On("Delete", mock.Anything, uint(3)).Return(nil).Once()

		removed, err := f.service.Remove(ctx, owner, 3)
		require.NoError(t, err)
		assert.Equal(t, "Soja", removed.Name)
	})

	t.Run("mutação por não-dono é Forbidden", func(t *testing.T) {
		f := newCropFixture(t)

		f.crops.On("FindByID", mock.Anything, uint(3)).
			Return(&model.Crop{ID: 3, FarmID: 7}, nil).Once()
		f.expectOwnedFarm(7, 10, 99)

		_, err := f.service.Remove(ctx, owner, 3)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
		f.crops.AssertNotCalled(t, "Delete")
	})

	t.Run("cultura inexistente em mutação é Forbidden", func(t *testing.T) {
		f := newCropFixture(t)

		f.crops.On("FindByID", mock.Anything, uint(9)).
			Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.Remove(ctx, owner, 9)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	})
}
