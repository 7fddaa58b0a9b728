package mocks

import (
	"context"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockFarmRepository é um mock para o repository.FarmRepository
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) Create(ctx context.Context, farm *model.Farm) error {
	args := m.Called(ctx, farm)
	return args.Error(0)
}

func (m *MockFarmRepository) FindByID(ctx context.Context, id uint) (*model.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Farm), args.Error(1)
}

func (m *MockFarmRepository) FindByProducer(ctx context.Context, producerID uint, offset, limit int) ([]*model.Farm, error) {
	args := m.Called(ctx, producerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Farm), args.Error(1)
}

func (m *MockFarmRepository) CountByProducer(ctx context.Context, producerID uint) (int64, error) {
	args := m.Called(ctx, producerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFarmRepository) UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) (*model.Farm, error) {
	args := m.Called(ctx, id, userID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Farm), args.Error(1)
}

func (m *MockFarmRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockFarmRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockFarmRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFarmRepository) SumAreas(ctx context.Context) (float64, float64, float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Get(1).(float64), args.Get(2).(float64), args.Error(3)
}

func (m *MockFarmRepository) CountByState(ctx context.Context) ([]model.StateCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StateCount), args.Error(1)
}
