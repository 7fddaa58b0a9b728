package mocks

import (
	"context"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockCropRepository é um mock para o repository.CropRepository
type MockCropRepository struct {
	mock.Mock
}

func (m *MockCropRepository) CreateMany(ctx context.Context, crops []*model.Crop) error {
	args := m.Called(ctx, crops)
	return args.Error(0)
}

func (m *MockCropRepository) FindByID(ctx context.Context, id uint) (*model.Crop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Crop), args.Error(1)
}

func (m *MockCropRepository) FindByFarm(ctx context.Context, farmID uint) ([]*model.Crop, error) {
	args := m.Called(ctx, farmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Crop), args.Error(1)
}

func (m *MockCropRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Crop, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Crop), args.Error(1)
}

func (m *MockCropRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCropRepository) DeleteByFarm(ctx context.Context, farmID uint) error {
	args := m.Called(ctx, farmID)
	return args.Error(0)
}

func (m *MockCropRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCropRepository) CountByName(ctx context.Context) ([]model.CropCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CropCount), args.Error(1)
}
