package mocks

import (
	"context"

	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockProducerRepository é um mock para o repository.ProducerRepository
type MockProducerRepository struct {
	mock.Mock
}

func (m *MockProducerRepository) Create(ctx context.Context, producer *model.Producer) error {
	args := m.Called(ctx, producer)
	return args.Error(0)
}

func (m *MockProducerRepository) FindByID(ctx context.Context, id uint) (*model.Producer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producer), args.Error(1)
}

func (m *MockProducerRepository) FindByOwner(ctx context.Context, userID uint) ([]*model.Producer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Producer), args.Error(1)
}

func (m *MockProducerRepository) FindDuplicate(ctx context.Context, cpfOrCnpj string, userID, excludeID uint) (*model.Producer, error) {
	args := m.Called(ctx, cpfOrCnpj, userID, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producer), args.Error(1)
}

func (m *MockProducerRepository) UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) (*model.Producer, error) {
	args := m.Called(ctx, id, userID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producer), args.Error(1)
}

func (m *MockProducerRepository) DeleteOwned(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockProducerRepository) DeleteByOwner(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
