package producer_test

import (
	"context"
	"testing"

	"github.com/agrotech/farm-api/internal/app/producer"
	"github.com/agrotech/farm-api/internal/domain/model"
	"github.com/agrotech/farm-api/internal/domain/repository"
	"github.com/agrotech/farm-api/internal/mocks"
	"github.com/agrotech/farm-api/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type producerFixture struct {
	producers *mocks.MockProducerRepository
	farms     *mocks.MockFarmRepository
	service   *producer.Service
}

func newProducerFixture(t *testing.T) *producerFixture {
	f := &producerFixture{
		producers: new(mocks.MockProducerRepository),
		farms:     new(mocks.MockFarmRepository),
	}
	f.service = producer.NewService(f.producers, f.farms, zaptest.NewLogger(t))
	return f
}

var (
	u1 = model.Principal{ID: 1, Role: model.RoleFarmer}
	u2 = model.Principal{ID: 2, Role: model.RoleFarmer}
)

const cpf = "12345678909"

func TestProducerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("cria produtor para o principal", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindDuplicate", mock.Anything, cpf, uint(1), uint(0)).
			Return(nil, repository.ErrNotFound).Once()
		f.producers.On("Create", mock.Anything, mock.AnythingOfType("*model.Producer")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*model.Producer)
				p.ID = 10
				assert.Equal(t, uint(1), p.UserID)
			}).
			Return(nil).Once()

		p, err := f.service.Create(ctx, u1, producer.CreateProducer{Name: "Sítio Boa Vista", CpfOrCnpj: cpf})
		require.NoError(t, err)
		assert.Equal(t, uint(10), p.ID)
	})

	t.Run("mesmo CPF sob o mesmo dono é Conflict", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindDuplicate", mock.Anything, cpf, uint(1), uint(0)).
			Return(&model.Producer{ID: 10, CpfOrCnpj: cpf, UserID: 1}, nil).Once()

		_, err := f.service.Create(ctx, u1, producer.CreateProducer{Name: "Outro", CpfOrCnpj: cpf})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		f.producers.AssertNotCalled(t, "Create")
	})

	t.Run("mesmo CPF sob outro dono é permitido", func(t *testing.T) {
		f := newProducerFixture(t)

		// A varredura de unicidade é restrita ao dono u2
		f.producers.On("FindDuplicate", mock.Anything, cpf, uint(2), uint(0)).
			Return(nil, repository.ErrNotFound).Once()
		f.producers.On("Create", mock.Anything, mock.AnythingOfType("*model.Producer")).
			Return(nil).Once()

		_, err := f.service.Create(ctx, u2, producer.CreateProducer{Name: "Fazenda do Beto", CpfOrCnpj: cpf})
		require.NoError(t, err)
	})

	t.Run("documento com tamanho inválido é BadRequest", func(t *testing.T) {
		f := newProducerFixture(t)

		_, err := f.service.Create(ctx, u1, producer.CreateProducer{Name: "X", CpfOrCnpj: "123"})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
		f.producers.AssertNotCalled(t, "FindDuplicate")
	})

	t.Run("corrida na criação cai na restrição composta", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindDuplicate", mock.Anything, cpf, uint(1), uint(0)).
			Return(nil, repository.ErrNotFound).Once()
		f.producers.On("Create", mock.Anything, mock.AnythingOfType("*model.Producer")).
			Return(repository.ErrDuplicateKey).Once()

		_, err := f.service.Create(ctx, u1, producer.CreateProducer{Name: "X", CpfOrCnpj: cpf})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	})
}

func TestProducerService_FindOne(t *testing.T) {
	ctx := context.Background()

	t.Run("dono lê o próprio produtor", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		p, err := f.service.FindOne(ctx, u1, 10)
		require.NoError(t, err)
		assert.Equal(t, uint(10), p.ID)
	})

	t.Run("não-dono recebe NotFound, nunca Forbidden", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		_, err := f.service.FindOne(ctx, u2, 10)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})

	t.Run("inexistente é NotFound", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(99)).
			Return(nil, repository.ErrNotFound).Once()

		_, err := f.service.FindOne(ctx, u1, 99)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	})
}

func TestProducerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("atualização do mesmo documento não auto-conflita", func(t *testing.T) {
		f := newProducerFixture(t)
		name := "Sítio Renomeado"
		sameCpf := cpf

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1, CpfOrCnpj: cpf}, nil).Once()
		// Documento não mudou: nenhuma varredura de unicidade
		f.producers.On("UpdateOwned", mock.Anything, uint(10), uint(1), map[string]interface{}{"name": name}).
			Return(&model.Producer{ID: 10, UserID: 1, Name: name, CpfOrCnpj: cpf}, nil).Once()

		p, err := f.service.Update(ctx, u1, 10, producer.UpdateProducer{Name: &name, CpfOrCnpj: &sameCpf})
		require.NoError(t, err)
		assert.Equal(t, name, p.Name)
		f.producers.AssertNotCalled(t, "FindDuplicate")
	})

	t.Run("documento novo passa pela guarda com exclusão do próprio id", func(t *testing.T) {
		f := newProducerFixture(t)
		newCpf := "98765432100"

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1, CpfOrCnpj: cpf}, nil).Once()
		f.producers.On("FindDuplicate", mock.Anything, newCpf, uint(1), uint(10)).
			Return(nil, repository.ErrNotFound).Once()
		f.producers.On("UpdateOwned", mock.Anything, uint(10), uint(1), map[string]interface{}{"cpf_or_cnpj": newCpf}).
			Return(&model.Producer{ID: 10, UserID: 1, CpfOrCnpj: newCpf}, nil).Once()

		p, err := f.service.Update(ctx, u1, 10, producer.UpdateProducer{CpfOrCnpj: &newCpf})
		require.NoError(t, err)
		assert.Equal(t, newCpf, p.CpfOrCnpj)
	})

	t.Run("mutação de não-dono é Forbidden", func(t *testing.T) {
		f := newProducerFixture(t)
		name := "X"

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		_, err := f.service.Update(ctx, u2, 10, producer.UpdateProducer{Name: &name})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
		f.producers.AssertNotCalled(t, "UpdateOwned")
	})
}

func TestProducerService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("bloqueado enquanto existirem fazendas", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1, Name: "Sítio"}, nil).Once()
		f.farms.On("CountByProducer", mock.Anything, uint(10)).
			Return(int64(2), nil).Once()

		_, err := f.service.Remove(ctx, u1, 10)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
		f.producers.AssertNotCalled(t, "DeleteOwned")
	})

	t.Run("sem fazendas exclui e devolve o resumo", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1, Name: "Sítio Boa Vista"}, nil).Once()
		f.farms.On("CountByProducer", mock.Anything, uint(10)).
			Return(int64(0), nil).Once()
		f.producers.On("DeleteOwned", mock.Anything, uint(10), uint(1)).
			Return(nil).Once()

		result, err := f.service.Remove(ctx, u1, 10)
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, uint(10), result.DeletedProducer.ID)
		assert.Equal(t, "Sítio Boa Vista", result.DeletedProducer.Name)
	})

	t.Run("exclusão por não-dono é Forbidden", func(t *testing.T) {
		f := newProducerFixture(t)

		f.producers.On("FindByID", mock.Anything, uint(10)).
			Return(&model.Producer{ID: 10, UserID: 1}, nil).Once()

		_, err := f.service.Remove(ctx, u2, 10)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	})
}
