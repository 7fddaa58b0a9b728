package repository

import (
	"context"
	"errors"

	"github.com/agrotech/farm-api/internal/domain/model"
)

var (
	// ErrNotFound indica que o registro procurado não existe
	ErrNotFound = errors.New("registro não encontrado")

	// ErrDuplicateKey indica violação de restrição de unicidade no banco.
	// É a segunda camada de defesa contra corridas entre pré-verificação
	// e escrita: os serviços traduzem este erro para Conflict.
	ErrDuplicateKey = errors.New("violação de chave única")
)

// UserRepository define a interface para armazenamento de usuários
type UserRepository interface {
	// Create persiste um novo usuário
	Create(ctx context.Context, user *model.User) error

	// FindByID busca um usuário pelo ID
	FindByID(ctx context.Context, id uint) (*model.User, error)

	// FindByIDWithProducers busca um usuário com seus produtores carregados
	FindByIDWithProducers(ctx context.Context, id uint) (*model.User, error)

	// FindByEmail busca um usuário pelo e-mail
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindAll lista todos os usuários
	FindAll(ctx context.Context) ([]*model.User, error)

	// Count retorna o total de usuários cadastrados
	Count(ctx context.Context) (int64, error)

	// Update aplica um patch parcial e retorna o registro resultante
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.User, error)

	// Delete remove um usuário pelo ID
	Delete(ctx context.Context, id uint) error
}

// ProducerRepository define a interface para armazenamento de produtores
type ProducerRepository interface {
	// Create persiste um novo produtor
	Create(ctx context.Context, producer *model.Producer) error

	// FindByID busca um produtor pelo ID, com fazendas carregadas
	FindByID(ctx context.Context, id uint) (*model.Producer, error)

	// FindByOwner lista os produtores de um usuário, mais recentes primeiro
	FindByOwner(ctx context.Context, userID uint) ([]*model.Producer, error)

	// FindDuplicate procura outro produtor do mesmo dono com o mesmo
	// CPF/CNPJ, ignorando excludeID quando maior que zero
	FindDuplicate(ctx context.Context, cpfOrCnpj string, userID, excludeID uint) (*model.Producer, error)

	// UpdateOwned aplica um patch condicionado ao dono (WHERE id AND user_id);
	// retorna ErrNotFound quando nenhuma linha corresponde
	UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) (*model.Producer, error)

	// DeleteOwned remove um produtor condicionado ao dono;
	// retorna ErrNotFound quando nenhuma linha corresponde
	DeleteOwned(ctx context.Context, id, userID uint) error

	// DeleteByOwner remove todos os produtores de um usuário
	DeleteByOwner(ctx context.Context, userID uint) error
}

// FarmRepository define a interface para armazenamento de fazendas
type FarmRepository interface {
	// Create persiste uma nova fazenda
	Create(ctx context.Context, farm *model.Farm) error

	// FindByID busca uma fazenda pelo ID
	FindByID(ctx context.Context, id uint) (*model.Farm, error)

	// FindByProducer lista as fazendas de um produtor com paginação,
	// mais recentes primeiro
	FindByProducer(ctx context.Context, producerID uint, offset, limit int) ([]*model.Farm, error)

	// CountByProducer conta as fazendas de um produtor
	CountByProducer(ctx context.Context, producerID uint) (int64, error)

	// UpdateOwned aplica um patch condicionado ao dono transitivo
	// (id da fazenda + usuário dono do produtor); retorna ErrNotFound
	// quando nenhuma linha corresponde
	UpdateOwned(ctx context.Context, id, userID uint, fields map[string]interface{}) (*model.Farm, error)

	// DeleteOwned remove uma fazenda condicionada ao dono transitivo
	DeleteOwned(ctx context.Context, id, userID uint) error

	// DeleteByOwner remove todas as fazendas dos produtores de um usuário
	DeleteByOwner(ctx context.Context, userID uint) error

	// Count retorna o total de fazendas
	Count(ctx context.Context) (int64, error)

	// SumAreas agrega as somas de área total, agricultável e de vegetação
	SumAreas(ctx context.Context) (total, arable, vegetation float64, err error)

	// CountByState agrupa o total de fazendas por estado
	CountByState(ctx context.Context) ([]model.StateCount, error)
}

// CropRepository define a interface para armazenamento de culturas
type CropRepository interface {
	// CreateMany persiste um lote de culturas
	CreateMany(ctx context.Context, crops []*model.Crop) error

	// FindByID busca uma cultura pelo ID
	FindByID(ctx context.Context, id uint) (*model.Crop, error)

	// FindByFarm lista as culturas de uma fazenda
	FindByFarm(ctx context.Context, farmID uint) ([]*model.Crop, error)

	// Update aplica um patch parcial e retorna o registro resultante
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Crop, error)

	// Delete remove uma cultura pelo ID
	Delete(ctx context.Context, id uint) error

	// DeleteByFarm remove todas as culturas de uma fazenda
	DeleteByFarm(ctx context.Context, farmID uint) error

	// DeleteByOwner remove todas as culturas das fazendas de um usuário
	DeleteByOwner(ctx context.Context, userID uint) error

	// CountByName agrupa o total de culturas por nome
	CountByName(ctx context.Context) ([]model.CropCount, error)
}
